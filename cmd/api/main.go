package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/eduscribe/eduscribe-api/api/swagger"
	"github.com/eduscribe/eduscribe-api/internal/handler"
	"github.com/eduscribe/eduscribe-api/internal/middleware"
	"github.com/eduscribe/eduscribe-api/internal/repository"
	"github.com/eduscribe/eduscribe-api/internal/service"
	"github.com/eduscribe/eduscribe-api/migrations"
	"github.com/eduscribe/eduscribe-api/pkg/cache"
	"github.com/eduscribe/eduscribe-api/pkg/config"
	"github.com/eduscribe/eduscribe-api/pkg/database"
	"github.com/eduscribe/eduscribe-api/pkg/export"
	"github.com/eduscribe/eduscribe-api/pkg/llm"
	"github.com/eduscribe/eduscribe-api/pkg/logger"
	corsmiddleware "github.com/eduscribe/eduscribe-api/pkg/middleware/cors"
	reqidmiddleware "github.com/eduscribe/eduscribe-api/pkg/middleware/requestid"
)

// @title EduScribe API
// @version 1.0.0
// @description Lecture transcription and note synthesis backend
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	if err := database.Migrate(db, migrations.FS); err != nil {
		logr.Sugar().Fatalw("failed to apply migrations", "error", err)
	}

	// Redis is optional: without it the dashboard recomputes on every request.
	var redisClient *redis.Client
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard caching disabled", "error", err)
	} else {
		redisClient = client
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	lectureRepo := repository.NewLectureRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	dashboardSvc := service.NewDashboardService(statsRepo, cacheRepo, cfg.Dashboard.CacheTTL, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, lectureRepo, dashboardSvc, validate, logr)
	lectureSvc := service.NewLectureService(lectureRepo, subjectRepo, noteRepo, dashboardSvc, validate, logr)
	noteSvc := service.NewNoteService(noteRepo, lectureRepo, export.NewPDFExporter(), logr)
	synthesisSvc := service.NewSynthesisService(llm.NewClient(cfg.LLM), lectureRepo, noteRepo, dashboardSvc, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc)
	lectureHandler := handler.NewLectureHandler(lectureSvc)
	noteHandler := handler.NewNoteHandler(noteSvc, lectureSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, metricsSvc)
	synthesisHandler := handler.NewSynthesisHandler(synthesisSvc, metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Routes{
		Auth:      authHandler,
		Subjects:  subjectHandler,
		Lectures:  lectureHandler,
		Notes:     noteHandler,
		Dashboard: dashboardHandler,
		Synthesis: synthesisHandler,
	}.Register(r, cfg.APIPrefix, middleware.JWT(authSvc))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
