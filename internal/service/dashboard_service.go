package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/eduscribe/eduscribe-api/internal/models"
	appErrors "github.com/eduscribe/eduscribe-api/pkg/errors"
)

// dashboardInvalidator is implemented by the dashboard service and consumed
// by write paths that change the counts.
type dashboardInvalidator interface {
	InvalidateStats(ctx context.Context, userID string) error
}

type statsRepository interface {
	CountSubjects(ctx context.Context, userID string) (int, error)
	CountLectures(ctx context.Context, userID string) (int, error)
	CountNotes(ctx context.Context, userID string) (int, error)
	CountDocuments(ctx context.Context, userID string) (int, error)
	RecentLectures(ctx context.Context, userID string, limit int) ([]models.Lecture, error)
}

type statsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const recentLectureLimit = 5

// DashboardService composes per-user statistics with a cache-aside Redis
// layer.
type DashboardService struct {
	repo     statsRepository
	cache    statsCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewDashboardService creates a dashboard service. A nil cache disables
// caching.
func NewDashboardService(repo statsRepository, cache statsCache, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func statsCacheKey(userID string) string {
	return "dashboard:stats:" + userID
}

// Stats returns the user's dashboard statistics and whether they came from
// cache.
func (s *DashboardService) Stats(ctx context.Context, userID string) (*models.DashboardStats, bool, error) {
	if s.cache != nil {
		var cached models.DashboardStats
		err := s.cache.Get(ctx, statsCacheKey(userID), &cached)
		if err == nil {
			return &cached, true, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	stats, err := s.collect(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey(userID), stats, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}

	return stats, false, nil
}

// InvalidateStats drops the cached statistics for a user.
func (s *DashboardService) InvalidateStats(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, statsCacheKey(userID))
}

func (s *DashboardService) collect(ctx context.Context, userID string) (*models.DashboardStats, error) {
	subjects, err := s.repo.CountSubjects(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count subjects")
	}
	lectures, err := s.repo.CountLectures(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count lectures")
	}
	notes, err := s.repo.CountNotes(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count notes")
	}
	documents, err := s.repo.CountDocuments(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count documents")
	}
	recent, err := s.repo.RecentLectures(ctx, userID, recentLectureLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recent lectures")
	}

	return &models.DashboardStats{
		SubjectCount:   subjects,
		LectureCount:   lectures,
		NotesCount:     notes,
		DocumentsCount: documents,
		RecentLectures: recent,
	}, nil
}
