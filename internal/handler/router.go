package handler

import "github.com/gin-gonic/gin"

// Routes bundles the API handlers for registration.
type Routes struct {
	Auth      *AuthHandler
	Subjects  *SubjectHandler
	Lectures  *LectureHandler
	Notes     *NoteHandler
	Dashboard *DashboardHandler
	Synthesis *SynthesisHandler
}

// Register wires all endpoints under the given prefix. The auth middleware
// guards everything except registration, login and token verification.
func (rt Routes) Register(r *gin.Engine, prefix string, auth gin.HandlerFunc) {
	api := r.Group(prefix)

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", rt.Auth.Register)
	authRoutes.POST("/login", rt.Auth.Login)
	authRoutes.POST("/verify", rt.Auth.Verify)
	authRoutes.GET("/me", auth, rt.Auth.Me)

	protected := api.Group("", auth)

	subjects := protected.Group("/subjects")
	subjects.POST("", rt.Subjects.Create)
	subjects.GET("", rt.Subjects.List)
	subjects.GET("/:id", rt.Subjects.Get)
	subjects.PUT("/:id", rt.Subjects.Update)
	subjects.PATCH("/:id", rt.Subjects.Update)
	subjects.DELETE("/:id", rt.Subjects.Delete)
	subjects.GET("/:id/lectures", rt.Subjects.Lectures)

	lectures := protected.Group("/lectures")
	lectures.POST("", rt.Lectures.Create)
	lectures.DELETE("/:id", rt.Lectures.Delete)
	lectures.POST("/:id/documents", rt.Lectures.RegisterDocument)
	lectures.POST("/:id/synthesize", rt.Synthesis.Synthesize)

	notes := protected.Group("/notes")
	notes.GET("/my-lectures", rt.Notes.MyLectures)
	notes.GET("/my-notes", rt.Notes.MyNotes)
	notes.GET("/lecture/:id", rt.Notes.LectureDetail)
	notes.GET("/:id/export", rt.Notes.ExportPDF)

	protected.POST("/synthesis/topic-shift", rt.Synthesis.TopicShift)
	protected.GET("/dashboard/stats", rt.Dashboard.Stats)
}
