package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/yoockh/jobmate/docs"
	"github.com/yoockh/jobmate/internal/api/handlers"
	"github.com/yoockh/jobmate/internal/api/middleware"
	"github.com/yoockh/jobmate/internal/auth"
)

type Deps struct {
	Verifier *auth.Verifier

	Functions     *handlers.FunctionsHandler
	Profile       *handlers.ProfileHandler
	Jobs          *handlers.JobHandler
	Saved         *handlers.SavedHandler
	CV            *handlers.CVHandler
	CoverLetters  *handlers.CoverLetterHandler
	Learning      *handlers.LearningHandler
	Interview     *handlers.InterviewHandler
	Chat          *handlers.ChatHandler
	Alerts        *handlers.AlertHandler
	Notifications *handlers.NotificationHandler
	Dashboard     *handlers.DashboardHandler
	WS            *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))

	requireAuth := middleware.JWTAuth(d.Verifier)
	optionalAuth := middleware.OptionalJWT(d.Verifier)

	// Serverless-style functions
	fn := r.Group("/functions/v1")
	fn.POST("/generate-cv-with-groq", requireAuth, d.Functions.GenerateCV)
	fn.POST("/generate-cv", optionalAuth, d.Functions.GenerateCVFromProfile)
	fn.POST("/generate-cover-letter", optionalAuth, d.Functions.CoverLetter)
	fn.POST("/jobmate-assistant", requireAuth, d.Functions.Assistant)
	fn.POST("/interview-coach", optionalAuth, d.Functions.InterviewCoach)
	fn.GET("/linkedin-jobs", optionalAuth, d.Functions.LinkedInJobs)
	fn.POST("/send-whatsapp-alerts", requireAuth, d.Functions.SendWhatsAppAlert)
	fn.POST("/scan-cv", requireAuth, d.Functions.ScanCV)
	fn.GET("/fetch-jobs", requireAuth, middleware.RequireAdmin(), d.Functions.FetchJobs)
	fn.POST("/fetch-jobs", requireAuth, middleware.RequireAdmin(), d.Functions.FetchJobs)

	// Data API (JWT)
	api := r.Group("/api/v1")
	api.Use(requireAuth)

	api.GET("/profile", d.Profile.Me)
	api.PUT("/profile", d.Profile.Update)
	api.POST("/profile/embedding", d.Profile.RefreshEmbedding)

	api.GET("/dashboard", d.Dashboard.Stats)

	api.GET("/jobs", d.Jobs.Search)
	api.GET("/jobs/recommended", d.Jobs.Recommended)
	api.GET("/jobs/:id", d.Jobs.Get)

	api.GET("/saved/jobs", d.Saved.ListJobs)
	api.POST("/saved/jobs", d.Saved.SaveJob)
	api.DELETE("/saved/jobs/:job_id", d.Saved.UnsaveJob)
	api.GET("/saved/cvs", d.Saved.ListCVs)
	api.POST("/saved/cvs", d.Saved.CreateCV)
	api.POST("/saved/cvs/:id/complete", d.Saved.CompleteCV)
	api.DELETE("/saved/cvs/:id", d.Saved.DeleteCV)
	api.GET("/generated-cvs", d.Saved.ListGeneratedCVs)
	api.DELETE("/generated-cvs/:id", d.Saved.DeleteGeneratedCV)

	api.POST("/cv/upload", d.CV.Upload)
	api.GET("/cv/files", d.CV.List)
	api.GET("/cv/files/:id/url", d.CV.DownloadURL)

	api.GET("/cover-letters", d.CoverLetters.List)
	api.POST("/cover-letters", d.CoverLetters.Create)
	api.DELETE("/cover-letters/:id", d.CoverLetters.Delete)

	api.GET("/learning", d.Learning.List)
	api.POST("/learning", d.Learning.Create)
	api.GET("/learning/stats", d.Learning.Stats)
	api.PUT("/learning/:id/completed", d.Learning.SetCompleted)
	api.DELETE("/learning/:id", d.Learning.Delete)

	api.POST("/interview/sessions", d.Interview.Start)
	api.GET("/interview/sessions", d.Interview.List)
	api.GET("/interview/sessions/:id", d.Interview.Get)
	api.POST("/interview/sessions/:id/answers", d.Interview.Answer)
	api.POST("/interview/sessions/:id/answers/audio", d.Interview.AnswerAudio)

	api.GET("/chat/session", d.Chat.Latest)
	api.POST("/chat/session/clear", d.Chat.Clear)

	api.GET("/alerts/whatsapp", d.Alerts.Get)
	api.PUT("/alerts/whatsapp", d.Alerts.Put)
	api.POST("/alerts/whatsapp/test", d.Alerts.Test)

	api.GET("/notifications", d.Notifications.List)
	api.POST("/notifications/:id/read", d.Notifications.MarkRead)

	// WebSocket
	r.GET("/ws/notifications", middleware.TokenFromQuery("access_token"), requireAuth, d.WS.Notifications)
}
