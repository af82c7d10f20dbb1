package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/fieldopskit/fieldops-go/internal/api/handlers"
	"github.com/fieldopskit/fieldops-go/internal/api/middleware"
	"github.com/fieldopskit/fieldops-go/internal/application"
	"github.com/fieldopskit/fieldops-go/internal/cron"
	"github.com/fieldopskit/fieldops-go/internal/repository"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, gormDB *gorm.DB) {
	// init
	repos_instance := repository.NewRepositories(gormDB)
	services_instance := application.New(repos_instance)
	handlers_instance := handlers.New(services_instance, repos_instance, r)

	// Start background tasks
	cron.StartCleanupTask(services_instance.Audit)

	// setup
	r.POST("/register", handlers_instance.User.Register)
	r.POST("/login", handlers_instance.User.Login)
	r.POST("/logout", handlers_instance.User.Logout)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/ws/submissions", handlers_instance.Stream.StreamEvents)

		agents := auth.Group("/agents")
		{
			agents.GET("", handlers_instance.Agent.ListAgents)
			agents.GET("/:id", handlers_instance.Agent.GetAgent)
			agents.POST("", middleware.AdminOnly(), handlers_instance.Agent.CreateAgent)
			agents.PUT("/:id", middleware.AdminOnly(), handlers_instance.Agent.UpdateAgent)
			agents.DELETE("/:id", middleware.AdminOnly(), handlers_instance.Agent.DeleteAgent)
		}

		forms := auth.Group("/forms")
		{
			forms.GET("", handlers_instance.Form.ListForms)
			forms.GET("/:id", handlers_instance.Form.GetForm)
			forms.POST("", middleware.AdminOnly(), handlers_instance.Form.CreateForm)
			forms.PUT("/:id", middleware.AdminOnly(), handlers_instance.Form.UpdateForm)

			forms.GET("/:id/attachments", middleware.AdminOnly(), handlers_instance.Form.ListAttachments)
			forms.POST("/:id/attachments", middleware.AdminOnly(), handlers_instance.Form.AttachAgent)
			forms.DELETE("/:id/attachments/:agent_id", middleware.AdminOnly(), handlers_instance.Form.DetachAgent)

			forms.GET("/:id/visibility/:agent_id", handlers_instance.Form.CheckVisibility)
			forms.POST("/:id/submissions", handlers_instance.Submission.Submit)
		}

		submissions := auth.Group("/submissions")
		{
			submissions.GET("", handlers_instance.Submission.ListSubmissions)
			submissions.GET("/:id", handlers_instance.Submission.GetSubmission)
			submissions.PUT("/:id/approve", handlers_instance.Submission.Approve)
			submissions.PUT("/:id/reject", handlers_instance.Submission.Reject)
		}

		audit := auth.Group("/audit/logs")
		{
			audit.GET("", middleware.AdminOnly(), handlers_instance.Audit.QueryLogs)
		}

		rollovers := auth.Group("/rollovers")
		{
			rollovers.POST("/sweep", middleware.AdminOnly(), handlers_instance.Rollover.RecordSweep)
		}

		users := auth.Group("/users")
		{
			users.PUT("/:id", handlers_instance.User.UpdateUser)
		}
	}
}
