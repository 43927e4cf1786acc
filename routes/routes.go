package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/alfons-cm/community-management-backend/config"
	"github.com/alfons-cm/community-management-backend/internal/auth"
	"github.com/alfons-cm/community-management-backend/internal/conference"
	"github.com/alfons-cm/community-management-backend/internal/configuration"
	"github.com/alfons-cm/community-management-backend/internal/employee"
	"github.com/alfons-cm/community-management-backend/internal/mailtemplate"
	"github.com/alfons-cm/community-management-backend/internal/request"
	"github.com/alfons-cm/community-management-backend/middleware"
)

// Handlers bundles everything the route table wires up.
type Handlers struct {
	Auth           *auth.Handler
	AuthService    auth.Service
	Conferences    *conference.Handler
	Requests       *request.Handler
	Employees      *employee.Handler
	Configurations *configuration.Handler
	MailTemplates  *mailtemplate.Handler
}

// Setup builds the full route table. Every business route requires a login;
// the settings group and the status/employee-list routes additionally
// require the ADMIN role.
func Setup(r *gin.Engine, cfg *config.Config, h *Handlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/forgot-password", h.Auth.ForgotPassword)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg, h.AuthService))
	{
		protected.POST("/auth/change-password", h.Auth.ChangePassword)

		protected.GET("/me", h.Employees.Me)
		protected.PUT("/me/theme", h.Employees.UpdateTheme)

		conferences := protected.Group("/conferences")
		{
			conferences.GET("", h.Conferences.List)
			conferences.GET("/export", h.Conferences.Export)
			conferences.GET("/:id", h.Conferences.Get)
			conferences.POST("", middleware.RequireAdmin(), h.Conferences.Create)
			conferences.PUT("/:id", middleware.RequireAdmin(), h.Conferences.Update)
			conferences.DELETE("/:id", middleware.RequireAdmin(), h.Conferences.Delete)
		}

		requests := protected.Group("/requests")
		{
			requests.GET("", h.Requests.List)
			requests.GET("/export", h.Requests.Export)
			requests.POST("", h.Requests.Create)
			requests.PUT("/:employee_id/:conference_id", h.Requests.Update)
			requests.DELETE("/:employee_id/:conference_id", h.Requests.Delete)
			requests.POST("/:employee_id/:conference_id/status",
				middleware.RequireAdmin(), h.Requests.SetStatus)
		}

		protected.GET("/employees", middleware.RequireAdmin(), h.Employees.List)

		settings := protected.Group("/settings")
		settings.Use(middleware.RequireAdmin())
		{
			settings.GET("/configuration", h.Configurations.List)
			settings.GET("/configuration/:key", h.Configurations.Get)
			settings.POST("/configuration", h.Configurations.Create)
			settings.PUT("/configuration/:key", h.Configurations.Update)
			settings.DELETE("/configuration/:key", h.Configurations.Delete)

			settings.GET("/mail-templates", h.MailTemplates.List)
			settings.GET("/mail-templates/missing", h.MailTemplates.Missing)
			settings.GET("/mail-templates/:id", h.MailTemplates.Get)
			settings.POST("/mail-templates", h.MailTemplates.Create)
			settings.PUT("/mail-templates/:id", h.MailTemplates.Update)
			settings.DELETE("/mail-templates/:id", h.MailTemplates.Delete)
		}
	}
}
