package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/metrics"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func RegisterRoutes(r *gin.Engine, c *Container) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		metrics.Middleware(),
		middleware.CORSMiddleware(c.Config.CORSOrigins),
	)

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", c.Auth.Register)
		api.POST("/auth/login", c.LoginLimiter.Handler(), c.Auth.Login)

		api.GET("/services", c.Services.List)
		api.GET("/gallery", c.Gallery.List)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(c.Config, c.Tokens, c.Sessions))
		{
			secured.POST("/auth/logout", c.Auth.Logout)
			secured.GET("/me", c.Me.GetMe)

			secured.GET("/appointments", c.Appointments.List)
			secured.GET("/appointments/:id", c.Appointments.Get)
			secured.PUT("/appointments/:id", c.Appointments.Update)
			secured.PATCH("/appointments/:id", c.Appointments.Update)
			secured.DELETE("/appointments/:id", c.Appointments.Delete)

			secured.GET("/invoices", c.Invoices.List)
			secured.GET("/invoices/:id", c.Invoices.Get)
			secured.POST("/invoices/:id/send-email", c.Invoices.SendEmail)
			secured.POST("/invoices/:id/payment-link", c.Invoices.PaymentLink)
			secured.POST("/invoices/:id/mark-paid", c.Invoices.MarkPaid)

			secured.GET("/notifications", c.Notifications.List)
			secured.GET("/notifications/poll", c.Notifications.Poll)
			secured.PATCH("/notifications/:id/read", c.Notifications.MarkRead)
			secured.POST("/notifications/read-all", c.Notifications.MarkAllRead)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := secured.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/users", c.Users.List)
			admin.GET("/users/:id", c.Users.Get)
			admin.PUT("/users/:id", c.Users.Update)
			admin.DELETE("/users/:id", c.Users.Delete)

			admin.POST("/services", c.Services.Create)
			admin.PATCH("/services/:id", c.Services.Update)

			admin.POST("/gallery", c.Gallery.Upload)
			admin.DELETE("/gallery/:id", c.Gallery.Delete)

			admin.GET("/audit-logs", c.AuditLogs.List)

			admin.GET("/settings", c.Settings.Get)
			admin.PUT("/settings", c.Settings.Update)
		}
	}
}
