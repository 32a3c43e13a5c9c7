// File: /routes/routes.go
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alumninet-api/config"
	"alumninet-api/controllers"
	"alumninet-api/middleware"
	"alumninet-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	connectionController := controllers.NewConnectionController(db)
	messageController := controllers.NewMessageController(db)
	opportunityController := controllers.NewOpportunityController(db, emailService)
	applicationController := controllers.NewApplicationController(db, emailService)
	adminController := controllers.NewAdminController(db, emailService)
	profileController := controllers.NewProfileController(db)
	userController := controllers.NewUserController(db)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Auth routes (public, rate limited)
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(30, 10))
	{
		auth.POST("/register/student", authController.RegisterStudent)
		auth.POST("/register/alumni", authController.RegisterAlumni)
		auth.POST("/login", authController.Login)
	}
	api.GET("/auth/profile", middleware.AuthMiddleware(cfg.JWTSecret), authController.GetProfile)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		connections := protected.Group("/connections")
		{
			connections.POST("/send", connectionController.SendRequest)
			connections.POST("/respond", connectionController.RespondRequest)
			connections.GET("/", connectionController.GetConnections)
			connections.GET("/pending", connectionController.GetPendingRequests)
		}

		messages := protected.Group("/messages")
		{
			messages.POST("/send", messageController.SendMessage)
			messages.POST("/mark-read", messageController.MarkAsRead)
			messages.GET("/unread/count", messageController.GetUnreadCount)
			messages.GET("/:with_user_id", messageController.GetMessages)
		}

		opportunities := protected.Group("/opportunities")
		opportunities.Use(middleware.RequireRole("alumni"))
		{
			opportunities.POST("/", opportunityController.CreateOpportunity)
			opportunities.GET("/my-postings", opportunityController.GetMyPostings)
			opportunities.PUT("/:id", opportunityController.UpdateOpportunity)
		}

		applications := protected.Group("/applications")
		{
			applications.GET("/opportunities", applicationController.GetAllOpportunities)
			applications.POST("/", middleware.RequireRole("student"), applicationController.ApplyToOpportunity)
			applications.GET("/my-applications", middleware.RequireRole("student"), applicationController.GetMyApplications)
			applications.GET("/opportunity/:opportunity_id", middleware.RequireRole("alumni"), applicationController.GetApplicationsForOpportunity)
			applications.GET("/opportunity/:opportunity_id/accepted", middleware.RequireRole("alumni"), applicationController.GetAcceptedStudents)
			applications.POST("/opportunity/:opportunity_id/notify-accepted", middleware.RequireRole("alumni"), applicationController.NotifyAcceptedStudents)
			applications.PUT("/:application_id/status", middleware.RequireRole("alumni"), applicationController.UpdateApplicationStatus)
		}

		profile := protected.Group("/profile")
		{
			profile.PUT("/student", middleware.RequireRole("student"), profileController.UpdateStudentProfile)
			profile.PUT("/alumni", middleware.RequireRole("alumni"), profileController.UpdateAlumniProfile)
			profile.GET("/:user_id", profileController.GetUserProfile)
		}

		users := protected.Group("/users")
		{
			users.GET("/search", userController.SearchUsers)
			users.GET("/", userController.GetAllUsers)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.GET("/pending-users", adminController.GetPendingUsers)
			admin.POST("/verify/:user_id", adminController.VerifyUser)
			admin.POST("/revoke/:user_id", adminController.RevokeUser)
		}
	}
}

// SetupCORS allows the SPA frontend origin.
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
