package router

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/princinho/pepinterview/controllers"
	"github.com/princinho/pepinterview/middleware"
	"github.com/princinho/pepinterview/models"
)

func corsConfig(origins []string) cors.Config {
	allowedOrigins := map[string]bool{}
	for _, origin := range origins {
		allowedOrigins[origin] = true
	}
	log.Printf("Allowed origins: %v", origins)

	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return len(allowedOrigins) == 0 || allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// New wires every route onto a fresh engine.
func New(app *controllers.App) *gin.Engine {
	r := gin.New()
	r.Use(cors.New(corsConfig(app.Config.AllowedOrigins)))
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": fmt.Sprint(recovered)})
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	requireAuth := middleware.AuthMiddleware(app.Config.Auth.JWTSecret, app.Users)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "PEP Interview API is running"})
	})

	auth := api.Group("/auth")
	{
		auth.POST("/signup", app.Signup())
		auth.POST("/login", app.Login())
		auth.POST("/forgot-password", app.ForgotPassword())
		auth.POST("/reset-password", app.ResetPassword())
		auth.GET("/me", requireAuth, app.Me())
		auth.POST("/change-password", requireAuth, app.ChangeMyPassword())
	}

	users := api.Group("/users", requireAuth)
	{
		users.GET("/:id", app.GetUser())
		users.PUT("/:id", app.UpdateUser())
		users.POST("/:id/resume", app.UploadResume())
	}

	interviews := api.Group("/interviews", requireAuth)
	{
		interviews.GET("/user/:userId", app.ListUserInterviews())
		interviews.GET("/:id", app.GetInterview())
		interviews.POST("", app.CreateInterview())
		interviews.PUT("/:id", app.UpdateInterview())
	}

	notifications := api.Group("/notifications", requireAuth)
	{
		notifications.GET("/ws", app.NotificationsSocket())
		notifications.GET("/user/:userId", app.ListUserNotifications())
		notifications.PATCH("/:id/read", app.MarkNotificationRead())
	}

	admin := api.Group("/admin", requireAuth, middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/interviews", app.ListAllInterviews())
		admin.GET("/interviews/conflicts", app.FindInterviewConflicts())
		admin.GET("/users", app.ListUsers())
		admin.PATCH("/users/:id/block", app.BlockUser())
		admin.DELETE("/users/:id", app.DeleteUser())
		admin.POST("/notifications", app.CreateNotification())
	}

	return r
}
