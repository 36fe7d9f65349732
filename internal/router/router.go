package router

import (
	"time"

	"github.com/bohdan-dev/fileshare/internal/handlers"
	"github.com/bohdan-dev/fileshare/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.AuthMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/signUp", handlers.SignUp)
			auth.POST("/login", handlers.Login)
		}

		files := api.Group("/files", middleware.RequireAuth())
		{
			files.POST("/upload", handlers.UploadFile)
			files.GET("/my", handlers.MyFiles)
			files.DELETE("", handlers.DeleteFile)
		}
	}

	return r
}
