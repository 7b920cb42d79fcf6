package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"madrasa/course-admin/internal/service"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth        service.AuthService
	Courses     service.CourseService
	Videos      service.VideoService
	Users       service.UserService
	Analytics   service.AnalyticsService
	Uploads     service.UploadService
	Maintenance service.MaintenanceService
}

func SetupRoutes(router *gin.Engine, jwtSecret string, svcs Services, logger *zap.Logger) {
	authHandler := NewAuthHandler(svcs.Auth, logger)
	courseHandler := NewCourseHandler(svcs.Courses, logger)
	videoHandler := NewVideoHandler(svcs.Videos, logger)
	userHandler := NewUserHandler(svcs.Users, logger)
	analyticsHandler := NewAnalyticsHandler(svcs.Analytics, logger)
	uploadHandler := NewUploadHandler(svcs.Uploads, logger)
	maintenanceHandler := NewMaintenanceHandler(svcs.Maintenance, logger)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)
		// Registration of further panel admins requires an existing session.
		protected.POST("/auth/register", authHandler.Register)

		courseGroup := protected.Group("/courses")
		{
			courseGroup.GET("", courseHandler.ListCourses)
			courseGroup.POST("", courseHandler.CreateCourse)
			courseGroup.PATCH("/:courseId", courseHandler.UpdateCourse)
			courseGroup.DELETE("/:courseId", courseHandler.DeleteCourse)

			courseGroup.GET("/:courseId/final-quiz", courseHandler.GetFinalQuiz)
			courseGroup.POST("/:courseId/final-quiz", courseHandler.AddFinalQuizQuestion)
			courseGroup.PATCH("/:courseId/final-quiz/:index", courseHandler.UpdateFinalQuizQuestion)
			courseGroup.DELETE("/:courseId/final-quiz/:index", courseHandler.DeleteFinalQuizQuestion)
		}

		videoGroup := protected.Group("/videos")
		{
			videoGroup.GET("", videoHandler.ListVideos)
			videoGroup.POST("", videoHandler.CreateVideo)
			videoGroup.POST("/reindex", videoHandler.Reindex)
			videoGroup.PATCH("/:videoId", videoHandler.UpdateVideo)
			videoGroup.DELETE("/:videoId", videoHandler.DeleteVideo)

			videoGroup.GET("/:videoId/questions", videoHandler.GetQuestions)
			videoGroup.POST("/:videoId/questions", videoHandler.AddQuestion)
			videoGroup.PATCH("/:videoId/questions/:index", videoHandler.UpdateQuestion)
			videoGroup.DELETE("/:videoId/questions/:index", videoHandler.DeleteQuestion)
		}

		protected.GET("/users", userHandler.ListUsers)

		analyticsGroup := protected.Group("/analytics")
		{
			analyticsGroup.GET("/quiz-attempts", analyticsHandler.QuizAttempts)
			analyticsGroup.GET("/users", analyticsHandler.UserSignups)
			analyticsGroup.GET("/countries", analyticsHandler.Countries)
		}

		uploadGroup := protected.Group("/uploads")
		{
			uploadGroup.POST("/sign", uploadHandler.SignUpload)
			uploadGroup.DELETE("", uploadHandler.DeleteImage)
		}

		maintenanceGroup := protected.Group("/maintenance")
		{
			maintenanceGroup.POST("/backfill-video-descriptions", maintenanceHandler.BackfillDescriptions)
			maintenanceGroup.POST("/remove-legacy-titles", maintenanceHandler.RemoveLegacyTitles)
		}
	}
}
