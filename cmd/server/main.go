package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"madrasa/course-admin/internal/api"
	"madrasa/course-admin/internal/config"
	"madrasa/course-admin/internal/repository/mongo"
	"madrasa/course-admin/internal/service"
	"madrasa/course-admin/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("could not load config: " + err.Error())
	}

	logger, err := newLogger(cfg.Log.Mode)
	if err != nil {
		panic("could not initialize logger: " + err.Error())
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting course admin server", zap.String("address", cfg.Server.Address))

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established", zap.String("database", cfg.Database.Name))

	// Index creation runs in the background so startup is not blocked.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureCourseIndexes(ctx, appDB.Collection("courses"))
		mongo.EnsureVideoIndexes(ctx, appDB.Collection("videos"))
		mongo.EnsureAttemptIndexes(ctx, appDB.Collection("user_quiz_attempts"))
		mongo.EnsureAdminIndexes(ctx, appDB.Collection("admins"))
		logger.Info("index creation completed")
	}()

	// --- Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, logger)
	if err != nil {
		logger.Fatal("failed to initialize S3 storage", zap.Error(err))
	}

	// --- Repositories ---
	courseRepo := mongo.NewMongoCourseRepository(appDB)
	videoRepo := mongo.NewMongoVideoRepository(appDB)
	userRepo := mongo.NewMongoUserRepository(appDB)
	attemptRepo := mongo.NewMongoAttemptRepository(appDB)
	adminRepo := mongo.NewMongoAdminRepository(appDB)

	// --- Services ---
	svcs := api.Services{
		Auth:        service.NewAuthService(adminRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		Courses:     service.NewCourseService(courseRepo, videoRepo, logger),
		Videos:      service.NewVideoService(videoRepo, logger),
		Users:       service.NewUserService(userRepo, attemptRepo, logger),
		Analytics:   service.NewAnalyticsService(userRepo, attemptRepo, logger),
		Uploads:     service.NewUploadService(fileStorage, logger),
		Maintenance: service.NewMaintenanceService(courseRepo, videoRepo, logger),
	}

	// --- HTTP ---
	if cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(router, cfg.JWT.Secret, svcs, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen and serve failed", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("address", cfg.Server.Address))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
