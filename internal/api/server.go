package api

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"notesvc/internal/app/config"
	"notesvc/internal/app/dsn"
	"notesvc/internal/app/handler"
	"notesvc/internal/app/license"
	"notesvc/internal/app/middleware"
	"notesvc/internal/app/redis"
	"notesvc/internal/app/repository"
	"notesvc/internal/app/storage"
	"notesvc/internal/pkg"
)

// StartServer wires up every layer and runs the HTTP server.
func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("config error: %v", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatalf("repository error: %v", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Fatalf("redis error: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(
		cfg.MinIO.Endpoint,
		cfg.MinIO.AccessKey,
		cfg.MinIO.SecretKey,
		cfg.MinIO.Bucket,
		cfg.MinIO.UseSSL,
	)
	if err != nil {
		logrus.Fatalf("minio error: %v", err)
	}

	licenseService := license.NewService(repo)

	// materialize the license row so ServerID is stable from first boot
	if _, err := licenseService.GetInfo(); err != nil {
		logrus.Fatalf("license init error: %v", err)
	}

	authHandler := handler.NewAuthHandler(repo, redisClient, cfg, licenseService)
	apiHandler := handler.NewAPIHandler(repo, minioClient, licenseService, authHandler)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)
	licenseGate := middleware.NewLicenseGate(licenseService)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(licenseGate.Gate())

	apiHandler.RegisterAPIRoutes(r, authMiddleware)

	app := pkg.NewApp(cfg, r, apiHandler)
	app.RunApp()
}
