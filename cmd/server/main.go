package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"memegrid/meme-app/internal/api"
	"memegrid/meme-app/internal/config"
	"memegrid/meme-app/internal/media"
	"memegrid/meme-app/internal/repository/mongo"
	"memegrid/meme-app/internal/service"
	"memegrid/meme-app/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting MemeGrid API Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureMemeIndexes(ctx, appDB.Collection("memes"))
		mongo.EnsureBookmarkIndexes(ctx, appDB.Collection("bookmarks"))
		mongo.EnsureReportIndexes(ctx, appDB.Collection("reports"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Media Engine ---
	engine := media.NewFFmpeg(cfg.Media.FFmpegPath, cfg.Media.FFprobePath)
	if cfg.Media.EnableTranscode {
		log.Println("Download transcoding is ENABLED.")
	} else {
		log.Println("Download transcoding is DISABLED; downloads return stored bytes unchanged.")
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	memeRepo := mongo.NewMongoMemeRepository(appDB)
	bookmarkRepo := mongo.NewMongoBookmarkRepository(appDB)
	reportRepo := mongo.NewMongoReportRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	memeService := service.NewMemeService(memeRepo, fileStorage, cfg.Media.MaxUploadBytes)
	trimService := service.NewTrimService(engine, cfg.Media.TempDir)
	downloadService := service.NewDownloadService(
		memeRepo,
		fileStorage,
		engine,
		cfg.Media.EnableTranscode,
		cfg.Media.LocalAssetDir,
		cfg.Media.TempDir,
	)
	bookmarkService := service.NewBookmarkService(bookmarkRepo)
	reportService := service.NewReportService(reportRepo, memeRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, memeService, trimService, downloadService, bookmarkService, reportService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
		// No aggressive write timeout: trim/download responses can be large
		// and transcoding holds the request open.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
