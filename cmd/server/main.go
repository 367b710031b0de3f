package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"courseforge/internal/cache"
	"courseforge/internal/config"
	"courseforge/internal/editor"
	"courseforge/internal/repository"
	"courseforge/internal/service"
	"courseforge/internal/transport/rest"
	"courseforge/internal/transport/ws"
)

// @title Courseforge API
// @version 1.0
// @description Course authoring and viewing service with undo/redo editing sessions
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	redisAddr := cfg.RedisAddr
	// Remove redis:// prefix if present
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	courseRepo := repository.NewCourseRepo(db)
	mediaRepo, err := repository.NewMediaRepo(db)
	if err != nil {
		log.Fatal("Failed to open media bucket:", err)
	}
	localStore := repository.NewLocalStore(cfg.DataDir)

	// Initialize caches
	courseCache := cache.NewCourseCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.AdminCode, cfg.JWTSecret)
	courseSvc := service.NewCourseService(courseRepo, localStore, courseCache)
	editorSvc := service.NewEditorService(editor.NewManager(), courseSvc)
	mediaSvc := service.NewMediaService(mediaRepo, cfg.PublicBaseURL, cfg.MaxUploadSize)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	courseSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:   authSvc,
		CourseService: courseSvc,
		EditorService: editorSvc,
		MediaService:  mediaSvc,
		WSHub:         wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/courses/latest")
		log.Println("  GET  /v1/courses/{courseId}")
		log.Println("  POST /v1/courses/{courseId}/quiz/{blockId}/submit")
		log.Println("  POST /v1/editor/sessions")
		log.Println("  POST /v1/editor/sessions/{sessionId}/save")
		log.Println("  POST /v1/media")
		log.Println("  GET  /v1/media/{mediaId}/{filename}")
		log.Println("  WS   /v1/ws/courses/{courseId}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
