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

	_ "storeaudit/docs"
	"storeaudit/internal/cache"
	"storeaudit/internal/config"
	"storeaudit/internal/repository"
	"storeaudit/internal/service"
	"storeaudit/internal/transport/rest"
	"storeaudit/internal/transport/ws"
)

// @title Store Audit API
// @version 1.0
// @description Retail store inspections scored against weighted audit templates
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	if err := repository.EnsureIndexes(pingCtx, db); err != nil {
		log.Printf("Warning: failed to create indexes: %v", err)
	}

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURI,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	defer wsHub.Close()
	log.Println("WebSocket hub started")

	// Initialize repositories
	templateRepo := repository.NewTemplateRepo(db)
	inspectionRepo := repository.NewInspectionRepo(db)

	// Initialize caches
	templateCache := cache.NewTemplateCache(rdb, cfg.TemplateCacheTTL)
	leaderboard := cache.NewLeaderboardCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.Users)
	templateSvc := service.NewTemplateService(templateRepo, templateCache)
	inspectionSvc := service.NewInspectionService(templateSvc, inspectionRepo, leaderboard)

	// Inject notifier (wsHub implements service.Notifier)
	inspectionSvc.SetNotifier(wsHub)

	container := &rest.Container{
		Config:            cfg,
		AuthService:       authSvc,
		TemplateService:   templateSvc,
		InspectionService: inspectionSvc,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET/PUT/DELETE /v1/templates")
		log.Println("  GET  /v1/templates/{templateId}/leaderboard")
		log.Println("  GET  /v1/templates/{templateId}/recompute")
		log.Println("  POST /v1/inspections/preview")
		log.Println("  POST/GET /v1/inspections")
		log.Println("  GET  /v1/stores/{storeId}/inspections")
		log.Println("  WS   /v1/ws/stores/{storeId}")

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
