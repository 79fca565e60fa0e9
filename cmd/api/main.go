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

	"github.com/gin-gonic/gin"
	"github.com/health-center-lookup/app/config"
	"github.com/health-center-lookup/app/controllers"
	"github.com/health-center-lookup/app/services"
	"github.com/health-center-lookup/internal/query"
	"github.com/health-center-lookup/internal/resolver"
	"github.com/health-center-lookup/routes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	cleanupInterval   = 5 * time.Minute
	memoryMissLogSize = 1000
	shutdownTimeout   = 30 * time.Second
	connectTimeout    = 10 * time.Second
)

func main() {
	// Load configuration. CONFIG_FILE overrides the ./config/app.yaml lookup.
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	logger.Info("Starting Health Center Lookup Service",
		zap.String("env", cfg.App.Env),
		zap.String("data", cfg.Data.Path))

	// Dataset, vocabularies and index are built once here. A load error is fatal.
	engine, err := query.NewEngine(query.Options{
		DataPath:   cfg.Data.Path,
		CacheSize:  1,
		Similarity: resolver.Options{Threshold: cfg.Similarity.Threshold},
	}, logger)
	if err != nil {
		logger.Fatal("Failed to load health center dataset", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cacheService, local := initCache(ctx, cfg, logger)
	local.StartCleanupWorker(ctx, cleanupInterval)

	misses := initMissLog(cfg, logger)

	chatService := services.NewChatService(engine, services.NewReplyService(), cacheService, misses, logger)
	chatController := controllers.NewChatController(chatService, engine, logger)
	adminController := controllers.NewAdminController(engine, cacheService, misses, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, chatController, adminController, routes.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := cacheService.Close(); err != nil {
		logger.Error("Failed to close cache", zap.Error(err))
	}
	if err := misses.Close(shutdownCtx); err != nil {
		logger.Error("Failed to close miss log", zap.Error(err))
	}

	logger.Info("Server exited")
}

// initLogger picks the zap preset from app.env.
func initLogger(cfg *config.Config) *zap.Logger {
	var zc zap.Config
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	logger, err := zc.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}
	return logger
}

// initCache returns the reply cache and its in-memory level. Redis is added
// as a second level when redis.url is set and reachable.
func initCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (services.ICacheService, *services.CacheService) {
	local, err := services.NewCacheService(cfg.Cache.Size, cfg.Cache.TTL)
	if err != nil {
		logger.Fatal("Failed to create memory cache", zap.Error(err))
	}
	if cfg.Redis.URL == "" {
		return local, local
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	remote, err := services.NewRedisCacheService(pingCtx, cfg.Redis.URL, cfg.Cache.TTL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using memory cache only", zap.Error(err))
		return local, local
	}
	logger.Info("Using memory+redis reply cache")
	return services.NewHybridCacheService(local, remote, logger), local
}

// initMissLog stores unmatched queries in MongoDB when mongo.url is set,
// otherwise in a bounded in-memory ring.
func initMissLog(cfg *config.Config, logger *zap.Logger) services.MissRecorder {
	if cfg.Mongo.URL == "" {
		return services.NewMemoryMissLog(memoryMissLogSize)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URL))
	if err == nil {
		err = client.Ping(ctx, nil)
	}
	if err != nil {
		logger.Warn("MongoDB unavailable, using memory miss log", zap.Error(err))
		if client != nil {
			_ = client.Disconnect(context.Background())
		}
		return services.NewMemoryMissLog(memoryMissLogSize)
	}

	logger.Info("Connected to MongoDB", zap.String("database", cfg.Mongo.Database))
	return services.NewMongoMissLog(ctx, client.Database(cfg.Mongo.Database), logger)
}
