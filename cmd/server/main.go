package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rental-service/internal/domain/repository"
	"rental-service/internal/infrastructure/auth"
	"rental-service/internal/infrastructure/config"
	"rental-service/internal/infrastructure/persistence"
	"rental-service/internal/infrastructure/router"
	"rental-service/internal/interface/handler"
	"rental-service/internal/interface/ownerrez"
	repo "rental-service/internal/interface/repository"
	"rental-service/internal/interface/thumbnail"
	"rental-service/internal/usecase"
	"rental-service/pkg/logger"
	"rental-service/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Rental Service", "version", cfg.AppVersion)

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("rental", prometheus.DefaultRegisterer)

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	propertyRepo := repo.NewMongoPropertyRepository(db)
	userRepo := repo.NewMongoUserRepository(db)
	if err := propertyRepo.EnsureIndexes(ctx); err != nil {
		log.Warn("Failed to create property indexes", "error", err)
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Warn("Failed to create user indexes", "error", err)
	}

	// Audit trail goes to PostgreSQL when configured, otherwise to the log
	var auditRepo repository.SyncAuditRepository = repo.NewLogSyncAuditRepository(log)
	var gormDB *gorm.DB
	if cfg.PostgresURI != "" {
		log.Info("Connecting to PostgreSQL")
		gormDB, err = persistence.NewPostgresDB(cfg.PostgresURI, &repo.RemoteSyncAudit{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		auditRepo = repo.NewGormSyncAuditRepository(gormDB)
	}

	ownerRezClient, err := ownerrez.NewClient(cfg, m, log)
	if err != nil {
		log.Fatal("Failed to create OwnerRez client", "error", err)
	}

	// Thumbnails are optional; Redis fronts the service when both are configured
	var redisClient *redis.Client
	var thumbnails repository.ThumbnailProvider
	if cfg.ThumbnailServiceURL != "" {
		httpProvider, err := thumbnail.NewHTTPProvider(cfg.ThumbnailServiceURL, cfg.ThumbnailTimeout, log)
		if err != nil {
			log.Fatal("Failed to create thumbnail provider", "error", err)
		}
		thumbnails = httpProvider

		if cfg.RedisAddr != "" {
			redisClient, err = persistence.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
			if err != nil {
				log.Fatal("Failed to connect to Redis", "error", err)
			}
			cache := repo.NewRedisThumbnailCache(redisClient)
			thumbnails = thumbnail.NewCachedProvider(httpProvider, cache, cfg.ThumbnailCacheTTL, log)
		}
	} else {
		log.Warn("THUMBNAIL_SERVICE_URL not set, thumbnail generation disabled")
	}

	ensurer := usecase.NewThumbnailEnsurer(thumbnails, cfg.ThumbnailTimeout, m, log)
	bookingService := usecase.NewBookingService(ownerRezClient, m, log)
	propertyService := usecase.NewPropertyService(ownerRezClient, propertyRepo, auditRepo, ensurer, m, log)
	profileService := usecase.NewProfileService(userRepo, ownerRezClient, auditRepo, m, log)
	sessions := auth.NewSessionManager(cfg.SessionSecret, 0)

	h := handler.NewHandler(
		handler.Options{DefaultSince: cfg.DefaultSince, SessionCookie: cfg.SessionCookie},
		bookingService,
		propertyService,
		profileService,
		auditRepo,
		userRepo,
		sessions,
		log,
	)

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(h, prometheus.DefaultGatherer, log),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}
	if gormDB != nil {
		if err := persistence.ClosePostgresDB(gormDB); err != nil {
			log.Error("PostgreSQL close error", "error", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Redis close error", "error", err)
		}
	}

	log.Info("Rental Service stopped")
}
