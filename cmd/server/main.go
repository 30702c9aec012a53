package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"permd/internal/perm/config"
	"permd/internal/perm/engine"
	"permd/internal/perm/events"
	"permd/internal/perm/handler"
	"permd/internal/perm/registry"
	"permd/internal/perm/repository"
	"permd/internal/perm/router"
	"permd/internal/perm/util"
	"permd/pkg/discovery"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// 0. Init Logger
	util.InitLogger()
	logger := util.GetLogger()

	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. Init MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	db := client.Database(cfg.DBName)
	repo := repository.NewMongoRepository(db, cfg)

	if err := repo.EnsureIndexes(context.Background()); err != nil {
		logger.Warn("Failed to ensure indexes", "error", err)
	}

	// 3. Redis-backed action registry (shared cache is optional)
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, continuing without shared cache", "error", err)
		}
	}

	reg := registry.New(repo, rdb, cfg.ActionCacheTTL, cfg.RegistryRefresh, logger)
	if err := reg.Start(context.Background()); err != nil {
		logger.Error("Failed to load action registry", "error", err)
		os.Exit(1)
	}

	// 4. Engine + cache invalidation consumer
	eng := engine.New(reg, repo, logger, cfg.EnumerationConcurrency)

	consumer, err := events.NewConsumer(cfg.RabbitURI, reg, logger)
	if err != nil {
		logger.Error("Failed to init event consumer", "error", err)
		os.Exit(1)
	}
	if err := consumer.Start(); err != nil {
		logger.Error("Failed to start event consumer", "error", err)
		os.Exit(1)
	}

	// 5. Init Echo & Routes
	h := handler.NewPermissionHandler(eng)

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	router.RegisterRoutes(e, h, cfg.JWTSecret)

	// 6. Optional Consul registration
	var sd *discovery.ServiceRegistry
	if cfg.ConsulAddr != "" {
		sd, err = discovery.NewServiceRegistry(cfg, logger)
		if err != nil {
			logger.Error("Failed to init service discovery", "error", err)
			os.Exit(1)
		}
		if err := sd.Register(); err != nil {
			logger.Warn("Consul registration failed", "error", err)
		}
	}

	// 7. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("shutting down the server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if sd != nil {
		if err := sd.Deregister(); err != nil {
			logger.Warn("Consul deregistration failed", "error", err)
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server Shutdown Failed", "error", err)
	}

	if err := consumer.Close(); err != nil {
		logger.Warn("Event consumer close failed", "error", err)
	}
	reg.Stop()

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Warn("Redis close failed", "error", err)
		}
	}
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("Failed to disconnect DB", "error", err)
	}

	logger.Info("Server exited properly")
}
