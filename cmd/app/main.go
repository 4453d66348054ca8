package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/cmd"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/catalog"
	"marketplace/internal/adapters/out/geocoder"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/postgres/migrations"
	"marketplace/internal/adapters/out/redis/locationstore"
	"marketplace/internal/adapters/out/redis/ordercache"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if err = migrations.Up(configs.DSN()); err != nil {
		log.Fatalf("Error applying migrations: %v", err)
	}

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	if err = redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}

	writer := kafka.NewWriter(configs.KafkaOrderEventsTopic, configs.KafkaBrokers...)

	app := cmd.NewCompositionRoot(configs, gormDB, cmd.Dependencies{
		Cache:     ordercache.NewRedisOrderCache(redisClient, configs.OrderCacheTTL),
		Locations: locationstore.NewRedisLocationStore(redisClient, configs.LocationSampleTTL),
		Publisher: kafka.NewPublisher(writer),
		Catalog:   catalog.NewClient(configs.CatalogBaseURL, &http.Client{Timeout: 3 * time.Second}, logger),
		Geocoder:  geocoder.NewBogorFixture(),
		Logger:    logger,
	})

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e, err := httpin.NewRouter(httpin.NewServer(app.CreateHTTPHandlers()), httpin.RouterOptions{
		RequestTimeout: configs.RequestTimeout,
		Logger:         logger,
	})
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("HTTP server started", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	jobManager.StopAll()

	if err = writer.Close(); err != nil {
		logger.Error("Kafka writer close failed", "error", err)
	}
	if err = redisClient.Close(); err != nil {
		logger.Error("Redis client close failed", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
