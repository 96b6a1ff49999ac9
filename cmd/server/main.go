package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NEXESMISSION/KESTI-sub001/internal/cart"
	"github.com/NEXESMISSION/KESTI-sub001/internal/catalog"
	"github.com/NEXESMISSION/KESTI-sub001/internal/checkout"
	"github.com/NEXESMISSION/KESTI-sub001/internal/events"
	h "github.com/NEXESMISSION/KESTI-sub001/internal/http"
	"github.com/NEXESMISSION/KESTI-sub001/internal/sales"
)

type Config struct {
	HTTPPort              string
	CatalogDBPath         string
	CatalogMigrationsPath string
	SalesCreds            *sales.Credentials
	RedisAddr             string
	RedisPassword         string
	KafkaBrokers          []string
	RequestTimeout        time.Duration
	ShutdownTimeout       time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		CatalogDBPath:         getEnv("CATALOG_DB_PATH", "catalog.db"),
		CatalogMigrationsPath: getEnv("CATALOG_MIGRATIONS_PATH", "internal/catalog/migrations"),
		SalesCreds: &sales.Credentials{
			Host:              getEnv("SALES_DB_HOST", "localhost"),
			Port:              getEnvInt("SALES_DB_PORT", 5432),
			User:              getEnv("SALES_DB_USER", "postgres"),
			Password:          getEnv("SALES_DB_PASSWORD", "postgres"),
			DBName:            getEnv("SALES_DB_NAME", "salesdb"),
			MigrationsDirPath: getEnv("SALES_MIGRATIONS_PATH", "internal/sales/migrations"),
		},
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:    []string{getEnv("KAFKA_BROKER", "localhost:9092")},
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog store (SQLite)
	catalogRepo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer catalogRepo.Close()
	if err := catalogRepo.RunMigrations(cfg.CatalogMigrationsPath); err != nil {
		log.Fatalf("Failed to run catalog migrations: %v", err)
	}
	log.Printf("Catalog database ready at %s", cfg.CatalogDBPath)

	// Sales ledger (Postgres)
	salesRepo, err := sales.NewRepository(cfg.SalesCreds)
	if err != nil {
		log.Fatalf("Failed to connect to sales database: %v", err)
	}
	defer salesRepo.Close()
	if err := salesRepo.RunMigrations(cfg.SalesCreds); err != nil {
		log.Fatalf("Failed to run sales migrations: %v", err)
	}
	log.Printf("Connected to sales database at %s:%d", cfg.SalesCreds.Host, cfg.SalesCreds.Port)

	// Catalog cache (Redis)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	catalogService := catalog.NewService(catalogRepo, catalog.NewRedisCache(redisClient))
	cartStore := cart.NewStore()
	orchestrator := checkout.NewOrchestrator(salesRepo, catalogService, cartStore)

	// Outbox publisher
	poller := events.NewOutboxPoller(salesRepo, cfg.KafkaBrokers...)
	go poller.Run(ctx)

	cartHandler := h.NewCartHandler(cartStore, catalogService)
	checkoutHandler := h.NewCheckoutHandler(orchestrator)
	productHandler := h.NewProductHandler(catalogService)
	salesHandler := h.NewSalesHandler(salesRepo)

	r := h.NewRouter(cartHandler, checkoutHandler, productHandler, salesHandler, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("POS server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	cancel() // stops the outbox poller

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("POS server stopped")
}
