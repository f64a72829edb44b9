package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/salvatoluice/naswasoko-engine/internal/cart"
	"github.com/salvatoluice/naswasoko-engine/internal/catalog"
	"github.com/salvatoluice/naswasoko-engine/internal/checkout"
	h "github.com/salvatoluice/naswasoko-engine/internal/http"
	"github.com/salvatoluice/naswasoko-engine/internal/payment"
	"github.com/salvatoluice/naswasoko-engine/internal/pricing"
	"github.com/salvatoluice/naswasoko-engine/internal/storage"
)

type Config struct {
	HTTPPort              string
	DataDir               string
	RedisAddr             string // when set, device storage uses redis instead of sqlite
	StorageMigrationsPath string
	CatalogMigrationsPath string
	ConfirmLatency        time.Duration
	ConfirmFailureRate    bool // simulate random refusals
	ShutdownTimeout       time.Duration
	Policy                pricing.Policy
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		DataDir:               getEnv("DATA_DIR", "./data"),
		RedisAddr:             getEnv("REDIS_ADDR", ""),
		StorageMigrationsPath: getEnv("STORAGE_MIGRATIONS_PATH", "./internal/storage/migrations"),
		CatalogMigrationsPath: getEnv("CATALOG_MIGRATIONS_PATH", "./internal/catalog/migrations"),
		ConfirmLatency:        getEnvDuration("CONFIRM_LATENCY", 800*time.Millisecond),
		ConfirmFailureRate:    getEnv("CONFIRM_SIMULATE_FAILURES", "true") == "true",
		ShutdownTimeout:       10 * time.Second,
		Policy: pricing.Policy{
			FreeShippingThreshold: getEnvInt64("FREE_SHIPPING_THRESHOLD", 10000),
			FlatShippingFee:       getEnvInt64("FLAT_SHIPPING_FEE", 350),
			TaxRate:               getEnvFloat("TAX_RATE", 0.16),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		log.Fatalf("invalid %s: %v", key, value)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Fatalf("invalid %s: %v", key, value)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Fatalf("invalid %s: %v", key, value)
	}
	return defaultValue
}

func openDeviceStorage(cfg *Config) (storage.Store, error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, err
		}
		log.Printf("device storage: redis at %s", cfg.RedisAddr)
		return storage.NewRedisStore(client), nil
	}

	store, err := storage.NewSQLiteStore(filepath.Join(cfg.DataDir, "storefront.db"))
	if err != nil {
		return nil, err
	}
	if err := store.RunMigrations(cfg.StorageMigrationsPath); err != nil {
		return nil, err
	}
	log.Printf("device storage: sqlite in %s", cfg.DataDir)
	return store, nil
}

func openCatalog(cfg *Config) (*catalog.Repository, error) {
	repo, err := catalog.NewRepository(filepath.Join(cfg.DataDir, "catalog.db"))
	if err != nil {
		return nil, err
	}
	if err := repo.RunMigrations(cfg.CatalogMigrationsPath); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if err := repo.Seed(ctx, seedProducts()); err != nil {
			return nil, err
		}
		log.Printf("seeded catalog with %d products", len(seedProducts()))
	}
	return repo, nil
}

func main() {
	log.Println("storefront engine starting...")

	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}

	cfg := loadConfig()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("failed to create data dir: %v", err)
	}

	deviceStore, err := openDeviceStorage(cfg)
	if err != nil {
		log.Fatalf("failed to open device storage: %v", err)
	}
	defer deviceStore.Close()

	catalogRepo, err := openCatalog(cfg)
	if err != nil {
		log.Fatalf("failed to open catalog: %v", err)
	}
	defer catalogRepo.Close()

	var source payment.StatusSource = payment.AlwaysApprove{}
	if cfg.ConfirmFailureRate {
		source = payment.RandomStatus{}
	}
	confirmer := payment.NewGateway(source, cfg.ConfirmLatency)

	cartStore := cart.New(cfg.Policy, deviceStore)
	history := checkout.NewHistory(deviceStore)
	session := checkout.NewSession(cartStore, confirmer, history)

	router := h.NewRouter(
		h.NewCartHandler(cartStore, catalogRepo),
		h.NewCheckoutHandler(session),
		h.NewProductHandler(catalogRepo),
		h.NewOrdersHandler(history),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront engine listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
