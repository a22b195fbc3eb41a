// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/eventease/internal/cache"
	"github.com/Shivanand-hulikatti/eventease/internal/config"
	"github.com/Shivanand-hulikatti/eventease/internal/database"
	"github.com/Shivanand-hulikatti/eventease/internal/handler"
	"github.com/Shivanand-hulikatti/eventease/internal/logger"
	"github.com/Shivanand-hulikatti/eventease/internal/model"
	"github.com/Shivanand-hulikatti/eventease/internal/notify"
	"github.com/Shivanand-hulikatti/eventease/internal/repository"
	"github.com/Shivanand-hulikatti/eventease/internal/seed"
	"github.com/Shivanand-hulikatti/eventease/internal/service"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // Loads .env file if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	appLogger, err := logger.New(logger.Options{
		Dir:     cfg.Log.Dir,
		Service: "eventease",
		Level:   logger.ParseLevel(cfg.Log.Level),
		Color:   cfg.Log.Color,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer appLogger.Close()

	ctx := context.Background()
	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal("MAIN", err.Error())
	}
}

func run(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) error {
	// ── 1. Record store ───────────────────────────────────────────────────
	records, err := seedRecords(cfg.Catalog.SeedFile)
	if err != nil {
		return err
	}

	var store service.EventStore
	switch cfg.Catalog.Store {
	case config.StorePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, appLogger)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		pgStore := repository.NewPostgresStore(pool)
		if cfg.Database.SeedIfEmpty {
			seeded, err := pgStore.SeedIfEmpty(ctx, records)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			if seeded {
				appLogger.LogDatabase("SEED", "events", fmt.Sprintf("inserted %d events", len(records)))
			}
		}
		store = pgStore
	default:
		store = repository.NewMemoryStore(records)
		appLogger.Info("MAIN", fmt.Sprintf("in-memory store loaded with %d events", len(records)))
	}

	// ── 2. Listing cache ──────────────────────────────────────────────────
	var eventCache cache.EventCache
	if cfg.Catalog.Cache == config.CacheRedis {
		client, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer client.Close()
		eventCache = cache.NewRedis(client, cfg.Redis.Key)
		appLogger.Info("MAIN", "✓ Connected to Redis at "+cfg.Redis.Addr)
	}

	// ── 3. Registration publisher ─────────────────────────────────────────
	var publisher notify.Publisher = notify.Nop{}
	if cfg.Kafka.Enabled {
		kp := notify.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, appLogger)
		defer kp.Close()
		publisher = kp
		appLogger.LogKafka("READY", cfg.Kafka.Topic, fmt.Sprintf("brokers %v", cfg.Kafka.Brokers))
	}

	// ── 4. Wire up layers ─────────────────────────────────────────────────
	catalog := service.NewEventCatalog(store, eventCache,
		service.WithLogger(appLogger),
		service.WithPublisher(publisher),
		service.WithCacheTTL(cfg.Catalog.CacheTTL),
		service.WithFetchDelay(cfg.Catalog.FetchDelay),
		service.WithRegisterDelay(cfg.Catalog.RegisterDelay),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.NewRouter(catalog, appLogger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// ── 5. Start server with graceful shutdown ────────────────────────────
	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("MAIN", fmt.Sprintf("✓ Server listening on http://localhost:%s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	appLogger.Info("MAIN", "shutting down server…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	appLogger.Info("MAIN", "server stopped")
	return nil
}

func seedRecords(path string) ([]model.Event, error) {
	now := time.Now().UTC()
	if path == "" {
		return seed.Sample(now), nil
	}
	events, err := seed.LoadFile(path, now)
	if err != nil {
		return nil, fmt.Errorf("seed file: %w", err)
	}
	return events, nil
}
