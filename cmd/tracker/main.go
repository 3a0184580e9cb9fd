// cmd/tracker/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"applytrack/internal/api"
	"applytrack/internal/common/config"
	"applytrack/internal/common/database"
	"applytrack/internal/common/logger"
	"applytrack/internal/common/observability"
	"applytrack/internal/notify"
	"applytrack/internal/reminder"
	"applytrack/internal/search"
	"applytrack/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting application tracker...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	applications := store.NewApplicationStore(pg.DB)
	if err := applications.Migrate(ctx); err != nil {
		zapLog.Fatal("schema migration failed", zap.Error(err))
	}

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch with retry (optional) ---
	var searcher search.Searcher = search.Disabled{}
	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		searcher = search.NewApplicationIndex(esClient.Client, cfg.Database.Elasticsearch.Index, log)
		zapLog.Info("Elasticsearch connected successfully")
	} else {
		zapLog.Info("Elasticsearch disabled, search falls back to in-memory matching")
	}

	// --- Init Notification Sink ---
	var sink notify.Notifier = notify.Noop{}
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		s, err := notify.NewSink(ctx, cfg.Notifications, log)
		if err != nil {
			zapLog.Fatal("notification sink init failed", zap.Error(err))
		}
		sink = s
		zapLog.Info("Notification sink initialized")
	} else {
		zapLog.Info("Notifications disabled, reminders will be computed but not delivered")
	}

	// --- Reminder Scheduler ---
	scheduler := reminder.NewScheduler(sink, redis.Client, log)
	defer scheduler.Stop()

	rearmReminders(ctx, applications, scheduler, log)

	// --- HTTP API ---
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	api.SetupRoutes(e, api.Dependencies{
		Store:         applications,
		Searcher:      searcher,
		Scheduler:     scheduler,
		DB:            pg,
		Logger:        log,
		Observability: obs,
	})

	go func() {
		zapLog.Info("HTTP API listening", zap.String("address", cfg.Server.Address()))
		if err := e.Start(cfg.Server.Address()); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Metrics Server ---
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
		})

		addr := fmt.Sprintf(":%d", cfg.Server.MetricsPort)
		zapLog.Info("Metrics server listening", zap.String("address", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			zapLog.Error("metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Application tracker stopped")
}

// rearmReminders restores in-process timers for interviews that are still in
// the future. Timers do not survive restarts, so armed state is rebuilt from
// the store on boot.
func rearmReminders(ctx context.Context, applications *store.ApplicationStore, scheduler *reminder.Scheduler, log logger.Logger) {
	apps, err := applications.List(ctx)
	if err != nil {
		log.WithError(err).Error("Could not restore reminders from store", nil)
		return
	}

	now := time.Now()
	restored := 0
	for _, app := range apps {
		if r, ok := reminder.Compute(app.CompanyName, app.InterviewDate, now); ok {
			scheduler.Schedule(app.ID, r)
			restored++
		}
	}

	log.Info("Reminders restored", map[string]interface{}{
		"count": restored,
	})
}
