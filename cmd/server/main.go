package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/example/ride-engine/internal/config"
	"github.com/example/ride-engine/internal/directory"
	"github.com/example/ride-engine/internal/dispatch"
	"github.com/example/ride-engine/internal/eta"
	httpapi "github.com/example/ride-engine/internal/http"
	"github.com/example/ride-engine/internal/ingest"
	"github.com/example/ride-engine/internal/logging"
	"github.com/example/ride-engine/internal/matching"
	"github.com/example/ride-engine/internal/payments"
	"github.com/example/ride-engine/internal/pricing"
	"github.com/example/ride-engine/internal/ride"
	"github.com/example/ride-engine/internal/storage"
	"github.com/example/ride-engine/internal/users"
)

func main() {
	cfg, err := config.LoadServerConfig()
	logger := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	registry := users.NewRegistry()

	// Directory: Redis GEO when configured, in-process grid otherwise.
	var dir directory.Directory
	var reindex httpapi.Relocator
	if cfg.RedisAddr != "" {
		dir = directory.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisGeoKey, registry)
	} else {
		grid := directory.NewGridDir(cfg.CellSizeDeg)
		dir = grid
		reindex = grid
	}

	matchSvc := matching.NewService(dir, matching.ByName(cfg.MatchStrategy), logging.ForComponent(logger, "matching"))
	priceSvc := pricing.NewService(cfg.QuoteTTL, nil)

	var etaClient eta.Client = eta.Sim{}
	if cfg.OSRMEndpoint != "" {
		etaClient = &eta.Cached{
			Client: eta.NewOSRMClient(cfg.OSRMEndpoint),
			Cache:  eta.NewCache(cfg.QuoteTTL),
			Speed:  cfg.DefaultSpeedMps,
		}
	}

	var store storage.TripStore
	if cfg.PGDSN != "" {
		if cfg.RunMigrations {
			runMigrations(cfg.PGDSN, logger)
		}
		ps, err := storage.NewPostgresStore(cfg.PGDSN)
		if err != nil {
			logger.Error("postgres unavailable", "error", err)
			os.Exit(1)
		}
		store = ps
	} else {
		store = storage.NewMemoryStore()
	}

	rideSvc := ride.NewService(matchSvc, priceSvc, etaClient, store, logging.ForComponent(logger, "ride"))
	rideSvc.Attempts = cfg.MaxBookAttempts

	wsreg := dispatch.NewWSRegistry()
	if cfg.PushEndpoint != "" {
		rideSvc.Dispatch = dispatch.NewPush(cfg.PushEndpoint, wsreg)
	} else {
		rideSvc.Dispatch = wsreg
	}
	if cfg.StripeAPIKey != "" {
		rideSvc.Payments = payments.NewStripeClient(cfg.StripeAPIKey)
	}

	srv := httpapi.NewServer(rideSvc, matchSvc, registry, wsreg, logging.ForComponent(logger, "http"))
	srv.Reindex = reindex
	if len(cfg.KafkaBrokers) > 0 {
		kp := ingest.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		srv.Kafka = kp
	}

	httpSrv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srv,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("ride engine listening", "addr", cfg.HTTPAddr, "strategy", cfg.MatchStrategy)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("ride engine stopped")
}

func runMigrations(dsn string, logger *slog.Logger) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Error("migration db open failed", "error", err)
		return
	}
	defer db.Close()
	b, err := os.ReadFile(filepath.Join("migrations", "001_create_trips.sql"))
	if err != nil {
		logger.Error("migration read failed", "error", err)
		return
	}
	if _, err := db.Exec(string(b)); err != nil {
		logger.Error("migration exec failed", "error", err)
		return
	}
	logger.Info("migration applied", "file", "001_create_trips.sql")
}
