package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cooooin/harmony/internal/api"
	"github.com/cooooin/harmony/internal/auth"
	"github.com/cooooin/harmony/internal/config"
	"github.com/cooooin/harmony/internal/db"
	"github.com/cooooin/harmony/internal/logger"
	"github.com/cooooin/harmony/internal/metrics"
	"github.com/cooooin/harmony/internal/repository/sqlite"
	"github.com/cooooin/harmony/internal/services"
	"github.com/cooooin/harmony/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, db.Config{
		Path:           cfg.DatabasePath,
		MaxConns:       cfg.PoolMaxConns,
		AcquireTimeout: cfg.AcquireTimeout,
		BusyTimeout:    cfg.BusyTimeout,
	})
	if err != nil {
		log.Error("store open", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	// The store is not served until every pending migration has applied.
	log.Info("applying migrations")
	if err := db.RunMigrations(ctx, pool); err != nil {
		log.Error("migrations", "err", err)
		os.Exit(1)
	}
	version, err := db.SchemaVersion(ctx, pool)
	if err != nil {
		log.Error("schema version", "err", err)
		os.Exit(1)
	}
	log.Info("schema ready", "version", version)

	retry := db.RetryPolicy{
		MaxAttempts: cfg.BusyAttempts,
		BaseDelay:   cfg.BusyBaseDelay,
		MaxDelay:    cfg.BusyMaxDelay,
	}
	repos := sqlite.NewRepositories(pool, retry)

	wp := worker.NewPool(cfg.WorkerPoolSize)
	defer wp.Stop()

	auditor := services.NewAuditor(repos.AuditEvents, wp, log)

	keys := map[string][]byte{cfg.ClaimKeyID: []byte(cfg.SecretKey)}
	tm := auth.NewTokenManager("harmony", cfg.ClaimTTL, cfg.ClaimKeyID, []byte(cfg.SecretKey),
		func(keyID string) ([]byte, error) {
			k, ok := keys[keyID]
			if !ok {
				return nil, fmt.Errorf("unknown key id %q", keyID)
			}
			return k, nil
		})

	personSvc := services.NewPersonService(repos.Persons, tm, auditor)
	objectSvc := services.NewObjectService(repos.Objects, auditor)
	tradeSvc := services.NewTradeService(repos.Trades, auditor)
	txnSvc := services.NewTransactionService(repos.Transactions, auditor)

	metrics.Init()
	metrics.RegisterPoolGauges(pool.Available, pool.InUse)

	r := api.NewRouter(api.RouterDeps{
		Cfg:     cfg,
		Log:     log,
		TM:      tm,
		Persons: personSvc,
		Objects: objectSvc,
		Trades:  tradeSvc,
		Txns:    txnSvc,
	})

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		var err error
		if cfg.CertPath != "" && cfg.KeyPath != "" {
			log.Info("server starting", "addr", cfg.Address, "tls", true)
			err = srv.ListenAndServeTLS(cfg.CertPath, cfg.KeyPath)
		} else {
			log.Info("server starting", "addr", cfg.Address, "tls", false)
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
