package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/MateusVidalm/ECOTANQUE/internal/auth"
	"github.com/MateusVidalm/ECOTANQUE/internal/config"
	"github.com/MateusVidalm/ECOTANQUE/internal/infra"
	"github.com/MateusVidalm/ECOTANQUE/internal/ledger"
	"github.com/MateusVidalm/ECOTANQUE/internal/report"
	"github.com/MateusVidalm/ECOTANQUE/internal/router"
	"github.com/MateusVidalm/ECOTANQUE/internal/state"
	"github.com/MateusVidalm/ECOTANQUE/internal/store"
	"github.com/MateusVidalm/ECOTANQUE/internal/syncer"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	recordStore, err := newRecordStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open record store")
	}

	app, err := state.Load(recordStore, state.Defaults{
		TankName:         cfg.TankName,
		TankCapacity:     decimal.NewFromFloat(cfg.TankCapacity),
		TankInitialLevel: decimal.NewFromFloat(cfg.TankInitialLevel),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load state")
	}

	engine := ledger.New(app)
	authSvc := auth.NewService(app)
	reports := report.NewService(app, decimal.NewFromFloat(cfg.LowFuelThreshold))

	remote := infra.NewRemoteClient(cfg.RemoteURL, cfg.RemoteAPIKey, cfg.RemoteBearerToken)
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
		FailureThreshold: cfg.SyncCBFailureThreshold,
		SuccessThreshold: cfg.SyncCBSuccessThreshold,
		OpenTimeout:      time.Duration(cfg.SyncCBOpenTimeoutSec) * time.Second,
	})
	coord := syncer.New(app, remote, cb, onlineProbe(cfg.RemoteURL))

	r := router.New(router.Deps{
		Cfg:     cfg,
		App:     app,
		Engine:  engine,
		Auth:    authSvc,
		Reports: reports,
		Syncer:  coord,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("ECOTANQUE backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

// newRecordStore selects the snapshot backend. The file store is the
// offline-first default; redis and sqlite cover shared-host deployments.
func newRecordStore(cfg *config.Config) (store.RecordStore, error) {
	switch cfg.StoreBackend {
	case "redis":
		return store.NewRedisStore(cfg.RedisURL)
	case "sqlite":
		return store.NewGormStore(cfg.SQLitePath)
	default:
		return store.NewFileStore(cfg.DataDir)
	}
}

// onlineProbe reports reachability of the remote host with a short TCP dial.
// With no remote configured it reports online and lets the sync coordinator
// answer with the configuration error instead.
func onlineProbe(remoteURL string) syncer.OnlineProbe {
	return func() bool {
		u, err := url.Parse(remoteURL)
		if err != nil || u.Host == "" {
			return true
		}
		host := u.Host
		if u.Port() == "" {
			port := "443"
			if u.Scheme == "http" {
				port = "80"
			}
			host = net.JoinHostPort(u.Hostname(), port)
		}
		conn, err := net.DialTimeout("tcp", host, 3*time.Second)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}
}
