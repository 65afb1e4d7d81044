package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/config"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/infra"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/router"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One breaker guards every call to the AI upstream, shared between the
	// HTTP layer and any background use.
	aiCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	r, recommendationSvc := router.New(cfg, db, rdb, aiCB)

	// Background workers: queued mail plus the periodic cost-analysis sweep.
	mailer := infra.NewMailer(cfg)
	handlers := worker.Handlers{
		Email:    worker.NewEmailWorker(mailer),
		Analysis: worker.NewAnalysisWorker(recommendationSvc),
	}
	worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)
	worker.StartAnalysisCron(ctx, worker.AnalysisCronConfig{
		UserRepo:   repository.NewUserRepository(db),
		Dispatcher: worker.NewDispatcher(rdb),
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
		log.Info().Msgf("heytrack backend listening on :%d", cfg.Port)
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
