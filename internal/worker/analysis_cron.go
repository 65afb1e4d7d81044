package worker

// analysis_cron.go
// Background goroutine that periodically enqueues a cost-analysis sweep for
// every active user, so recommendations stay current even when nobody is
// recording purchases.

import (
	"context"
	"time"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"

	"github.com/rs/zerolog/log"
)

const analysisTickInterval = 6 * time.Hour

// AnalysisCronConfig holds the dependencies for the sweep scheduler.
type AnalysisCronConfig struct {
	UserRepo   repository.UserRepository
	Dispatcher *Dispatcher
}

// StartAnalysisCron launches a background goroutine that ticks every 6h and
// enqueues one analysis job per active user. It respects the context for
// graceful shutdown.
func StartAnalysisCron(ctx context.Context, cfg AnalysisCronConfig) {
	go func() {
		ticker := time.NewTicker(analysisTickInterval)
		defer ticker.Stop()

		log.Info().Msg("analysis_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("analysis_cron: shutting down")
				return
			case <-ticker.C:
				enqueueSweeps(ctx, cfg)
			}
		}
	}()
}

func enqueueSweeps(ctx context.Context, cfg AnalysisCronConfig) {
	ids, err := cfg.UserRepo.ListActiveIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("analysis_cron: failed to list users")
		return
	}
	if len(ids) == 0 {
		return
	}

	enqueued := 0
	for _, id := range ids {
		if err := cfg.Dispatcher.EnqueueAnalysis(ctx, AnalysisJobPayload{UserID: id.String()}); err != nil {
			log.Error().Err(err).Str("user_id", id.String()).Msg("analysis_cron: enqueue failed")
			continue
		}
		enqueued++
	}
	log.Info().Int("enqueued", enqueued).Msg("analysis_cron: sweep jobs queued")
}
