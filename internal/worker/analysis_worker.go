package worker

// analysis_worker.go
// Processes cost-analysis jobs from QueueAnalysis. Each job sweeps one
// user's recipes for margin problems and writes cost recommendations.

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AnalysisJobPayload is the job envelope sent to QueueAnalysis.
type AnalysisJobPayload struct {
	UserID string `json:"user_id"`
}

// CostAnalyzer is implemented by the recommendation service. Declared here so
// the pool does not depend on the service layer.
type CostAnalyzer interface {
	AnalyzeUser(ctx context.Context, userID uuid.UUID) (created int, err error)
}

type AnalysisWorker struct {
	analyzer CostAnalyzer
}

func NewAnalysisWorker(analyzer CostAnalyzer) *AnalysisWorker {
	return &AnalysisWorker{analyzer: analyzer}
}

func (w *AnalysisWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload AnalysisJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("analysis_worker: invalid payload")
		return err
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", payload.UserID).Msg("analysis_worker: bad user id")
		return err
	}

	created, err := w.analyzer.AnalyzeUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", payload.UserID).Msg("analysis_worker: sweep failed")
		return err
	}
	if created > 0 {
		log.Info().
			Str("user_id", payload.UserID).
			Int("recommendations", created).
			Msg("analysis_worker: sweep complete")
	}
	return nil
}
