package worker

// email_worker.go
// Processes notification jobs from QueueEmail: low-stock alerts raised by
// the purchase/order stock sync, and report exports mailed on request.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail    string `json:"to_email"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	AttachPath string `json:"attach_path,omitempty"`
}

// LowStockBody renders the alert text for an ingredient that fell below
// its minimum stock level.
func LowStockBody(name, current, min, unit string) string {
	return fmt.Sprintf(
		"Stok bahan %q menipis.\n\nStok saat ini: %s %s\nStok minimum: %s %s\n\nSegera lakukan pembelian ulang.",
		name, current, unit, min, unit)
}

// EmailWorker delivers queued mail via SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends one queued email, attaching a file when the payload names one.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return err
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return nil
	}

	if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, payload.AttachPath); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Str("subject", payload.Subject).Msg("email_worker: sent")
	return nil
}
