package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// LogNotifier delivers notifications by writing them to the structured log.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Notify(ctx context.Context, notification *domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.log.Info().
		Uint("notification_id", notification.ID).
		Uint("invoice_id", notification.InvoiceID).
		Str("invoice_number", notification.InvoiceNumber).
		Str("message", notification.Message).
		Msg("invoice notification")
	return nil
}
