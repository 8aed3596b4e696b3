package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cosmopay/cosmopay-go/webhook"
)

// LogNotifier is the fallback when no email provider is configured: paid
// invoices are only written to the log.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyPaid(_ context.Context, summary *webhook.Summary) error {
	if summary == nil {
		return fmt.Errorf("summary is required")
	}

	n.logger.Info("invoice paid",
		"invoice_id", summary.InvoiceID,
		"amount", summary.PaymentAmount.String(),
		"currency", summary.Currency,
		"user_id", summary.UserID,
		"payment_num", summary.PaymentNum,
		"paid_at", summary.PaidAt,
	)
	return nil
}
