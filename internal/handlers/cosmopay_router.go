package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"

	"github.com/cosmopay/cosmopay-go/internal/logging"
	"github.com/cosmopay/cosmopay-go/internal/notify"
	"github.com/cosmopay/cosmopay-go/internal/observability"
	"github.com/cosmopay/cosmopay-go/internal/relay"
	"github.com/cosmopay/cosmopay-go/webhook"
)

// EventRouter dispatches verified webhook envelopes by event type. It is the
// extension point for event types the platform adds later.
type EventRouter struct {
	forwarder *relay.Forwarder
	notifier  notify.Notifier
	logger    *slog.Logger
}

// NewEventRouter builds a router. Forwarder and notifier are both optional;
// nil disables the corresponding action.
func NewEventRouter(forwarder *relay.Forwarder, notifier notify.Notifier, logger *slog.Logger) *EventRouter {
	return &EventRouter{
		forwarder: forwarder,
		notifier:  notifier,
		logger:    logger,
	}
}

// Handle routes one verified envelope. The raw body and signature travel
// alongside so that deliveries can be forwarded byte-identical.
func (r *EventRouter) Handle(ctx context.Context, env *webhook.Envelope, rawBody []byte, signature string) error {
	span := sentry.StartSpan(
		ctx,
		"handler.cosmopay_router.handle",
		sentry.WithOpName("handler.cosmopay_router"),
		sentry.WithDescription("EventRouter.Handle"),
		sentry.WithSpanOrigin(sentry.SpanOriginManual),
	)
	defer span.Finish()
	ctx = span.Context()

	meter := observability.MeterFromContext(ctx)
	meter.SetAttributes(attribute.String("webhook.provider", "cosmopay"))
	meter.Count("webhook.router.received", 1)
	recordFailed := func(reason string) {
		meter.Count("webhook.router.failed", 1, sentry.WithAttributes(attribute.String("reason", reason)))
	}

	if env == nil {
		recordFailed("missing_envelope")
		return fmt.Errorf("missing webhook envelope")
	}
	meter.SetAttributes(attribute.String("webhook.event_type", env.Type))

	logger := logging.FromContext(ctx, r.logger)

	switch env.Type {
	case webhook.TypeInvoicePay:
		r.handleInvoicePay(ctx, logger, meter, env, rawBody, signature)
		meter.Count("webhook.router.processed", 1)
		span.Status = sentry.SpanStatusOK
		return nil
	default:
		logger.Info("unhandled webhook type", "type", env.Type)
		meter.Count("webhook.router.unhandled", 1)
		span.Status = sentry.SpanStatusOK
		return nil
	}
}

func (r *EventRouter) handleInvoicePay(ctx context.Context, logger *slog.Logger, meter sentry.Meter, env *webhook.Envelope, rawBody []byte, signature string) {
	summary := env.Summary()

	logger.Info("invoice payment received",
		"invoice_id", summary.InvoiceID,
		"status", summary.Status,
		"amount", summary.PaymentAmount.String(),
		"currency", summary.Currency,
		"user_id", summary.UserID,
		"payment_num", summary.PaymentNum,
	)

	if env.IsPaid() && r.notifier != nil {
		if err := r.notifier.NotifyPaid(ctx, summary); err != nil {
			// The payment is already settled upstream; a lost email must not
			// make the platform consider the delivery failed.
			logger.Error("failed to send paid-invoice notification", "error", err)
			meter.Count("webhook.router.notify_failed", 1)
		}
	}

	if r.forwarder != nil {
		delivered, failed := r.forwarder.ForwardAll(ctx, env.Type, rawBody, signature)
		if delivered > 0 {
			meter.Count("webhook.relay.delivered", int64(delivered))
		}
		if failed > 0 {
			meter.Count("webhook.relay.failed", int64(failed))
		}
	}
}
