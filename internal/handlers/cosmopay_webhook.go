package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/cosmopay/cosmopay-go/webhook"
)

// CosmopayWebhook receives signed Cosmo Pay deliveries. The body is read
// exactly once and kept as raw bytes: verification and forwarding both need
// the wire-exact payload.
func (h *Handlers) CosmopayWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)

	signature := r.Header.Get(webhook.SignatureHeader)
	if signature == "" {
		logger.Error("missing webhook signature header")
		http.Error(w, "Invalid webhook", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("failed to read webhook body", "error", err)
		http.Error(w, "Invalid webhook", http.StatusBadRequest)
		return
	}

	env, err := webhook.VerifyAndParse(body, signature, h.config.APIKey)
	if err != nil {
		var parseErr *webhook.ParseError
		switch {
		case errors.Is(err, webhook.ErrInvalidSignature):
			logger.Error("webhook signature verification failed")
		case errors.As(err, &parseErr):
			logger.Error("webhook payload rejected", "reason", parseErr.Reason)
		default:
			logger.Error("failed to read webhook", "error", err)
		}
		http.Error(w, "Invalid webhook", http.StatusBadRequest)
		return
	}

	if processErr := h.router.Handle(ctx, env, body, signature); processErr != nil {
		logger.Error("failed to process webhook", "error", processErr, "type", env.Type)
		http.Error(w, "Processing failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
