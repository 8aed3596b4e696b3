package relay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cosmopay/cosmopay-go/webhook"
)

const maxErrorBodyBytes = 4 << 10

// Forwarder delivers raw webhook bodies to downstream targets. The original
// signature header travels with each delivery so that consumers can run their
// own verification against the unmodified bytes.
type Forwarder struct {
	targets    []Target
	httpClient *http.Client
	logger     *slog.Logger
}

func NewForwarder(targets []Target, httpClient *http.Client, logger *slog.Logger) *Forwarder {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Forwarder{
		targets:    targets,
		httpClient: httpClient,
		logger:     logger,
	}
}

// ForwardAll delivers body to every target subscribed to event and reports how
// many deliveries succeeded and failed. Each target gets exactly one attempt;
// failures are logged, never retried.
func (f *Forwarder) ForwardAll(ctx context.Context, event string, body []byte, signature string) (delivered, failed int) {
	for _, target := range f.targets {
		if !target.Wants(event) {
			continue
		}

		if err := f.forward(ctx, target, body, signature); err != nil {
			failed++
			f.logger.Error("webhook delivery failed",
				"target", target.Name,
				"event", event,
				"error", err,
			)
			continue
		}

		delivered++
		f.logger.Info("webhook delivered",
			"target", target.Name,
			"event", event,
			"bytes", len(body),
		)
	}
	return delivered, failed
}

func (f *Forwarder) forward(ctx context.Context, target Target, body []byte, signature string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(webhook.SignatureHeader, signature)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver: %w", err)
	}
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	closeErr := resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("failed to read target response: %w", readErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close target response body: %w", closeErr)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if len(respBody) > 0 {
			return fmt.Errorf("target returned status %d: %s", resp.StatusCode, respBody)
		}
		return fmt.Errorf("target returned status %d", resp.StatusCode)
	}

	return nil
}
