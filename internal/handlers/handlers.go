package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cosmopay/cosmopay-go/internal/config"
	"github.com/cosmopay/cosmopay-go/internal/logging"
)

const maxWebhookBodyBytes = 1 << 20 // 1 MB

// Handlers provides the relay's HTTP request handlers.
type Handlers struct {
	config *config.Config
	router *EventRouter
	logger *slog.Logger
}

type Dependencies struct {
	Config *config.Config
	Router *EventRouter
	Logger *slog.Logger
}

func New(deps Dependencies) (*Handlers, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if deps.Config == nil {
		return nil, fmt.Errorf("handlers dependencies: config is required")
	}
	if deps.Router == nil {
		return nil, fmt.Errorf("handlers dependencies: router is required")
	}

	return &Handlers{
		config: deps.Config,
		router: deps.Router,
		logger: logger.With("component", "handlers"),
	}, nil
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		logger.Error("failed to encode health response", "error", err)
	}
}

func (h *Handlers) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, h.logger)
}
