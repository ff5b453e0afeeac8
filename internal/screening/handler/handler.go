package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"watchlist/internal/screening"
	"watchlist/pkg/platform/httputil"
)

// Screener is the slice of the pipeline this handler consumes.
type Screener interface {
	Screen(ctx context.Context, q screening.Query) screening.Result
	ScreenBatch(ctx context.Context, queries []screening.Query) screening.BatchResult
}

// Handler wires screening endpoints to the pipeline.
type Handler struct {
	screener Screener
	logger   *slog.Logger
}

// New constructs a screening handler with its dependencies.
func New(screener Screener, logger *slog.Logger) *Handler {
	return &Handler{
		screener: screener,
		logger:   logger,
	}
}

// Register mounts screening endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/screen", h.HandleScreen)
	r.Post("/v1/screen/batch", h.HandleScreenBatch)
}

// HandleScreen handles POST /v1/screen requests.
func (h *Handler) HandleScreen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ScreenRequest
	if !httputil.DecodeAndPrepare(w, r, h.logger, &req) {
		return
	}

	result := h.screener.Screen(ctx, req.ParsedQuery())

	h.logger.InfoContext(ctx, "query screened",
		"status", result.Status,
		"matches", len(result.Matches),
		"duration_ms", result.Duration.Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleScreenBatch handles POST /v1/screen/batch requests.
func (h *Handler) HandleScreenBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req BatchScreenRequest
	if !httputil.DecodeAndPrepare(w, r, h.logger, &req) {
		return
	}

	batch := h.screener.ScreenBatch(ctx, req.ParsedQueries())

	h.logger.InfoContext(ctx, "batch screened",
		"queries", len(batch.Results),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromBatchResult(batch))
}
