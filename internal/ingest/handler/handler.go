package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"watchlist/internal/ingest"
	id "watchlist/pkg/domain"
	"watchlist/pkg/platform/httputil"
)

// Handler exposes list refresh as an admin endpoint. Authentication is the
// deployment's concern (this service runs behind the compliance gateway).
type Handler struct {
	loader *ingest.Loader
	logger *slog.Logger
}

func New(loader *ingest.Loader, logger *slog.Logger) *Handler {
	return &Handler{loader: loader, logger: logger}
}

// Register mounts ingestion endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Put("/v1/lists/{listID}", h.HandleLoadList)
}

type loadResponse struct {
	ListID   string `json:"list_id"`
	Entities int    `json:"entities"`
}

// HandleLoadList handles PUT /v1/lists/{listID} with a CSV body, replacing
// the named list wholesale.
func (h *Handler) HandleLoadList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listID, err := id.ParseListID(chi.URLParam(r, "listID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	count, err := h.loader.LoadCSV(ctx, listID, r.Body)
	if err != nil {
		h.logger.ErrorContext(ctx, "list load failed",
			"list_id", listID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, loadResponse{
		ListID:   listID.String(),
		Entities: count,
	})
}
