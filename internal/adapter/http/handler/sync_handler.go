package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rk/lifeadmin/internal/adapter/http/dto"
	"github.com/rk/lifeadmin/internal/adapter/http/middleware"
	"github.com/rk/lifeadmin/internal/domain"
	"github.com/rk/lifeadmin/internal/usecase"
)

// SyncHandler exposes the durable-write status of ledger records.
type SyncHandler struct {
	status usecase.SyncStatusReader
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(status usecase.SyncStatusReader) *SyncHandler {
	return &SyncHandler{status: status}
}

// Get reports the sync state for one record. Records never enqueued since
// the service started report 404.
func (h *SyncHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	collection := domain.Collection(chi.URLParam(r, "collection"))
	switch collection {
	case domain.CollectionAssets, domain.CollectionTransactions, domain.CollectionReminders:
	default:
		writeError(w, http.StatusBadRequest, "unknown collection", string(collection))
		return
	}

	id := chi.URLParam(r, "id")
	state, ok := h.status.Status(collection, id)
	if !ok {
		writeError(w, http.StatusNotFound, "no sync state for record", id)
		return
	}

	writeJSON(w, http.StatusOK, dto.SyncStateFromDomain(state))
}
