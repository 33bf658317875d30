package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rk/lifeadmin/internal/adapter/http/dto"
	"github.com/rk/lifeadmin/internal/adapter/http/middleware"
	"github.com/rk/lifeadmin/internal/domain"
	"github.com/rk/lifeadmin/internal/ledger"
	"github.com/rk/lifeadmin/internal/usecase"
)

// AssetService defines the behavior needed by AssetHandler.
type AssetService interface {
	OpenAccount(ctx context.Context, userID string, input ledger.OpenAccountInput) (*domain.Asset, error)
	GetAsset(ctx context.Context, userID, id string) (*domain.Asset, error)
	ListAssets(ctx context.Context, userID string) ([]*domain.Asset, error)
	UpdateAsset(ctx context.Context, userID, id string, patch ledger.AssetPatch) (*domain.Asset, error)
	Summary(ctx context.Context, userID string) ([]usecase.CurrencySummary, error)
}

// AssetHandler handles asset account HTTP requests.
type AssetHandler struct {
	ledgerUC AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(ledgerUC AssetService) *AssetHandler {
	return &AssetHandler{ledgerUC: ledgerUC}
}

// Create opens a new asset account.
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	asset, err := h.ledgerUC.OpenAccount(r.Context(), user.ID, req.ToLedgerInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to open account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AssetFromDomain(asset))
}

// Get retrieves an asset by ID.
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	asset, err := h.ledgerUC.GetAsset(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get asset", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AssetFromDomain(asset))
}

// List lists the user's assets, newest first.
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	assets, err := h.ledgerUC.ListAssets(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list assets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAssetsResponse{
		Assets: dto.AssetsFromDomain(assets),
		Total:  int64(len(assets)),
	})
}

// Update applies a display patch to an asset.
func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	asset, err := h.ledgerUC.UpdateAsset(r.Context(), user.ID, id, req.ToLedgerPatch())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update asset", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AssetFromDomain(asset))
}

// Summary returns per-currency balance totals.
func (h *AssetHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	summaries, err := h.ledgerUC.Summary(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromUseCase(summaries))
}
