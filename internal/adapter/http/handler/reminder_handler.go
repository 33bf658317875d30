package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rk/lifeadmin/internal/adapter/http/dto"
	"github.com/rk/lifeadmin/internal/adapter/http/middleware"
	"github.com/rk/lifeadmin/internal/domain"
	"github.com/rk/lifeadmin/internal/usecase"
)

// ReminderService defines the behavior needed by ReminderHandler.
type ReminderService interface {
	CreateReminder(ctx context.Context, userID string, input usecase.CreateReminderInput) (*domain.Reminder, error)
	GetReminder(ctx context.Context, userID, id string) (*domain.Reminder, error)
	ListReminders(ctx context.Context, userID string, activeOnly bool) ([]*domain.Reminder, error)
	UpdateReminder(ctx context.Context, userID, id string, input usecase.UpdateReminderInput) (*domain.Reminder, error)
	CompleteReminder(ctx context.Context, userID, id string, completed bool) (*domain.Reminder, error)
	DeleteReminder(ctx context.Context, userID, id string) error
}

// ReminderHandler handles reminder HTTP requests.
type ReminderHandler struct {
	reminderUC ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderUC ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderUC: reminderUC}
}

// Create creates a new reminder.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reminder, err := h.reminderUC.CreateReminder(r.Context(), user.ID, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create reminder", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ReminderFromDomain(reminder))
}

// Get retrieves a reminder by ID.
func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	reminder, err := h.reminderUC.GetReminder(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get reminder", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReminderFromDomain(reminder))
}

// List lists the user's reminders, newest first. Pass active=true to
// exclude completed reminders.
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"

	reminders, err := h.reminderUC.ListReminders(r.Context(), user.ID, activeOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list reminders", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListRemindersResponse{
		Reminders: dto.RemindersFromDomain(reminders),
		Total:     int64(len(reminders)),
	})
}

// Update applies a partial update to a reminder.
func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.UpdateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	reminder, err := h.reminderUC.UpdateReminder(r.Context(), user.ID, id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update reminder", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReminderFromDomain(reminder))
}

// Complete toggles a reminder's completion state.
func (h *ReminderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	req := dto.CompleteReminderRequest{Completed: true}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	id := chi.URLParam(r, "id")
	reminder, err := h.reminderUC.CompleteReminder(r.Context(), user.ID, id, req.Completed)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to complete reminder", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReminderFromDomain(reminder))
}

// Delete removes a reminder.
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.reminderUC.DeleteReminder(r.Context(), user.ID, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete reminder", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
