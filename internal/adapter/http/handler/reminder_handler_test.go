package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rk/lifeadmin/internal/adapter/http/dto"
	"github.com/rk/lifeadmin/internal/domain"
	"github.com/rk/lifeadmin/internal/usecase"
)

type reminderServiceStub struct {
	createFn   func(ctx context.Context, userID string, input usecase.CreateReminderInput) (*domain.Reminder, error)
	getFn      func(ctx context.Context, userID, id string) (*domain.Reminder, error)
	listFn     func(ctx context.Context, userID string, activeOnly bool) ([]*domain.Reminder, error)
	updateFn   func(ctx context.Context, userID, id string, input usecase.UpdateReminderInput) (*domain.Reminder, error)
	completeFn func(ctx context.Context, userID, id string, completed bool) (*domain.Reminder, error)
	deleteFn   func(ctx context.Context, userID, id string) error
}

func (s *reminderServiceStub) CreateReminder(ctx context.Context, userID string, input usecase.CreateReminderInput) (*domain.Reminder, error) {
	return s.createFn(ctx, userID, input)
}

func (s *reminderServiceStub) GetReminder(ctx context.Context, userID, id string) (*domain.Reminder, error) {
	return s.getFn(ctx, userID, id)
}

func (s *reminderServiceStub) ListReminders(ctx context.Context, userID string, activeOnly bool) ([]*domain.Reminder, error) {
	return s.listFn(ctx, userID, activeOnly)
}

func (s *reminderServiceStub) UpdateReminder(ctx context.Context, userID, id string, input usecase.UpdateReminderInput) (*domain.Reminder, error) {
	return s.updateFn(ctx, userID, id, input)
}

func (s *reminderServiceStub) CompleteReminder(ctx context.Context, userID, id string, completed bool) (*domain.Reminder, error) {
	return s.completeFn(ctx, userID, id, completed)
}

func (s *reminderServiceStub) DeleteReminder(ctx context.Context, userID, id string) error {
	return s.deleteFn(ctx, userID, id)
}

func TestReminderHandler_Create_Success(t *testing.T) {
	due := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	var captured usecase.CreateReminderInput
	handler := NewReminderHandler(&reminderServiceStub{
		createFn: func(_ context.Context, userID string, input usecase.CreateReminderInput) (*domain.Reminder, error) {
			captured = input
			return &domain.Reminder{
				ID:         "rem-1",
				UserID:     userID,
				Title:      input.Title,
				DueDate:    input.DueDate,
				Recurrence: domain.RecurrenceMonthly,
			}, nil
		},
	})

	body := `{"title":"Pay rent","due_date":"2026-10-01T09:00:00Z","recurrence":"Monthly"}`
	rec := httptest.NewRecorder()
	handler.Create(rec, authedRequest(http.MethodPost, "/reminders", strings.NewReader(body), nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Title != "Pay rent" || !captured.DueDate.Equal(due) {
		t.Fatalf("unexpected create input: %+v", captured)
	}

	var resp dto.ReminderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "rem-1" || resp.Recurrence != "Monthly" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestReminderHandler_Create_MissingTitle(t *testing.T) {
	handler := NewReminderHandler(&reminderServiceStub{
		createFn: func(context.Context, string, usecase.CreateReminderInput) (*domain.Reminder, error) {
			return nil, domain.ErrMissingReminderTitle
		},
	})

	body := `{"due_date":"2026-10-01T09:00:00Z"}`
	rec := httptest.NewRecorder()
	handler.Create(rec, authedRequest(http.MethodPost, "/reminders", strings.NewReader(body), nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReminderHandler_List_ActiveFilter(t *testing.T) {
	var capturedActive bool
	handler := NewReminderHandler(&reminderServiceStub{
		listFn: func(_ context.Context, _ string, activeOnly bool) ([]*domain.Reminder, error) {
			capturedActive = activeOnly
			return []*domain.Reminder{
				{ID: "rem-1", Title: "Pay rent"},
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.List(rec, authedRequest(http.MethodGet, "/reminders?active=true", nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !capturedActive {
		t.Fatal("expected active filter to be passed through")
	}

	var resp dto.ListRemindersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected 1 reminder, got %d", resp.Total)
	}
}

func TestReminderHandler_Complete_DefaultsToCompleted(t *testing.T) {
	var capturedCompleted bool
	handler := NewReminderHandler(&reminderServiceStub{
		completeFn: func(_ context.Context, _, id string, completed bool) (*domain.Reminder, error) {
			capturedCompleted = completed
			return &domain.Reminder{ID: id, Completed: completed}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Complete(rec, authedRequest(http.MethodPost, "/reminders/rem-1/complete", nil, map[string]string{"id": "rem-1"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !capturedCompleted {
		t.Fatal("expected completion to default to true without a body")
	}
}

func TestReminderHandler_Complete_Uncomplete(t *testing.T) {
	var capturedCompleted bool
	handler := NewReminderHandler(&reminderServiceStub{
		completeFn: func(_ context.Context, _, id string, completed bool) (*domain.Reminder, error) {
			capturedCompleted = completed
			return &domain.Reminder{ID: id, Completed: completed}, nil
		},
	})

	body := `{"completed":false}`
	rec := httptest.NewRecorder()
	handler.Complete(rec, authedRequest(http.MethodPost, "/reminders/rem-1/complete", strings.NewReader(body), map[string]string{"id": "rem-1"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if capturedCompleted {
		t.Fatal("expected completion flag false to be passed through")
	}
}

func TestReminderHandler_Delete(t *testing.T) {
	var capturedID string
	handler := NewReminderHandler(&reminderServiceStub{
		deleteFn: func(_ context.Context, _, id string) error {
			capturedID = id
			return nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Delete(rec, authedRequest(http.MethodDelete, "/reminders/rem-1", nil, map[string]string{"id": "rem-1"}))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if capturedID != "rem-1" {
		t.Fatalf("expected delete for rem-1, got %q", capturedID)
	}
}

func TestReminderHandler_Get_NotFound(t *testing.T) {
	handler := NewReminderHandler(&reminderServiceStub{
		getFn: func(context.Context, string, string) (*domain.Reminder, error) {
			return nil, domain.ErrReminderNotFound
		},
	})

	rec := httptest.NewRecorder()
	handler.Get(rec, authedRequest(http.MethodGet, "/reminders/missing", nil, map[string]string{"id": "missing"}))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
