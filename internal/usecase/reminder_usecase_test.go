package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rk/lifeadmin/internal/domain"
	"github.com/rk/lifeadmin/internal/usecase"
	"github.com/rk/lifeadmin/internal/usecase/mocks"
)

func TestReminderUseCase_CreateReminder(t *testing.T) {
	due := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   usecase.CreateReminderInput
		wantErr error
	}{
		{
			name: "valid reminder",
			input: usecase.CreateReminderInput{
				Title:      "Pay credit card bill",
				Category:   "Finance",
				DueDate:    due,
				Recurrence: domain.RecurrenceMonthly,
			},
		},
		{
			name: "recurrence defaults to one-time",
			input: usecase.CreateReminderInput{
				Title:   "Renew insurance",
				DueDate: due,
			},
		},
		{
			name: "missing title",
			input: usecase.CreateReminderInput{
				DueDate:    due,
				Recurrence: domain.RecurrenceOneTime,
			},
			wantErr: domain.ErrMissingReminderTitle,
		},
		{
			name: "missing due date",
			input: usecase.CreateReminderInput{
				Title:      "x",
				Recurrence: domain.RecurrenceOneTime,
			},
			wantErr: domain.ErrMissingDueDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockReminderRepository()
			uc := usecase.NewReminderUseCase(repo, mocks.NewMockIDGenerator())

			reminder, err := uc.CreateReminder(context.Background(), "user-1", tt.input)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reminder.ID == "" {
				t.Error("expected generated id")
			}
			if !reminder.Recurrence.IsValid() {
				t.Errorf("invalid recurrence %q", reminder.Recurrence)
			}
		})
	}
}

func TestReminderUseCase_CompleteToggle(t *testing.T) {
	repo := mocks.NewMockReminderRepository()
	uc := usecase.NewReminderUseCase(repo, mocks.NewMockIDGenerator())
	ctx := context.Background()

	reminder, err := uc.CreateReminder(ctx, "user-1", usecase.CreateReminderInput{
		Title:   "Car insurance",
		DueDate: time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	done, err := uc.CompleteReminder(ctx, "user-1", reminder.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !done.Completed || done.CompletedAt == nil {
		t.Error("expected completed reminder with completion timestamp")
	}

	// Completed reminders drop out of the active listing.
	active, err := uc.ListReminders(ctx, "user-1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no active reminders, got %d", len(active))
	}

	all, err := uc.ListReminders(ctx, "user-1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 reminder in full listing, got %d", len(all))
	}

	undone, err := uc.CompleteReminder(ctx, "user-1", reminder.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if undone.Completed || undone.CompletedAt != nil {
		t.Error("expected un-completed reminder with cleared timestamp")
	}
}

func TestReminderUseCase_MarkFired(t *testing.T) {
	repo := mocks.NewMockReminderRepository()
	uc := usecase.NewReminderUseCase(repo, mocks.NewMockIDGenerator())
	ctx := context.Background()
	firedAt := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	t.Run("monthly reminder is re-armed", func(t *testing.T) {
		reminder, err := uc.CreateReminder(ctx, "user-1", usecase.CreateReminderInput{
			Title:      "Rent",
			DueDate:    time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC),
			Recurrence: domain.RecurrenceMonthly,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := uc.MarkFired(ctx, reminder, firedAt); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored, err := uc.GetReminder(ctx, "user-1", reminder.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
		if !stored.DueDate.Equal(want) {
			t.Errorf("expected next due %v, got %v", want, stored.DueDate)
		}
		if stored.Completed {
			t.Error("monthly reminder must stay active after firing")
		}
	})

	t.Run("one-time reminder completes", func(t *testing.T) {
		reminder, err := uc.CreateReminder(ctx, "user-1", usecase.CreateReminderInput{
			Title:      "Passport renewal",
			DueDate:    time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC),
			Recurrence: domain.RecurrenceOneTime,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := uc.MarkFired(ctx, reminder, firedAt); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored, err := uc.GetReminder(ctx, "user-1", reminder.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !stored.Completed {
			t.Error("one-time reminder must complete after firing")
		}
	})
}

func TestReminderUseCase_DeleteReminder(t *testing.T) {
	repo := mocks.NewMockReminderRepository()
	uc := usecase.NewReminderUseCase(repo, mocks.NewMockIDGenerator())
	ctx := context.Background()

	if err := uc.DeleteReminder(ctx, "user-1", "missing"); err != domain.ErrReminderNotFound {
		t.Fatalf("expected ErrReminderNotFound, got %v", err)
	}

	reminder, err := uc.CreateReminder(ctx, "user-1", usecase.CreateReminderInput{
		Title:   "Cancel subscription",
		DueDate: time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.DeleteReminder(ctx, "user-1", reminder.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.GetReminder(ctx, "user-1", reminder.ID); err != domain.ErrReminderNotFound {
		t.Fatalf("expected ErrReminderNotFound after delete, got %v", err)
	}
}
