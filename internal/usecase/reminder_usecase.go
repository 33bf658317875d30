package usecase

import (
	"context"
	"time"

	"github.com/rk/lifeadmin/internal/domain"
	"github.com/rk/lifeadmin/internal/infrastructure/metrics"
)

// ReminderUseCase handles reminder lifecycle: creation, edits, completion
// toggling, deletion, and the recurrence bookkeeping the notification
// scheduler relies on. Reminders are independent of the ledger and are
// written through to the store directly.
type ReminderUseCase struct {
	reminderRepo ReminderRepository
	idGen        IDGenerator
	now          func() time.Time
}

// NewReminderUseCase creates a new ReminderUseCase.
func NewReminderUseCase(reminderRepo ReminderRepository, idGen IDGenerator) *ReminderUseCase {
	return &ReminderUseCase{
		reminderRepo: reminderRepo,
		idGen:        idGen,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateReminderInput is the input for creating a reminder.
type CreateReminderInput struct {
	Title         string
	Category      string
	DueDate       time.Time
	Notes         string
	Recurrence    domain.Recurrence
	AttachmentURL string
}

// CreateReminder validates and stores a new reminder.
func (uc *ReminderUseCase) CreateReminder(ctx context.Context, userID string, input CreateReminderInput) (*domain.Reminder, error) {
	reminder := &domain.Reminder{
		ID:            uc.idGen.Generate(),
		UserID:        userID,
		Title:         input.Title,
		Category:      input.Category,
		DueDate:       input.DueDate,
		Notes:         input.Notes,
		Recurrence:    input.Recurrence,
		AttachmentURL: input.AttachmentURL,
		CreatedAt:     uc.now(),
	}

	if reminder.Recurrence == "" {
		reminder.Recurrence = domain.RecurrenceOneTime
	}

	if err := reminder.Validate(); err != nil {
		return nil, err
	}

	if err := uc.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, err
	}

	return reminder, nil
}

// GetReminder returns one reminder.
func (uc *ReminderUseCase) GetReminder(ctx context.Context, userID, id string) (*domain.Reminder, error) {
	return uc.reminderRepo.GetByID(ctx, userID, id)
}

// ListReminders lists the user's reminders, newest first. With activeOnly
// set, completed reminders are excluded.
func (uc *ReminderUseCase) ListReminders(ctx context.Context, userID string, activeOnly bool) ([]*domain.Reminder, error) {
	return uc.reminderRepo.ListByUser(ctx, userID, activeOnly)
}

// UpdateReminderInput carries the optional fields of a reminder edit.
type UpdateReminderInput struct {
	Title         *string
	Category      *string
	DueDate       *time.Time
	Notes         *string
	Recurrence    *domain.Recurrence
	AttachmentURL *string
}

// UpdateReminder merges the patch over the stored reminder and writes it
// back.
func (uc *ReminderUseCase) UpdateReminder(ctx context.Context, userID, id string, input UpdateReminderInput) (*domain.Reminder, error) {
	reminder, err := uc.reminderRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		reminder.Title = *input.Title
	}
	if input.Category != nil {
		reminder.Category = *input.Category
	}
	if input.DueDate != nil {
		reminder.DueDate = *input.DueDate
	}
	if input.Notes != nil {
		reminder.Notes = *input.Notes
	}
	if input.Recurrence != nil {
		reminder.Recurrence = *input.Recurrence
	}
	if input.AttachmentURL != nil {
		reminder.AttachmentURL = *input.AttachmentURL
	}

	if err := reminder.Validate(); err != nil {
		return nil, err
	}

	if err := uc.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, err
	}

	return reminder, nil
}

// CompleteReminder toggles a reminder's completion flag. Completing stamps
// the completion time; un-completing clears it.
func (uc *ReminderUseCase) CompleteReminder(ctx context.Context, userID, id string, completed bool) (*domain.Reminder, error) {
	reminder, err := uc.reminderRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	reminder.Completed = completed
	if completed {
		now := uc.now()
		reminder.CompletedAt = &now
		metrics.RemindersCompleted.Inc()
	} else {
		reminder.CompletedAt = nil
	}

	if err := uc.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, err
	}

	return reminder, nil
}

// DeleteReminder removes a reminder. Its pending notification is cancelled
// implicitly: the scheduler only fires reminders still present in the store.
func (uc *ReminderUseCase) DeleteReminder(ctx context.Context, userID, id string) error {
	if _, err := uc.reminderRepo.GetByID(ctx, userID, id); err != nil {
		return err
	}

	return uc.reminderRepo.Delete(ctx, userID, id)
}

// DueReminders returns every uncompleted reminder due at or before now,
// across users. Used by the notification scheduler.
func (uc *ReminderUseCase) DueReminders(ctx context.Context, now time.Time) ([]*domain.Reminder, error) {
	return uc.reminderRepo.ListDue(ctx, now)
}

// MarkFired advances a fired reminder: a Monthly reminder is re-armed at
// its next occurrence, a One-time reminder is marked completed so it does
// not fire again.
func (uc *ReminderUseCase) MarkFired(ctx context.Context, reminder *domain.Reminder, firedAt time.Time) error {
	if next, ok := reminder.NextDueDate(); ok {
		reminder.DueDate = next
	} else {
		reminder.Completed = true
		reminder.CompletedAt = &firedAt
	}

	return uc.reminderRepo.Update(ctx, reminder)
}
