package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rk/lifeadmin/internal/domain"
)

// ReminderRepository implements usecase.ReminderRepository.
type ReminderRepository struct {
	pool *pgxpool.Pool
}

// NewReminderRepository creates a new ReminderRepository.
func NewReminderRepository(pool *pgxpool.Pool) *ReminderRepository {
	return &ReminderRepository{pool: pool}
}

// Create inserts a new reminder.
func (r *ReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	query := `
		INSERT INTO reminders (id, user_id, title, category, due_date, notes, recurrence, attachment_url, completed, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		reminder.ID,
		reminder.UserID,
		reminder.Title,
		reminder.Category,
		reminder.DueDate,
		reminder.Notes,
		string(reminder.Recurrence),
		reminder.AttachmentURL,
		reminder.Completed,
		reminder.CompletedAt,
		reminder.CreatedAt,
	)

	return err
}

// Update replaces the stored state of a reminder.
func (r *ReminderRepository) Update(ctx context.Context, reminder *domain.Reminder) error {
	query := `
		UPDATE reminders
		SET title = $3, category = $4, due_date = $5, notes = $6, recurrence = $7, attachment_url = $8, completed = $9, completed_at = $10
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		reminder.ID,
		reminder.UserID,
		reminder.Title,
		reminder.Category,
		reminder.DueDate,
		reminder.Notes,
		string(reminder.Recurrence),
		reminder.AttachmentURL,
		reminder.Completed,
		reminder.CompletedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}

	return nil
}

// Delete removes a reminder.
func (r *ReminderRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM reminders WHERE id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, id, userID)
	return err
}

// GetByID retrieves one reminder.
func (r *ReminderRepository) GetByID(ctx context.Context, userID, id string) (*domain.Reminder, error) {
	query := `
		SELECT id, user_id, title, category, due_date, notes, recurrence, attachment_url, completed, completed_at, created_at
		FROM reminders
		WHERE id = $1 AND user_id = $2
	`

	reminder, err := scanReminder(r.pool.QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReminderNotFound
	}

	return reminder, err
}

// ListByUser retrieves reminders for a user, newest first. With activeOnly
// set, completed reminders are excluded.
func (r *ReminderRepository) ListByUser(ctx context.Context, userID string, activeOnly bool) ([]*domain.Reminder, error) {
	query := `
		SELECT id, user_id, title, category, due_date, notes, recurrence, attachment_url, completed, completed_at, created_at
		FROM reminders
		WHERE user_id = $1 AND ($2 = false OR completed = false)
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReminders(rows)
}

// ListDue retrieves uncompleted reminders due at or before the given time,
// across all users, earliest first.
func (r *ReminderRepository) ListDue(ctx context.Context, at time.Time) ([]*domain.Reminder, error) {
	query := `
		SELECT id, user_id, title, category, due_date, notes, recurrence, attachment_url, completed, completed_at, created_at
		FROM reminders
		WHERE completed = false AND due_date <= $1
		ORDER BY due_date ASC
	`

	rows, err := r.pool.Query(ctx, query, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReminders(rows)
}

func scanReminder(row pgx.Row) (*domain.Reminder, error) {
	var (
		reminder   domain.Reminder
		recurrence string
	)
	err := row.Scan(
		&reminder.ID,
		&reminder.UserID,
		&reminder.Title,
		&reminder.Category,
		&reminder.DueDate,
		&reminder.Notes,
		&recurrence,
		&reminder.AttachmentURL,
		&reminder.Completed,
		&reminder.CompletedAt,
		&reminder.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	reminder.Recurrence = domain.Recurrence(recurrence)

	return &reminder, nil
}

func collectReminders(rows pgx.Rows) ([]*domain.Reminder, error) {
	var reminders []*domain.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}

	return reminders, rows.Err()
}
