// Package notifier scans for due reminders and publishes notification
// events to the message broker.
package notifier

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rk/lifeadmin/internal/domain"
	"github.com/rk/lifeadmin/internal/infrastructure/metrics"
)

const defaultInterval = time.Minute

// ReminderService is the slice of the reminder use case the notifier needs.
type ReminderService interface {
	DueReminders(ctx context.Context, now time.Time) ([]*domain.Reminder, error)
	MarkFired(ctx context.Context, reminder *domain.Reminder, firedAt time.Time) error
}

// Publisher delivers reminder-due events to the broker.
type Publisher interface {
	PublishReminderDue(ctx context.Context, event domain.ReminderDueEvent) error
}

// Notifier polls for due reminders on a fixed interval.
type Notifier struct {
	reminders ReminderService
	publisher Publisher
	logger    zerolog.Logger
	interval  time.Duration
	now       func() time.Time
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithInterval sets the polling interval.
func WithInterval(d time.Duration) Option {
	return func(n *Notifier) {
		n.interval = d
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		n.now = now
	}
}

// New creates a Notifier. Call Start to launch the polling loop.
func New(reminders ReminderService, publisher Publisher, logger zerolog.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		reminders: reminders,
		publisher: publisher,
		logger:    logger.With().Str("component", "notifier").Logger(),
		interval:  defaultInterval,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Start runs the polling loop until ctx is cancelled.
func (n *Notifier) Start(ctx context.Context) {
	n.logger.Info().Dur("interval", n.interval).Msg("reminder notifier started")

	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			n.logger.Info().Msg("reminder notifier stopped")
			return
		case <-ticker.C:
			if _, err := n.ProcessDue(ctx, n.now()); err != nil {
				n.logger.Error().Err(err).Msg("due reminder scan failed")
			}
		}
	}
}

// ProcessDue publishes an event for every reminder due at or before now and
// re-arms or completes each one. It returns the number of events published.
// A publish failure leaves the reminder untouched so it fires again on the
// next scan.
func (n *Notifier) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	due, err := n.reminders.DueReminders(ctx, now)
	if err != nil {
		return 0, err
	}

	fired := 0
	for _, reminder := range due {
		event := domain.ReminderDueEvent{
			ReminderID: reminder.ID,
			UserID:     reminder.UserID,
			Title:      reminder.Title,
			Body:       reminder.Notes,
			Category:   reminder.Category,
			DueDate:    reminder.DueDate,
			Recurrence: reminder.Recurrence,
			FiredAt:    now,
		}

		if err := n.publisher.PublishReminderDue(ctx, event); err != nil {
			n.logger.Error().Err(err).
				Str("reminder_id", reminder.ID).
				Msg("failed to publish reminder event")
			continue
		}

		if err := n.reminders.MarkFired(ctx, reminder, now); err != nil {
			n.logger.Error().Err(err).
				Str("reminder_id", reminder.ID).
				Msg("failed to advance fired reminder")
			continue
		}

		metrics.RemindersFired.Inc()
		fired++
		n.logger.Info().
			Str("reminder_id", reminder.ID).
			Str("title", reminder.Title).
			Str("recurrence", string(reminder.Recurrence)).
			Msg("reminder fired")
	}

	return fired, nil
}
