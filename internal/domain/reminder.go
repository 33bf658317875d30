package domain

import "time"

// Recurrence is the repeat policy of a reminder.
type Recurrence string

const (
	RecurrenceOneTime Recurrence = "One-time"
	RecurrenceMonthly Recurrence = "Monthly"
)

// IsValid reports whether the recurrence is a known policy.
func (r Recurrence) IsValid() bool {
	return r == RecurrenceOneTime || r == RecurrenceMonthly
}

// Reminder is a category-tagged task with a due timestamp and an optional
// monthly repeat. Reminders have no referential relationship to assets or
// transactions.
type Reminder struct {
	ID            string
	UserID        string
	Title         string
	Category      string
	DueDate       time.Time
	Notes         string
	Recurrence    Recurrence
	AttachmentURL string
	Completed     bool
	CompletedAt   *time.Time
	CreatedAt     time.Time
}

// Validate checks the required fields of a reminder.
func (r *Reminder) Validate() error {
	if r.Title == "" {
		return ErrMissingReminderTitle
	}
	if r.DueDate.IsZero() {
		return ErrMissingDueDate
	}
	if !r.Recurrence.IsValid() {
		return ErrInvalidRecurrence
	}

	return nil
}

// NextDueDate returns the due date of the next occurrence after firing.
// One-time reminders have no next occurrence. Monthly reminders move one
// month forward, clamping to the last day of shorter months so a reminder
// due on the 31st fires on the 30th (or 28th/29th) where needed.
func (r *Reminder) NextDueDate() (time.Time, bool) {
	if r.Recurrence != RecurrenceMonthly {
		return time.Time{}, false
	}

	d := r.DueDate
	year, month := d.Year(), d.Month()+1
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, d.Location()).Day()

	day := d.Day()
	if day > lastDay {
		day = lastDay
	}

	next := time.Date(year, month, day, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())

	return next, true
}

// DueBy reports whether an uncompleted reminder is due at the given time.
func (r *Reminder) DueBy(now time.Time) bool {
	return !r.Completed && !r.DueDate.After(now)
}

// Clone returns a copy of the reminder.
func (r *Reminder) Clone() *Reminder {
	c := *r
	if r.CompletedAt != nil {
		at := *r.CompletedAt
		c.CompletedAt = &at
	}

	return &c
}
