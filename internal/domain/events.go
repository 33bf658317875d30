package domain

import "time"

// Event types published to the notification broker.
const (
	EventTypeReminderDue = "reminder.due"
)

// ReminderDueEvent is the payload delivered when a reminder falls due. The
// consumer side turns it into a device notification.
type ReminderDueEvent struct {
	ReminderID string     `json:"reminder_id"`
	UserID     string     `json:"user_id"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Category   string     `json:"category"`
	DueDate    time.Time  `json:"due_date"`
	Recurrence Recurrence `json:"recurrence"`
	FiredAt    time.Time  `json:"fired_at"`
}
