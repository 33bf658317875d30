package usecase

import (
	"context"
	"time"

	"github.com/rk/lifeadmin/internal/domain"
)

// AssetRepository defines durable storage for assets. Each call succeeds or
// fails independently; the store does not batch across documents.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	Update(ctx context.Context, asset *domain.Asset) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Asset, error)
}

// TransactionRepository defines durable storage for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	Update(ctx context.Context, txn *domain.Transaction) error
	Delete(ctx context.Context, userID, id string) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error)
}

// ReminderRepository defines durable storage for reminders.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.Reminder) error
	Update(ctx context.Context, reminder *domain.Reminder) error
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (*domain.Reminder, error)
	ListByUser(ctx context.Context, userID string, activeOnly bool) ([]*domain.Reminder, error)
	ListDue(ctx context.Context, at time.Time) ([]*domain.Reminder, error)
}

// UserRepository defines durable storage for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SyncQueue accepts durable-write intents produced by optimistic local
// mutations. Enqueue must not block the caller.
type SyncQueue interface {
	Enqueue(intent domain.SyncIntent)
}

// SyncStatusReader exposes the observable outcome of queued durable writes.
type SyncStatusReader interface {
	Status(collection domain.Collection, recordID string) (domain.SyncState, bool)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
