package domain

import "time"

// SyncStatus is the observable state of a record's durable write.
type SyncStatus string

const (
	// SyncPending means the local mutation happened and the durable write
	// is queued but not yet attempted or still in flight.
	SyncPending SyncStatus = "pending"
	// SyncSynced means the durable write succeeded.
	SyncSynced SyncStatus = "synced"
	// SyncFailed means the durable write was rejected after retries. The
	// in-memory state is NOT rolled back; the record has diverged from
	// the store until the next full reload.
	SyncFailed SyncStatus = "failed"
)

// Collection names the per-user document collections.
type Collection string

const (
	CollectionAssets       Collection = "assets"
	CollectionTransactions Collection = "transactions"
	CollectionReminders    Collection = "reminders"
)

// SyncOp is the durable-store operation carried by an intent.
type SyncOp string

const (
	SyncOpAdd    SyncOp = "add"
	SyncOpUpdate SyncOp = "update"
	SyncOpDelete SyncOp = "delete"
)

// SyncIntent is a queued durable-write task produced by an optimistic local
// mutation. Exactly one payload field matching Collection is set, except for
// delete intents which carry only the record ID.
type SyncIntent struct {
	Collection  Collection
	Op          SyncOp
	UserID      string
	RecordID    string
	Asset       *Asset
	Transaction *Transaction
	EnqueuedAt  time.Time
}

// SyncState tracks the outcome of the durable write for one record.
type SyncState struct {
	Collection Collection
	RecordID   string
	Status     SyncStatus
	Attempts   int
	LastError  string
	UpdatedAt  time.Time
}
