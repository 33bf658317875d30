// Package syncer persists optimistic ledger mutations in the background.
//
// Local mutations complete immediately; the durable write is queued as a
// SyncIntent and applied by a worker goroutine. A failed write never rolls
// the local state back, it only flips the record's observable sync status
// to failed.
package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rk/lifeadmin/internal/domain"
	"github.com/rk/lifeadmin/internal/infrastructure/metrics"
	"github.com/rk/lifeadmin/internal/usecase"
)

const (
	defaultBufferSize  = 256
	drainWriteTimeout  = 5 * time.Second
	resultLabelOK      = "ok"
	resultLabelError   = "error"
	resultLabelDropped = "dropped"
)

// Retrier retries an operation on transient failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

type stateKey struct {
	collection domain.Collection
	recordID   string
}

// Syncer is the write-behind queue and worker. It implements
// usecase.SyncQueue and usecase.SyncStatusReader.
type Syncer struct {
	assetRepo usecase.AssetRepository
	txnRepo   usecase.TransactionRepository
	retrier   Retrier
	logger    zerolog.Logger

	intents chan domain.SyncIntent

	mu     sync.RWMutex
	states map[stateKey]domain.SyncState

	now func() time.Time
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithBufferSize sets the intent queue capacity.
func WithBufferSize(n int) Option {
	return func(s *Syncer) {
		s.intents = make(chan domain.SyncIntent, n)
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Syncer) {
		s.now = now
	}
}

// New creates a Syncer. Call Start to launch the worker loop.
func New(assetRepo usecase.AssetRepository, txnRepo usecase.TransactionRepository, retrier Retrier, logger zerolog.Logger, opts ...Option) *Syncer {
	s := &Syncer{
		assetRepo: assetRepo,
		txnRepo:   txnRepo,
		retrier:   retrier,
		logger:    logger.With().Str("component", "syncer").Logger(),
		intents:   make(chan domain.SyncIntent, defaultBufferSize),
		states:    make(map[stateKey]domain.SyncState),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enqueue accepts a durable-write intent without blocking. If the queue is
// full the intent is dropped and the record is marked failed immediately.
func (s *Syncer) Enqueue(intent domain.SyncIntent) {
	if intent.EnqueuedAt.IsZero() {
		intent.EnqueuedAt = s.now()
	}

	s.setState(intent, domain.SyncPending, 0, "")

	select {
	case s.intents <- intent:
		metrics.SyncQueueDepth.Set(float64(len(s.intents)))
	default:
		metrics.SyncDropped.Inc()
		metrics.SyncWrites.WithLabelValues(string(intent.Collection), resultLabelDropped).Inc()
		s.setState(intent, domain.SyncFailed, 0, "sync queue full")
		s.logger.Error().
			Str("collection", string(intent.Collection)).
			Str("record_id", intent.RecordID).
			Msg("sync queue full, intent dropped")
	}
}

// Status returns the sync state for a record, if one has been enqueued.
func (s *Syncer) Status(collection domain.Collection, recordID string) (domain.SyncState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[stateKey{collection: collection, recordID: recordID}]
	return state, ok
}

// Start runs the worker loop until ctx is cancelled, then drains whatever is
// still queued with a bounded per-write timeout.
func (s *Syncer) Start(ctx context.Context) {
	s.logger.Info().Int("buffer", cap(s.intents)).Msg("sync worker started")

	for {
		select {
		case <-ctx.Done():
			s.drain()
			s.logger.Info().Msg("sync worker stopped")
			return
		case intent := <-s.intents:
			metrics.SyncQueueDepth.Set(float64(len(s.intents)))
			s.process(ctx, intent)
		}
	}
}

func (s *Syncer) drain() {
	for {
		select {
		case intent := <-s.intents:
			ctx, cancel := context.WithTimeout(context.Background(), drainWriteTimeout)
			s.process(ctx, intent)
			cancel()
		default:
			return
		}
	}
}

func (s *Syncer) process(ctx context.Context, intent domain.SyncIntent) {
	attempts := 0

	err := s.retrier.Retry(ctx, func() error {
		attempts++
		return s.persist(ctx, intent)
	})
	if err != nil {
		metrics.SyncWrites.WithLabelValues(string(intent.Collection), resultLabelError).Inc()
		s.setState(intent, domain.SyncFailed, attempts, err.Error())
		s.logger.Error().Err(err).
			Str("collection", string(intent.Collection)).
			Str("op", string(intent.Op)).
			Str("record_id", intent.RecordID).
			Int("attempts", attempts).
			Msg("durable write failed, local state diverged")
		return
	}

	metrics.SyncWrites.WithLabelValues(string(intent.Collection), resultLabelOK).Inc()
	s.setState(intent, domain.SyncSynced, attempts, "")
	s.logger.Debug().
		Str("collection", string(intent.Collection)).
		Str("op", string(intent.Op)).
		Str("record_id", intent.RecordID).
		Msg("durable write applied")
}

func (s *Syncer) persist(ctx context.Context, intent domain.SyncIntent) error {
	switch intent.Collection {
	case domain.CollectionAssets:
		switch intent.Op {
		case domain.SyncOpAdd:
			return s.assetRepo.Create(ctx, intent.Asset)
		case domain.SyncOpUpdate:
			return s.assetRepo.Update(ctx, intent.Asset)
		}
	case domain.CollectionTransactions:
		switch intent.Op {
		case domain.SyncOpAdd:
			return s.txnRepo.Create(ctx, intent.Transaction)
		case domain.SyncOpUpdate:
			return s.txnRepo.Update(ctx, intent.Transaction)
		case domain.SyncOpDelete:
			return s.txnRepo.Delete(ctx, intent.UserID, intent.RecordID)
		}
	}

	return fmt.Errorf("unsupported sync intent: %s %s", intent.Collection, intent.Op)
}

func (s *Syncer) setState(intent domain.SyncIntent, status domain.SyncStatus, attempts int, lastError string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[stateKey{collection: intent.Collection, recordID: intent.RecordID}] = domain.SyncState{
		Collection: intent.Collection,
		RecordID:   intent.RecordID,
		Status:     status,
		Attempts:   attempts,
		LastError:  lastError,
		UpdatedAt:  s.now(),
	}
}
