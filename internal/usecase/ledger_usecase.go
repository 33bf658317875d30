package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rk/lifeadmin/internal/domain"
	"github.com/rk/lifeadmin/internal/infrastructure/metrics"
	"github.com/rk/lifeadmin/internal/ledger"
)

const summaryCacheTTL = 30 * time.Second

// LedgerUseCase fronts the per-user ledger engines. The in-memory ledger is
// mutated immediately; durable writes are queued as sync intents and their
// outcome is observable per record. A failed durable write never rolls the
// local mutation back.
type LedgerUseCase struct {
	mu      sync.Mutex
	ledgers map[string]*ledger.Ledger

	assetRepo AssetRepository
	txnRepo   TransactionRepository
	idGen     IDGenerator
	queue     SyncQueue
	cache     Cache
	logger    zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	assetRepo AssetRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	queue SyncQueue,
	cache Cache,
	logger zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		ledgers:   make(map[string]*ledger.Ledger),
		assetRepo: assetRepo,
		txnRepo:   txnRepo,
		idGen:     idGen,
		queue:     queue,
		cache:     cache,
		logger:    logger,
	}
}

// ledgerFor returns the user's ledger, hydrating it from the durable store
// on first access. A full reload overwrites local state from the store.
func (uc *LedgerUseCase) ledgerFor(ctx context.Context, userID string) (*ledger.Ledger, error) {
	uc.mu.Lock()
	if l, ok := uc.ledgers[userID]; ok {
		uc.mu.Unlock()
		return l, nil
	}
	uc.mu.Unlock()

	assets, err := uc.assetRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	txns, err := uc.txnRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	// Another request may have hydrated concurrently; keep the first.
	if l, ok := uc.ledgers[userID]; ok {
		return l, nil
	}

	l := ledger.New(userID, uc.idGen)
	l.Load(assets, txns)
	uc.ledgers[userID] = l

	return l, nil
}

// OpenAccount creates a new asset and queues its durable write.
func (uc *LedgerUseCase) OpenAccount(ctx context.Context, userID string, input ledger.OpenAccountInput) (*domain.Asset, error) {
	l, err := uc.ledgerFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	asset := l.OpenAccount(input)

	uc.queue.Enqueue(domain.SyncIntent{
		Collection: domain.CollectionAssets,
		Op:         domain.SyncOpAdd,
		UserID:     userID,
		RecordID:   asset.ID,
		Asset:      asset,
	})
	uc.invalidateSummary(ctx, userID)
	metrics.AccountsOpened.Inc()

	return asset, nil
}

// ListAssets returns all assets of the user, newest first.
func (uc *LedgerUseCase) ListAssets(ctx context.Context, userID string) ([]*domain.Asset, error) {
	l, err := uc.ledgerFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return l.Assets(), nil
}

// GetAsset returns one asset.
func (uc *LedgerUseCase) GetAsset(ctx context.Context, userID, id string) (*domain.Asset, error) {
	l, err := uc.ledgerFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	asset, ok := l.Asset(id)
	if !ok {
		return nil, domain.ErrAssetNotFound
	}

	return asset, nil
}

// UpdateAsset applies a display patch to an asset and queues the write.
func (uc *LedgerUseCase) UpdateAsset(ctx context.Context, userID, id string, patch ledger.AssetPatch) (*domain.Asset, error) {
	l, err := uc.ledgerFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	asset, ok := l.UpdateAccount(id, patch)
	if !ok {
		return nil, domain.ErrAssetNotFound
	}

	uc.queue.Enqueue(domain.SyncIntent{
		Collection: domain.CollectionAssets,
		Op:         domain.SyncOpUpdate,
		UserID:     userID,
		RecordID:   asset.ID,
		Asset:      asset,
	})

	return asset, nil
}

// RecordTransaction records a transaction, applies its balance effect and
// queues the durable writes for the transaction and every touched asset.
func (uc *LedgerUseCase) RecordTransaction(ctx context.Context, userID string, input ledger.RecordTransactionInput) (*domain.Transaction, error) {
	l, err := uc.ledgerFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	txn, touched, err := l.RecordTransaction(input)
	if err != nil {
		return nil, err
	}

	uc.queue.Enqueue(domain.SyncIntent{
		Collection:  domain.CollectionTransactions,
		Op:          domain.SyncOpAdd,
		UserID:      userID,
		RecordID:    txn.ID,
		Transaction: txn,
	})
	uc.enqueueAssetUpdates(userID, touched)
	uc.invalidateSummary(ctx, userID)
	metrics.TransactionsRecorded.WithLabelValues(string(txn.Kind)).Inc()

	return txn, nil
}

// ListTransactions returns all transactions of the user, newest first.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	l, err := uc.ledgerFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return l.Transactions(), nil
}

// GetTransaction returns one transaction.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	l, err := uc.ledgerFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	txn, ok := l.Transaction(id)
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}

	return txn, nil
}

// AmendTransaction amends a stored transaction. The ledger itself treats an
// unknown id as a no-op; this surface reports it as not found.
func (uc *LedgerUseCase) AmendTransaction(ctx context.Context, userID, id string, patch ledger.TransactionPatch) (*domain.Transaction, error) {
	l, err := uc.ledgerFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	txn, touched, err := l.AmendTransaction(id, patch)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, domain.ErrTransactionNotFound
	}

	uc.queue.Enqueue(domain.SyncIntent{
		Collection:  domain.CollectionTransactions,
		Op:          domain.SyncOpUpdate,
		UserID:      userID,
		RecordID:    txn.ID,
		Transaction: txn,
	})
	uc.enqueueAssetUpdates(userID, touched)
	uc.invalidateSummary(ctx, userID)
	metrics.TransactionsAmended.Inc()

	return txn, nil
}

// RemoveTransaction reverses and removes a stored transaction.
func (uc *LedgerUseCase) RemoveTransaction(ctx context.Context, userID, id string) error {
	l, err := uc.ledgerFor(ctx, userID)
	if err != nil {
		return err
	}

	txn, touched := l.RemoveTransaction(id)
	if txn == nil {
		return domain.ErrTransactionNotFound
	}

	uc.queue.Enqueue(domain.SyncIntent{
		Collection: domain.CollectionTransactions,
		Op:         domain.SyncOpDelete,
		UserID:     userID,
		RecordID:   txn.ID,
	})
	uc.enqueueAssetUpdates(userID, touched)
	uc.invalidateSummary(ctx, userID)
	metrics.TransactionsRemoved.Inc()

	return nil
}

// CurrencySummary is the net position of one currency across all assets.
type CurrencySummary struct {
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
	Assets   int             `json:"assets"`
}

// Summary computes per-currency totals across the user's assets, cached
// briefly in the shared cache.
func (uc *LedgerUseCase) Summary(ctx context.Context, userID string) ([]CurrencySummary, error) {
	key := summaryCacheKey(userID)

	if cached, err := uc.cache.Get(ctx, key); err == nil && cached != "" {
		var out []CurrencySummary
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return out, nil
		}
	}

	l, err := uc.ledgerFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*CurrencySummary)

	var order []string
	for _, a := range l.Assets() {
		s, ok := totals[a.Currency]
		if !ok {
			s = &CurrencySummary{Currency: a.Currency, Total: decimal.Zero}
			totals[a.Currency] = s
			order = append(order, a.Currency)
		}
		s.Total = s.Total.Add(a.Balance)
		s.Assets++
	}

	out := make([]CurrencySummary, 0, len(order))
	for _, cur := range order {
		out = append(out, *totals[cur])
	}

	if raw, err := json.Marshal(out); err == nil {
		if err := uc.cache.Set(ctx, key, string(raw), summaryCacheTTL); err != nil {
			uc.logger.Warn().Err(err).Msg("summary cache write failed")
		}
	}

	return out, nil
}

func (uc *LedgerUseCase) enqueueAssetUpdates(userID string, assets []*domain.Asset) {
	for _, a := range assets {
		uc.queue.Enqueue(domain.SyncIntent{
			Collection: domain.CollectionAssets,
			Op:         domain.SyncOpUpdate,
			UserID:     userID,
			RecordID:   a.ID,
			Asset:      a,
		})
	}
}

func (uc *LedgerUseCase) invalidateSummary(ctx context.Context, userID string) {
	if err := uc.cache.Delete(ctx, summaryCacheKey(userID)); err != nil {
		uc.logger.Debug().Err(err).Msg("summary cache invalidation failed")
	}
}

func summaryCacheKey(userID string) string {
	return "summary:" + userID
}
