// Package ledger implements the balance-maintenance engine: an explicit
// ledger object owning the asset and transaction collections of one user,
// with all mutation going through the operations defined here. Applying a
// transaction adjusts exactly the balances implied by its kind; reversing it
// restores the previous balances with exact decimal equality.
package ledger

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rk/lifeadmin/internal/domain"
)

// IDGenerator generates unique IDs for new records.
type IDGenerator interface {
	Generate() string
}

// Ledger owns the in-memory asset and transaction collections of a single
// user, newest first. Operations are serialized by an internal mutex so
// each mutation runs to completion before the next one starts.
type Ledger struct {
	mu     sync.Mutex
	userID string
	idGen  IDGenerator
	now    func() time.Time

	assets       []*domain.Asset
	transactions []*domain.Transaction
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// New creates an empty ledger for a user.
func New(userID string, idGen IDGenerator, opts ...Option) *Ledger {
	l := &Ledger{
		userID: userID,
		idGen:  idGen,
		now:    func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load replaces the owned collections with records read from the durable
// store. Used on hydration; the store is the source of truth at that point.
func (l *Ledger) Load(assets []*domain.Asset, transactions []*domain.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.assets = make([]*domain.Asset, 0, len(assets))
	for _, a := range assets {
		l.assets = append(l.assets, a.Clone())
	}

	l.transactions = make([]*domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		l.transactions = append(l.transactions, t.Clone())
	}
}

// Assets returns copies of all assets, newest first.
func (l *Ledger) Assets() []*domain.Asset {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*domain.Asset, 0, len(l.assets))
	for _, a := range l.assets {
		out = append(out, a.Clone())
	}

	return out
}

// Asset returns a copy of the asset with the given id.
func (l *Ledger) Asset(id string) (*domain.Asset, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, _, ok := l.findAsset(id)
	if !ok {
		return nil, false
	}

	return a.Clone(), true
}

// Transactions returns copies of all transactions, newest first.
func (l *Ledger) Transactions() []*domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*domain.Transaction, 0, len(l.transactions))
	for _, t := range l.transactions {
		out = append(out, t.Clone())
	}

	return out
}

// Transaction returns a copy of the transaction with the given id.
func (l *Ledger) Transaction(id string) (*domain.Transaction, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, _, ok := l.findTransaction(id)
	if !ok {
		return nil, false
	}

	return t.Clone(), true
}

// OpenAccountInput is the input for opening an account.
type OpenAccountInput struct {
	Title          string
	Kind           domain.AssetKind
	Currency       string
	InitialBalance decimal.Decimal
	Color          string
}

// OpenAccount creates a new asset with the given initial balance (zero when
// unspecified) and prepends it to the asset collection.
func (l *Ledger) OpenAccount(input OpenAccountInput) *domain.Asset {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	asset := &domain.Asset{
		ID:        l.idGen.Generate(),
		UserID:    l.userID,
		Title:     input.Title,
		Kind:      input.Kind,
		Currency:  input.Currency,
		Balance:   input.InitialBalance,
		Color:     input.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if asset.Title == "" {
		asset.Title = "Untitled"
	}
	if !asset.Kind.IsValid() {
		asset.Kind = domain.AssetKindBank
	}
	if asset.Currency == "" {
		asset.Currency = "INR"
	}
	if asset.Color == "" {
		asset.Color = "#0984e3"
	}

	l.assets = append([]*domain.Asset{asset}, l.assets...)

	return asset.Clone()
}

// AssetPatch carries the optional display fields of an account edit. Balance
// is deliberately absent: it only moves through transactions.
type AssetPatch struct {
	Title *string
	Kind  *domain.AssetKind
	Color *string
}

// UpdateAccount applies a display patch to an asset. Missing id is a no-op
// and returns ok=false.
func (l *Ledger) UpdateAccount(id string, patch AssetPatch) (*domain.Asset, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, _, ok := l.findAsset(id)
	if !ok {
		return nil, false
	}

	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Kind != nil && patch.Kind.IsValid() {
		a.Kind = *patch.Kind
	}
	if patch.Color != nil {
		a.Color = *patch.Color
	}
	a.UpdatedAt = l.now()

	return a.Clone(), true
}

// RecordTransactionInput is the input for recording a transaction.
type RecordTransactionInput struct {
	Amount      decimal.Decimal
	Kind        domain.TransactionKind
	Date        time.Time
	Notes       string
	Subcategory string
	FromAssetID string
	ToAssetID   string
}

// RecordTransaction validates the input, applies the balance effect and
// prepends the new transaction. Referenced assets must exist; an unresolved
// reference is a validation error, rejected before any state changes.
// Returns the stored transaction and copies of the assets whose balances
// moved.
func (l *Ledger) RecordTransaction(input RecordTransactionInput) (*domain.Transaction, []*domain.Asset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	txn := &domain.Transaction{
		ID:          l.idGen.Generate(),
		UserID:      l.userID,
		Amount:      input.Amount,
		Kind:        input.Kind,
		Date:        input.Date,
		Notes:       input.Notes,
		Subcategory: input.Subcategory,
		FromAssetID: input.FromAssetID,
		ToAssetID:   input.ToAssetID,
		CreatedAt:   now,
	}

	if txn.Date.IsZero() {
		txn.Date = now
	}

	if err := l.validateStored(txn); err != nil {
		return nil, nil, err
	}

	touched := l.applyEffect(txn.Kind, txn.Amount, txn.FromAssetID, txn.ToAssetID)
	l.transactions = append([]*domain.Transaction{txn}, l.transactions...)

	return txn.Clone(), cloneAssets(touched), nil
}

// TransactionPatch carries the optional fields of a transaction amendment.
type TransactionPatch struct {
	Amount      *decimal.Decimal
	Kind        *domain.TransactionKind
	Date        *time.Time
	Notes       *string
	Subcategory *string
	FromAssetID *string
	ToAssetID   *string
}

// AmendTransaction merges the patch over the stored transaction, reverses
// the old effect, applies the new one and replaces the stored record. The
// net balance delta equals exactly (new effect - old effect). An unknown id
// is a no-op returning (nil, nil, nil). A patch producing an invalid merged
// transaction is rejected before any balance moves.
func (l *Ledger) AmendTransaction(id string, patch TransactionPatch) (*domain.Transaction, []*domain.Asset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	old, idx, ok := l.findTransaction(id)
	if !ok {
		return nil, nil, nil
	}

	merged := old.Clone()
	if patch.Amount != nil {
		merged.Amount = *patch.Amount
	}
	if patch.Kind != nil {
		merged.Kind = *patch.Kind
	}
	if patch.Date != nil {
		merged.Date = *patch.Date
	}
	if patch.Notes != nil {
		merged.Notes = *patch.Notes
	}
	if patch.Subcategory != nil {
		merged.Subcategory = *patch.Subcategory
	}
	if patch.FromAssetID != nil {
		merged.FromAssetID = *patch.FromAssetID
	}
	if patch.ToAssetID != nil {
		merged.ToAssetID = *patch.ToAssetID
	}

	if err := l.validateStored(merged); err != nil {
		return nil, nil, err
	}

	reversed := l.reverseEffect(old.Kind, old.Amount, old.FromAssetID, old.ToAssetID)
	applied := l.applyEffect(merged.Kind, merged.Amount, merged.FromAssetID, merged.ToAssetID)
	l.transactions[idx] = merged

	return merged.Clone(), cloneAssets(uniqueAssets(reversed, applied)), nil
}

// RemoveTransaction reverses the stored effect and drops the transaction.
// An unknown id is a no-op returning (nil, nil).
func (l *Ledger) RemoveTransaction(id string) (*domain.Transaction, []*domain.Asset) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txn, idx, ok := l.findTransaction(id)
	if !ok {
		return nil, nil
	}

	touched := l.reverseEffect(txn.Kind, txn.Amount, txn.FromAssetID, txn.ToAssetID)
	l.transactions = append(l.transactions[:idx], l.transactions[idx+1:]...)

	return txn.Clone(), cloneAssets(touched)
}

// applyEffect adjusts the balances implied by kind in place:
//
//	Expense:           balance[from] -= amount
//	Transfer:          balance[from] -= amount; balance[to] += amount
//	Income/Difference: balance[to]   += amount
//
// An id that does not resolve skips that side of the adjustment. With
// validation at record/amend time this only happens for records hydrated
// from a store that already lost the referenced asset.
func (l *Ledger) applyEffect(kind domain.TransactionKind, amount decimal.Decimal, fromID, toID string) []*domain.Asset {
	now := l.now()

	var touched []*domain.Asset

	if kind.DebitsSource() {
		if a, _, ok := l.findAsset(fromID); ok {
			a.Balance = a.Balance.Sub(amount)
			a.UpdatedAt = now
			touched = append(touched, a)
		}
	}

	if kind.CreditsDestination() {
		if a, _, ok := l.findAsset(toID); ok {
			a.Balance = a.Balance.Add(amount)
			a.UpdatedAt = now
			touched = append(touched, a)
		}
	}

	return touched
}

// reverseEffect is the exact algebraic inverse of applyEffect: same account
// selection, opposite sign.
func (l *Ledger) reverseEffect(kind domain.TransactionKind, amount decimal.Decimal, fromID, toID string) []*domain.Asset {
	return l.applyEffect(kind, amount.Neg(), fromID, toID)
}

// validateStored checks shape and that every referenced asset resolves.
func (l *Ledger) validateStored(txn *domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return err
	}

	if txn.Kind.DebitsSource() {
		if _, _, ok := l.findAsset(txn.FromAssetID); !ok {
			return domain.ErrAssetNotFound
		}
	}

	if txn.Kind.CreditsDestination() {
		if _, _, ok := l.findAsset(txn.ToAssetID); !ok {
			return domain.ErrAssetNotFound
		}
	}

	return nil
}

func (l *Ledger) findAsset(id string) (*domain.Asset, int, bool) {
	for i, a := range l.assets {
		if a.ID == id {
			return a, i, true
		}
	}

	return nil, -1, false
}

func (l *Ledger) findTransaction(id string) (*domain.Transaction, int, bool) {
	for i, t := range l.transactions {
		if t.ID == id {
			return t, i, true
		}
	}

	return nil, -1, false
}

func cloneAssets(assets []*domain.Asset) []*domain.Asset {
	out := make([]*domain.Asset, 0, len(assets))
	for _, a := range assets {
		out = append(out, a.Clone())
	}

	return out
}

// uniqueAssets merges two touched sets, keeping the latest state per id.
func uniqueAssets(groups ...[]*domain.Asset) []*domain.Asset {
	seen := make(map[string]int)

	var out []*domain.Asset
	for _, group := range groups {
		for _, a := range group {
			if i, ok := seen[a.ID]; ok {
				out[i] = a
				continue
			}
			seen[a.ID] = len(out)
			out = append(out, a)
		}
	}

	return out
}
