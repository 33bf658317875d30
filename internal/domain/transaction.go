package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind determines which asset(s) a transaction debits or credits.
type TransactionKind string

const (
	// TransactionKindExpense debits the source asset.
	TransactionKindExpense TransactionKind = "Expense"
	// TransactionKindTransfer moves the amount between two distinct assets.
	TransactionKindTransfer TransactionKind = "Transfer"
	// TransactionKindIncome credits the destination asset.
	TransactionKindIncome TransactionKind = "Income"
	// TransactionKindDifference credits the destination asset; used for
	// manual balance corrections.
	TransactionKindDifference TransactionKind = "Difference"
)

var validTransactionKinds = map[TransactionKind]bool{
	TransactionKindExpense:    true,
	TransactionKindTransfer:   true,
	TransactionKindIncome:     true,
	TransactionKindDifference: true,
}

// IsValid reports whether the kind is one of the known transaction kinds.
func (k TransactionKind) IsValid() bool {
	return validTransactionKinds[k]
}

// DebitsSource reports whether the kind debits FromAssetID.
func (k TransactionKind) DebitsSource() bool {
	return k == TransactionKindExpense || k == TransactionKindTransfer
}

// CreditsDestination reports whether the kind credits ToAssetID.
func (k TransactionKind) CreditsDestination() bool {
	return k == TransactionKindTransfer || k == TransactionKindIncome || k == TransactionKindDifference
}

// Transaction represents a single movement of money into, out of, or between
// assets. Exactly one reference pattern is valid per kind:
//
//	Expense:           FromAssetID set, ToAssetID empty
//	Transfer:          both set and distinct
//	Income/Difference: ToAssetID set, FromAssetID empty
type Transaction struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Kind        TransactionKind
	Date        time.Time
	Notes       string
	Subcategory string
	FromAssetID string
	ToAssetID   string
	CreatedAt   time.Time
}

// Validate checks the amount and the per-kind reference pattern.
func (t *Transaction) Validate() error {
	if !t.Kind.IsValid() {
		return ErrInvalidTransactionKind
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	switch t.Kind {
	case TransactionKindExpense:
		if t.FromAssetID == "" {
			return ErrMissingSourceAsset
		}
		if t.ToAssetID != "" {
			return ErrUnexpectedDestinationAsset
		}
	case TransactionKindTransfer:
		if t.FromAssetID == "" {
			return ErrMissingSourceAsset
		}
		if t.ToAssetID == "" {
			return ErrMissingDestinationAsset
		}
		if t.FromAssetID == t.ToAssetID {
			return ErrSameAsset
		}
	case TransactionKindIncome, TransactionKindDifference:
		if t.ToAssetID == "" {
			return ErrMissingDestinationAsset
		}
		if t.FromAssetID != "" {
			return ErrUnexpectedSourceAsset
		}
	}

	return nil
}

// Clone returns a copy of the transaction safe to hand outside the ledger.
func (t *Transaction) Clone() *Transaction {
	c := *t
	return &c
}
