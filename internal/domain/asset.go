package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetKind classifies a balance-holding account.
type AssetKind string

const (
	AssetKindBank   AssetKind = "bank"
	AssetKindCash   AssetKind = "cash"
	AssetKindCredit AssetKind = "credit"
	AssetKindOther  AssetKind = "other"
)

var validAssetKinds = map[AssetKind]bool{
	AssetKindBank:   true,
	AssetKindCash:   true,
	AssetKindCredit: true,
	AssetKindOther:  true,
}

// IsValid reports whether the kind is one of the known asset kinds.
func (k AssetKind) IsValid() bool {
	return validAssetKinds[k]
}

// Asset represents a balance-holding account (bank, cash, credit, other).
// Balance is mutated exclusively through transaction application and
// reversal in the ledger engine.
type Asset struct {
	ID        string
	UserID    string
	Title     string
	Kind      AssetKind
	Currency  string
	Balance   decimal.Decimal
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a copy of the asset safe to hand outside the ledger.
func (a *Asset) Clone() *Asset {
	c := *a
	return &c
}
