package ledger_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rk/lifeadmin/internal/domain"
	"github.com/rk/lifeadmin/internal/ledger"
)

type seqIDGen struct {
	n int
}

func (g *seqIDGen) Generate() string {
	g.n++
	return fmt.Sprintf("id-%03d", g.n)
}

func newTestLedger(t *testing.T) *ledger.Ledger {
	t.Helper()

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	return ledger.New("user-1", &seqIDGen{}, ledger.WithClock(func() time.Time {
		return clock
	}))
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

func openAccount(t *testing.T, l *ledger.Ledger, title, balance string) *domain.Asset {
	t.Helper()

	return l.OpenAccount(ledger.OpenAccountInput{
		Title:          title,
		Kind:           domain.AssetKindBank,
		Currency:       "INR",
		InitialBalance: dec(balance),
	})
}

func balance(t *testing.T, l *ledger.Ledger, id string) decimal.Decimal {
	t.Helper()

	a, ok := l.Asset(id)
	require.True(t, ok, "asset %s must exist", id)

	return a.Balance
}

func TestOpenAccount_Defaults(t *testing.T) {
	l := newTestLedger(t)

	a := l.OpenAccount(ledger.OpenAccountInput{})

	assert.Equal(t, "Untitled", a.Title)
	assert.Equal(t, domain.AssetKindBank, a.Kind)
	assert.Equal(t, "INR", a.Currency)
	assert.True(t, a.Balance.IsZero())
	assert.NotEmpty(t, a.ID)
}

func TestOpenAccount_PrependsNewestFirst(t *testing.T) {
	l := newTestLedger(t)

	first := openAccount(t, l, "First", "10")
	second := openAccount(t, l, "Second", "20")

	assets := l.Assets()
	require.Len(t, assets, 2)
	assert.Equal(t, second.ID, assets[0].ID)
	assert.Equal(t, first.ID, assets[1].ID)
}

func TestRecordTransaction_Validation(t *testing.T) {
	l := newTestLedger(t)
	a := openAccount(t, l, "A", "1000")
	b := openAccount(t, l, "B", "500")

	tests := []struct {
		name    string
		input   ledger.RecordTransactionInput
		wantErr error
	}{
		{
			name: "zero amount rejected",
			input: ledger.RecordTransactionInput{
				Kind:        domain.TransactionKindExpense,
				Amount:      decimal.Zero,
				FromAssetID: a.ID,
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "negative amount rejected",
			input: ledger.RecordTransactionInput{
				Kind:      domain.TransactionKindIncome,
				Amount:    dec("-5"),
				ToAssetID: a.ID,
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "transfer to same asset rejected",
			input: ledger.RecordTransactionInput{
				Kind:        domain.TransactionKindTransfer,
				Amount:      dec("10"),
				FromAssetID: a.ID,
				ToAssetID:   a.ID,
			},
			wantErr: domain.ErrSameAsset,
		},
		{
			name: "expense without source rejected",
			input: ledger.RecordTransactionInput{
				Kind:   domain.TransactionKindExpense,
				Amount: dec("10"),
			},
			wantErr: domain.ErrMissingSourceAsset,
		},
		{
			name: "unknown source asset rejected",
			input: ledger.RecordTransactionInput{
				Kind:        domain.TransactionKindExpense,
				Amount:      dec("10"),
				FromAssetID: "nope",
			},
			wantErr: domain.ErrAssetNotFound,
		},
		{
			name: "unknown destination asset rejected",
			input: ledger.RecordTransactionInput{
				Kind:        domain.TransactionKindTransfer,
				Amount:      dec("10"),
				FromAssetID: a.ID,
				ToAssetID:   "nope",
			},
			wantErr: domain.ErrAssetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := l.RecordTransaction(tt.input)
			require.ErrorIs(t, err, tt.wantErr)

			// No partial effect on any rejection.
			assert.True(t, balance(t, l, a.ID).Equal(dec("1000")))
			assert.True(t, balance(t, l, b.ID).Equal(dec("500")))
			assert.Empty(t, l.Transactions())
		})
	}
}

func TestRecordTransaction_DefaultsDateToNow(t *testing.T) {
	l := newTestLedger(t)
	a := openAccount(t, l, "A", "100")

	txn, _, err := l.RecordTransaction(ledger.RecordTransactionInput{
		Kind:        domain.TransactionKindExpense,
		Amount:      dec("10"),
		FromAssetID: a.ID,
	})
	require.NoError(t, err)

	assert.False(t, txn.Date.IsZero())
	assert.Equal(t, txn.CreatedAt, txn.Date)
}

// Round-trip identity: record then remove restores balances exactly.
func TestRecordThenRemove_IsIdentityOnBalances(t *testing.T) {
	l := newTestLedger(t)
	a := openAccount(t, l, "A", "1000.37")
	b := openAccount(t, l, "B", "499.63")

	txn, touched, err := l.RecordTransaction(ledger.RecordTransactionInput{
		Kind:        domain.TransactionKindTransfer,
		Amount:      dec("0.01"),
		FromAssetID: a.ID,
		ToAssetID:   b.ID,
	})
	require.NoError(t, err)
	require.Len(t, touched, 2)

	assert.True(t, balance(t, l, a.ID).Equal(dec("1000.36")))
	assert.True(t, balance(t, l, b.ID).Equal(dec("499.64")))

	removed, touched := l.RemoveTransaction(txn.ID)
	require.NotNil(t, removed)
	require.Len(t, touched, 2)

	assert.True(t, balance(t, l, a.ID).Equal(dec("1000.37")))
	assert.True(t, balance(t, l, b.ID).Equal(dec("499.63")))
	assert.Empty(t, l.Transactions())
}

// Amend linearity: balances after an amend equal reverse(old) then
// apply(new) on the pre-amend balances.
func TestAmendTransaction_NetEffect(t *testing.T) {
	l := newTestLedger(t)
	a := openAccount(t, l, "A", "1000")
	b := openAccount(t, l, "B", "500")

	txn, _, err := l.RecordTransaction(ledger.RecordTransactionInput{
		Kind:        domain.TransactionKindExpense,
		Amount:      dec("150"),
		FromAssetID: a.ID,
	})
	require.NoError(t, err)
	require.True(t, balance(t, l, a.ID).Equal(dec("850")))

	// Amend the expense into an income on the other asset: the expense is
	// fully reversed, the income fully applied.
	kind := domain.TransactionKindIncome
	amount := dec("40")
	empty := ""
	amended, touched, err := l.AmendTransaction(txn.ID, ledger.TransactionPatch{
		Kind:        &kind,
		Amount:      &amount,
		FromAssetID: &empty,
		ToAssetID:   &b.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, amended)
	require.Len(t, touched, 2)

	assert.True(t, balance(t, l, a.ID).Equal(dec("1000")))
	assert.True(t, balance(t, l, b.ID).Equal(dec("540")))
	assert.Equal(t, kind, amended.Kind)
	assert.True(t, amended.Amount.Equal(amount))
}

func TestAmendTransaction_UnknownIDIsNoOp(t *testing.T) {
	l := newTestLedger(t)
	a := openAccount(t, l, "A", "100")

	amount := dec("10")
	amended, touched, err := l.AmendTransaction("missing", ledger.TransactionPatch{Amount: &amount})

	require.NoError(t, err)
	assert.Nil(t, amended)
	assert.Nil(t, touched)
	assert.True(t, balance(t, l, a.ID).Equal(dec("100")))
}

func TestAmendTransaction_InvalidPatchLeavesStateUntouched(t *testing.T) {
	l := newTestLedger(t)
	a := openAccount(t, l, "A", "100")

	txn, _, err := l.RecordTransaction(ledger.RecordTransactionInput{
		Kind:        domain.TransactionKindExpense,
		Amount:      dec("30"),
		FromAssetID: a.ID,
	})
	require.NoError(t, err)

	bad := dec("-1")
	_, _, err = l.AmendTransaction(txn.ID, ledger.TransactionPatch{Amount: &bad})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	assert.True(t, balance(t, l, a.ID).Equal(dec("70")))

	stored, ok := l.Transaction(txn.ID)
	require.True(t, ok)
	assert.True(t, stored.Amount.Equal(dec("30")))
}

func TestRemoveTransaction_UnknownIDIsNoOp(t *testing.T) {
	l := newTestLedger(t)
	a := openAccount(t, l, "A", "100")

	removed, touched := l.RemoveTransaction("missing")

	assert.Nil(t, removed)
	assert.Nil(t, touched)
	assert.True(t, balance(t, l, a.ID).Equal(dec("100")))
}

// Kind-scoped mutation: only the assets referenced by the transaction's
// kind change; all other balances stay bit-for-bit identical.
func TestRecordTransaction_OnlyReferencedAssetsChange(t *testing.T) {
	l := newTestLedger(t)
	a := openAccount(t, l, "A", "1000")
	b := openAccount(t, l, "B", "500")
	c := openAccount(t, l, "C", "333.33")

	_, touched, err := l.RecordTransaction(ledger.RecordTransactionInput{
		Kind:        domain.TransactionKindTransfer,
		Amount:      dec("200"),
		FromAssetID: a.ID,
		ToAssetID:   b.ID,
	})
	require.NoError(t, err)

	require.Len(t, touched, 2)
	for _, asset := range touched {
		assert.NotEqual(t, c.ID, asset.ID)
	}

	assert.True(t, balance(t, l, c.ID).Equal(dec("333.33")))
}

// Concrete scenario from the ledger contract: transfer, amend, delete.
func TestTransferAmendDeleteScenario(t *testing.T) {
	l := newTestLedger(t)
	a := openAccount(t, l, "A", "1000")
	b := openAccount(t, l, "B", "500")

	txn, _, err := l.RecordTransaction(ledger.RecordTransactionInput{
		Kind:        domain.TransactionKindTransfer,
		Amount:      dec("200"),
		FromAssetID: a.ID,
		ToAssetID:   b.ID,
	})
	require.NoError(t, err)

	assert.True(t, balance(t, l, a.ID).Equal(dec("800")))
	assert.True(t, balance(t, l, b.ID).Equal(dec("700")))

	amount := dec("300")
	_, _, err = l.AmendTransaction(txn.ID, ledger.TransactionPatch{Amount: &amount})
	require.NoError(t, err)

	assert.True(t, balance(t, l, a.ID).Equal(dec("700")))
	assert.True(t, balance(t, l, b.ID).Equal(dec("800")))

	removed, _ := l.RemoveTransaction(txn.ID)
	require.NotNil(t, removed)

	assert.True(t, balance(t, l, a.ID).Equal(dec("1000")))
	assert.True(t, balance(t, l, b.ID).Equal(dec("500")))
}

// Concrete scenario from the ledger contract: expense and income deletes
// reverse in either order.
func TestExpenseIncomeDeleteScenario(t *testing.T) {
	l := newTestLedger(t)
	a := openAccount(t, l, "A", "1000")

	expense, _, err := l.RecordTransaction(ledger.RecordTransactionInput{
		Kind:        domain.TransactionKindExpense,
		Amount:      dec("150"),
		FromAssetID: a.ID,
	})
	require.NoError(t, err)
	assert.True(t, balance(t, l, a.ID).Equal(dec("850")))

	income, _, err := l.RecordTransaction(ledger.RecordTransactionInput{
		Kind:      domain.TransactionKindIncome,
		Amount:    dec("50"),
		ToAssetID: a.ID,
	})
	require.NoError(t, err)
	assert.True(t, balance(t, l, a.ID).Equal(dec("900")))

	l.RemoveTransaction(expense.ID)
	assert.True(t, balance(t, l, a.ID).Equal(dec("1050")))

	l.RemoveTransaction(income.ID)
	assert.True(t, balance(t, l, a.ID).Equal(dec("1000")))
}

func TestLoad_ReplacesCollections(t *testing.T) {
	l := newTestLedger(t)
	openAccount(t, l, "Old", "1")

	l.Load(
		[]*domain.Asset{{ID: "a1", Title: "Hydrated", Balance: dec("42")}},
		[]*domain.Transaction{{ID: "t1", Kind: domain.TransactionKindIncome, Amount: dec("42"), ToAssetID: "a1"}},
	)

	assets := l.Assets()
	require.Len(t, assets, 1)
	assert.Equal(t, "a1", assets[0].ID)

	txns := l.Transactions()
	require.Len(t, txns, 1)
	assert.Equal(t, "t1", txns[0].ID)
}

// Hydrated data can reference assets the store already lost; reversing such
// a transaction skips the unresolved side instead of failing.
func TestRemoveTransaction_OrphanedReferenceSkipsSilently(t *testing.T) {
	l := newTestLedger(t)

	l.Load(
		[]*domain.Asset{{ID: "a1", Balance: dec("100")}},
		[]*domain.Transaction{{
			ID:          "t1",
			Kind:        domain.TransactionKindTransfer,
			Amount:      dec("25"),
			FromAssetID: "gone",
			ToAssetID:   "a1",
		}},
	)

	removed, touched := l.RemoveTransaction("t1")
	require.NotNil(t, removed)
	require.Len(t, touched, 1)

	assert.True(t, balance(t, l, "a1").Equal(dec("75")))
	assert.Empty(t, l.Transactions())
}

func TestMutationsReturnCopies(t *testing.T) {
	l := newTestLedger(t)
	a := openAccount(t, l, "A", "100")

	a.Balance = dec("999999")

	assert.True(t, balance(t, l, a.ID).Equal(dec("100")))
}
