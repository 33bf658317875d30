package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rk/lifeadmin/internal/domain"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a new transaction.
func (r *TransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, amount, kind, date, notes, subcategory, from_asset_id, to_asset_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		txn.ID,
		txn.UserID,
		decimalToNumeric(txn.Amount),
		string(txn.Kind),
		txn.Date,
		txn.Notes,
		txn.Subcategory,
		txn.FromAssetID,
		txn.ToAssetID,
		txn.CreatedAt,
	)

	return err
}

// Update replaces the stored state of an amended transaction.
func (r *TransactionRepository) Update(ctx context.Context, txn *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $3, kind = $4, date = $5, notes = $6, subcategory = $7, from_asset_id = $8, to_asset_id = $9
		WHERE id = $1 AND user_id = $2
	`

	_, err := r.pool.Exec(ctx, query,
		txn.ID,
		txn.UserID,
		decimalToNumeric(txn.Amount),
		string(txn.Kind),
		txn.Date,
		txn.Notes,
		txn.Subcategory,
		txn.FromAssetID,
		txn.ToAssetID,
	)

	return err
}

// Delete removes a transaction.
func (r *TransactionRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, id, userID)
	return err
}

// ListByUser retrieves all transactions for a user, newest first.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	query := `
		SELECT id, user_id, amount, kind, date, notes, subcategory, from_asset_id, to_asset_id, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		var (
			txn    domain.Transaction
			amount pgtype.Numeric
			kind   string
		)
		err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&amount,
			&kind,
			&txn.Date,
			&txn.Notes,
			&txn.Subcategory,
			&txn.FromAssetID,
			&txn.ToAssetID,
			&txn.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		txn.Amount = numericToDecimal(amount)
		txn.Kind = domain.TransactionKind(kind)
		txns = append(txns, &txn)
	}

	return txns, rows.Err()
}
