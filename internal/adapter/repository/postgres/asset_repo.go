package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rk/lifeadmin/internal/domain"
)

// AssetRepository implements usecase.AssetRepository.
type AssetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

// Create inserts a new asset.
func (r *AssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	query := `
		INSERT INTO assets (id, user_id, title, kind, currency, balance, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		asset.ID,
		asset.UserID,
		asset.Title,
		string(asset.Kind),
		asset.Currency,
		decimalToNumeric(asset.Balance),
		asset.Color,
		asset.CreatedAt,
		asset.UpdatedAt,
	)

	return err
}

// Update writes the current state of an asset. The balance column always
// reflects the last applied ledger mutation.
func (r *AssetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	query := `
		UPDATE assets
		SET title = $3, kind = $4, currency = $5, balance = $6, color = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2
	`

	_, err := r.pool.Exec(ctx, query,
		asset.ID,
		asset.UserID,
		asset.Title,
		string(asset.Kind),
		asset.Currency,
		decimalToNumeric(asset.Balance),
		asset.Color,
		asset.UpdatedAt,
	)

	return err
}

// ListByUser retrieves all assets for a user, newest first.
func (r *AssetRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Asset, error) {
	query := `
		SELECT id, user_id, title, kind, currency, balance, color, created_at, updated_at
		FROM assets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		var (
			asset   domain.Asset
			kind    string
			balance pgtype.Numeric
		)
		err := rows.Scan(
			&asset.ID,
			&asset.UserID,
			&asset.Title,
			&kind,
			&asset.Currency,
			&balance,
			&asset.Color,
			&asset.CreatedAt,
			&asset.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		asset.Kind = domain.AssetKind(kind)
		asset.Balance = numericToDecimal(balance)
		assets = append(assets, &asset)
	}

	return assets, rows.Err()
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
