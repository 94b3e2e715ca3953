// Package payments provides the PostgreSQL-backed payment ledger. The table
// is append-only; no update or delete path exists.
package payments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/sellegate/internal/dbx"
	"github.com/dmitrijs2005/sellegate/internal/server/models"
)

// PostgresRepository implements payment storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	query := `
		INSERT INTO payments (id, item_id, user_id, item_name, total_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		payment.ID, payment.ItemID, payment.UserID, payment.ItemName, payment.TotalPrice).
		Scan(&payment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return payment, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Payment, error) {
	query := `
		SELECT id, item_id, user_id, item_name, total_price, created_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select payments: %w", err)
	}
	defer rows.Close()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.ItemID, &p.UserID, &p.ItemName, &p.TotalPrice, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
