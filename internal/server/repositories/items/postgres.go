// Package items provides the PostgreSQL-backed item ledger: listing storage,
// seller projections, and the guarded state flips the purchase and
// assessment flows rely on.
package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sellegate/internal/common"
	"github.com/dmitrijs2005/sellegate/internal/dbx"
	"github.com/dmitrijs2005/sellegate/internal/server/models"
)

// PostgresRepository implements item storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectClause joins users so every read carries the seller's username
// without storing it on the item row.
const selectClause = `
	SELECT i.id, i.name, i.description, i.price, i.img_url, i.seller_id,
	       u.username, i.created_at, i.is_sold, i.is_visible,
	       i.delegation_state, i.evaluator_id
	FROM items i
	JOIN users u ON u.id = i.seller_id
`

func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query := `
		INSERT INTO items (id, name, description, price, img_url, seller_id, delegation_state)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.Name, item.Description, item.Price, item.ImgURL,
		item.SellerID, item.DelegationState).
		Scan(&item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	item.IsVisible = true
	return item, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	query := selectClause + ` WHERE i.id = $1`

	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.Price, &item.ImgURL,
		&item.SellerID, &item.SellerName, &item.CreatedAt, &item.IsSold,
		&item.IsVisible, &item.DelegationState, &item.EvaluatorID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Update(ctx context.Context, item *models.Item) error {
	query := `
		UPDATE items
		SET name = $2, description = $3, price = $4, img_url = $5, is_visible = $6
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Description, item.Price, item.ImgURL, item.IsVisible)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM items WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Item, error) {
	query := selectClause + ` ORDER BY i.created_at, i.id`
	return r.list(ctx, query)
}

func (r *PostgresRepository) ListExcludingSeller(ctx context.Context, sellerID string) ([]*models.Item, error) {
	query := selectClause + ` WHERE i.seller_id <> $1 ORDER BY i.created_at, i.id`
	return r.list(ctx, query, sellerID)
}

func (r *PostgresRepository) ListBySeller(ctx context.Context, sellerID string) ([]*models.Item, error) {
	query := selectClause + ` WHERE i.seller_id = $1 ORDER BY i.created_at, i.id`
	return r.list(ctx, query, sellerID)
}

func (r *PostgresRepository) ListSoldBySeller(ctx context.Context, sellerID string) ([]*models.Item, error) {
	query := selectClause + ` WHERE i.seller_id = $1 AND i.is_sold ORDER BY i.created_at, i.id`
	return r.list(ctx, query, sellerID)
}

func (r *PostgresRepository) ListByDelegationState(ctx context.Context, state string) ([]*models.Item, error) {
	query := selectClause + ` WHERE i.delegation_state = $1 ORDER BY i.created_at, i.id`
	return r.list(ctx, query, state)
}

func (r *PostgresRepository) Search(ctx context.Context, q string) ([]*models.Item, error) {
	query := selectClause + ` WHERE i.name ILIKE '%' || $1 || '%' OR i.description ILIKE '%' || $1 || '%' ORDER BY i.created_at, i.id`
	return r.list(ctx, query, q)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	var result []*models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Price, &item.ImgURL,
			&item.SellerID, &item.SellerName, &item.CreatedAt, &item.IsSold,
			&item.IsVisible, &item.DelegationState, &item.EvaluatorID,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkSold is the check-then-act guard behind the purchase flow: the WHERE
// clause makes the flip one-way, so of any number of concurrent buyers only
// one sees a row affected.
func (r *PostgresRepository) MarkSold(ctx context.Context, id string) error {
	query := `
		UPDATE items
		SET is_sold = true, is_visible = false
		WHERE id = $1 AND is_sold = false
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorItemAlreadySold
	}
	return nil
}

func (r *PostgresRepository) SetDelegation(ctx context.Context, id string, state string, evaluatorID *string) error {
	query := `
		UPDATE items
		SET delegation_state = $2, evaluator_id = $3
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, state, evaluatorID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
