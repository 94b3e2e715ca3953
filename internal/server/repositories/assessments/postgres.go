// Package assessments provides PostgreSQL-backed storage for the assessment
// workflow. Terminal states are enforced with a guarded update so a record
// resolves at most once.
package assessments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sellegate/internal/common"
	"github.com/dmitrijs2005/sellegate/internal/dbx"
	"github.com/dmitrijs2005/sellegate/internal/server/models"
)

// PostgresRepository implements assessment storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, assessment *models.Assessment) (*models.Assessment, error) {
	query := `
		INSERT INTO assessments (id, item_id, evaluator_id, name, message, price, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		assessment.ID, assessment.ItemID, assessment.EvaluatorID,
		assessment.Name, assessment.Message, assessment.Price, assessment.State).
		Scan(&assessment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return assessment, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	query := `
		SELECT id, item_id, evaluator_id, name, message, price, state, created_at
		FROM assessments
		WHERE id = $1
	`
	a := &models.Assessment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.ItemID, &a.EvaluatorID, &a.Name, &a.Message, &a.Price, &a.State, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) ListByEvaluator(ctx context.Context, evaluatorID string) ([]*models.Assessment, error) {
	query := `
		SELECT id, item_id, evaluator_id, name, message, price, state, created_at
		FROM assessments
		WHERE evaluator_id = $1
		ORDER BY created_at, id
	`
	return r.list(ctx, query, evaluatorID)
}

func (r *PostgresRepository) ListByItem(ctx context.Context, itemID string) ([]*models.Assessment, error) {
	query := `
		SELECT id, item_id, evaluator_id, name, message, price, state, created_at
		FROM assessments
		WHERE item_id = $1
		ORDER BY created_at, id
	`
	return r.list(ctx, query, itemID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Assessment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select assessments: %w", err)
	}
	defer rows.Close()

	var result []*models.Assessment
	for rows.Next() {
		var a models.Assessment
		if err := rows.Scan(
			&a.ID, &a.ItemID, &a.EvaluatorID, &a.Name, &a.Message, &a.Price, &a.State, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Resolve keeps the state machine monotonic: only a Pending row can move, so
// racing accept/reject calls cannot both land.
func (r *PostgresRepository) Resolve(ctx context.Context, id string, state string) error {
	query := `
		UPDATE assessments
		SET state = $2
		WHERE id = $1 AND state = $3
	`
	res, err := r.db.ExecContext(ctx, query, id, state, models.AssessmentPending)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorAssessmentResolved
	}
	return nil
}
