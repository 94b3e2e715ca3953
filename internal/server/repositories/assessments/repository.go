// Package assessments declares the repository contract for evaluator
// assessment records.
package assessments

import (
	"context"

	"github.com/dmitrijs2005/sellegate/internal/server/models"
)

type Repository interface {
	// Create inserts a new assessment in the Pending state and populates its
	// CreatedAt.
	Create(ctx context.Context, assessment *models.Assessment) (*models.Assessment, error)

	// GetByID returns the assessment with the given id or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Assessment, error)

	// ListByEvaluator returns all assessments submitted by the evaluator in
	// creation order.
	ListByEvaluator(ctx context.Context, evaluatorID string) ([]*models.Assessment, error)

	// ListByItem returns all assessments referencing the item in creation order.
	ListByItem(ctx context.Context, itemID string) ([]*models.Assessment, error)

	// Resolve moves a Pending assessment into the given terminal state. If the
	// assessment is already terminal the guard fails and
	// common.ErrorAssessmentResolved is returned.
	Resolve(ctx context.Context, id string, state string) error
}
