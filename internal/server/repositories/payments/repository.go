// Package payments declares the repository contract for the append-only
// payment ledger.
package payments

import (
	"context"

	"github.com/dmitrijs2005/sellegate/internal/server/models"
)

type Repository interface {
	// Create appends a payment record and populates its CreatedAt. Payments
	// are never updated or deleted.
	Create(ctx context.Context, payment *models.Payment) (*models.Payment, error)

	// ListByUser returns the buyer's payments in creation order.
	ListByUser(ctx context.Context, userID string) ([]*models.Payment, error)
}
