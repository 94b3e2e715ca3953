// Package items declares the repository contract for the item ledger.
package items

import (
	"context"

	"github.com/dmitrijs2005/sellegate/internal/server/models"
)

type Repository interface {
	// Create inserts a new item and populates its CreatedAt.
	Create(ctx context.Context, item *models.Item) (*models.Item, error)

	// GetByID returns the item with the given id (seller name projected) or
	// common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Item, error)

	// Update persists the mutable listing fields (name, description, price,
	// img_url, is_visible). SellerID, CreatedAt, IsSold, DelegationState and
	// EvaluatorID are never touched by Update.
	Update(ctx context.Context, item *models.Item) error

	// Delete removes an item record.
	Delete(ctx context.Context, id string) error

	// Listings. All project the seller's username and return rows in stable
	// insertion order.
	ListAll(ctx context.Context) ([]*models.Item, error)
	ListExcludingSeller(ctx context.Context, sellerID string) ([]*models.Item, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*models.Item, error)
	ListSoldBySeller(ctx context.Context, sellerID string) ([]*models.Item, error)
	ListByDelegationState(ctx context.Context, state string) ([]*models.Item, error)

	// Search returns items whose name or description contains the query,
	// case-insensitively.
	Search(ctx context.Context, query string) ([]*models.Item, error)

	// MarkSold flips is_sold exactly once. If the item is already sold the
	// guard fails and common.ErrorItemAlreadySold is returned; a vanished row
	// maps to common.ErrorNotFound by the caller's preceding read.
	MarkSold(ctx context.Context, id string) error

	// SetDelegation updates the delegation state and evaluator reference.
	// evaluatorID may be nil to clear the reference.
	SetDelegation(ctx context.Context, id string, state string, evaluatorID *string) error
}
