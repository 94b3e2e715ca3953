package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/sellegate/internal/common"
	"github.com/dmitrijs2005/sellegate/internal/dbx"
	"github.com/dmitrijs2005/sellegate/internal/server/models"
	"github.com/dmitrijs2005/sellegate/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PurchaseService is the purchase engine: it executes buys and exposes the
// payment ledger. The sold flip and the payment append happen in one
// transaction, so of concurrent buyers exactly one succeeds and no payment
// exists without its sale.
type PurchaseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewPurchaseService constructs a PurchaseService.
func NewPurchaseService(db *sql.DB, m repomanager.RepositoryManager) *PurchaseService {
	return &PurchaseService{db: db, repomanager: m}
}

// Buy sells an item to buyerID and returns the resulting payment. The
// payment snapshots the item's name and price at the moment of purchase, so
// later edits cannot rewrite purchase history. Losing a race for the last
// guard surfaces as ErrorItemAlreadySold, same as arriving late.
func (s *PurchaseService) Buy(ctx context.Context, buyerID, itemID string) (*models.Payment, error) {
	item, err := s.repomanager.Items(s.db).GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.IsSold {
		return nil, common.ErrorItemAlreadySold
	}
	if !item.IsVisible {
		return nil, common.ErrorItemHidden
	}
	if item.SellerID == buyerID {
		return nil, common.ErrorForbidden
	}

	payment := &models.Payment{
		ID:         uuid.NewString(),
		ItemID:     item.ID,
		UserID:     buyerID,
		ItemName:   item.Name,
		TotalPrice: item.Price,
	}

	if err := withTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Items(tx).MarkSold(ctx, itemID); err != nil {
			return err
		}
		var createErr error
		payment, createErr = s.repomanager.Payments(tx).Create(ctx, payment)
		return createErr
	}); err != nil {
		return nil, err
	}

	return payment, nil
}

// Payments returns the caller's purchase history in creation order.
func (s *PurchaseService) Payments(ctx context.Context, userID string) ([]*models.Payment, error) {
	return s.repomanager.Payments(s.db).ListByUser(ctx, userID)
}
