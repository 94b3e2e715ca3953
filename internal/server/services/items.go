package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/sellegate/internal/common"
	"github.com/dmitrijs2005/sellegate/internal/server/auth"
	"github.com/dmitrijs2005/sellegate/internal/server/models"
	"github.com/dmitrijs2005/sellegate/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ItemCreate carries the payload for a new listing. The delegation state may
// be pre-declared by the creator; an empty value means Independent.
type ItemCreate struct {
	Name            string
	Description     string
	Price           float64
	ImgURL          *string
	DelegationState string
}

// ItemService is the item ledger: it owns item records and enforces
// seller-only mutation. Delegation transitions are driven by the assessment
// workflow, the sold flip by the purchase engine.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewItemService constructs an ItemService.
func NewItemService(db *sql.DB, m repomanager.RepositoryManager) *ItemService {
	return &ItemService{db: db, repomanager: m}
}

// Create inserts a new listing owned by sellerID. Image handling is deferred:
// any submitted imgUrl is accepted but persisted as null.
func (s *ItemService) Create(ctx context.Context, sellerID string, in ItemCreate) (*models.Item, error) {
	state := in.DelegationState
	if state == "" {
		state = models.DelegationIndependent
	}

	item := &models.Item{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		ImgURL:          nil,
		SellerID:        sellerID,
		DelegationState: state,
	}

	return s.repomanager.Items(s.db).Create(ctx, item)
}

// Get returns a single item with its seller name projected.
func (s *ItemService) Get(ctx context.Context, itemID string) (*models.Item, error) {
	return s.repomanager.Items(s.db).GetByID(ctx, itemID)
}

// Update merges the supplied fields into an item. Only the seller may update,
// and a sold item is frozen.
func (s *ItemService) Update(ctx context.Context, itemID, callerID string, upd models.ItemUpdate) (*models.Item, error) {
	repo := s.repomanager.Items(s.db)

	item, err := repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.SellerID != callerID {
		return nil, common.ErrorForbidden
	}
	if item.IsSold {
		return nil, common.ErrorItemAlreadySold
	}

	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.Price != nil {
		item.Price = *upd.Price
	}
	if upd.IsVisible != nil {
		item.IsVisible = *upd.IsVisible
	}
	// imgUrl accepts only null while image handling is deferred.
	item.ImgURL = nil

	if err := repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item. Only the seller may delete, and sold items are kept
// because payments reference them.
func (s *ItemService) Delete(ctx context.Context, itemID, callerID string) error {
	repo := s.repomanager.Items(s.db)

	item, err := repo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.SellerID != callerID {
		return common.ErrorForbidden
	}
	if item.IsSold {
		return common.ErrorItemAlreadySold
	}

	return repo.Delete(ctx, itemID)
}

// ListAll returns every item. Public.
func (s *ItemService) ListAll(ctx context.Context) ([]*models.Item, error) {
	return s.repomanager.Items(s.db).ListAll(ctx)
}

// Explore returns items offered by other sellers.
func (s *ItemService) Explore(ctx context.Context, callerID string) ([]*models.Item, error) {
	return s.repomanager.Items(s.db).ListExcludingSeller(ctx, callerID)
}

// Mine returns the caller's own listings.
func (s *ItemService) Mine(ctx context.Context, callerID string) ([]*models.Item, error) {
	return s.repomanager.Items(s.db).ListBySeller(ctx, callerID)
}

// MineSold returns the caller's listings that have been sold.
func (s *ItemService) MineSold(ctx context.Context, callerID string) ([]*models.Item, error) {
	return s.repomanager.Items(s.db).ListSoldBySeller(ctx, callerID)
}

// Search returns items matching the query in name or description. Public.
func (s *ItemService) Search(ctx context.Context, query string) ([]*models.Item, error) {
	return s.repomanager.Items(s.db).Search(ctx, query)
}

// Delegate marks the caller's item as awaiting evaluation so evaluators can
// find it. Only the seller may delegate, and a sold item is frozen.
func (s *ItemService) Delegate(ctx context.Context, itemID, callerID string) (*models.Item, error) {
	repo := s.repomanager.Items(s.db)

	item, err := repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.SellerID != callerID {
		return nil, common.ErrorForbidden
	}
	if item.IsSold {
		return nil, common.ErrorItemAlreadySold
	}

	if err := repo.SetDelegation(ctx, itemID, models.DelegationPending, nil); err != nil {
		return nil, err
	}
	item.DelegationState = models.DelegationPending
	item.EvaluatorID = nil
	return item, nil
}

// ListByDelegationState lets evaluators browse items by delegation state,
// typically Pending ones awaiting an assessment.
func (s *ItemService) ListByDelegationState(ctx context.Context, ident *auth.Identity, state string) ([]*models.Item, error) {
	if !ident.IsEvaluator {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Items(s.db).ListByDelegationState(ctx, state)
}
