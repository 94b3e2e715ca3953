package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/sellegate/internal/common"
	"github.com/dmitrijs2005/sellegate/internal/dbx"
	"github.com/dmitrijs2005/sellegate/internal/server/auth"
	"github.com/dmitrijs2005/sellegate/internal/server/models"
	"github.com/dmitrijs2005/sellegate/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AssessmentCreate carries the payload for a new assessment.
type AssessmentCreate struct {
	ItemID  string
	Name    string
	Message string
	Price   float64
}

// AssessmentService runs the two-party approval protocol between an evaluator
// and an item's owner. Each assessment is a monotonic state machine: Pending
// until the owner accepts or rejects, then final. A fresh proposal after a
// rejection is a new record, so the negotiation history stays auditable.
type AssessmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewAssessmentService constructs an AssessmentService.
func NewAssessmentService(db *sql.DB, m repomanager.RepositoryManager) *AssessmentService {
	return &AssessmentService{db: db, repomanager: m}
}

// Submit files a new Pending assessment against an existing item. Only
// evaluators may submit, and never against their own items. The item itself
// is not touched until the owner decides.
func (s *AssessmentService) Submit(ctx context.Context, ident *auth.Identity, in AssessmentCreate) (*models.Assessment, error) {
	if !ident.IsEvaluator {
		return nil, common.ErrorForbidden
	}

	item, err := s.repomanager.Items(s.db).GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item.SellerID == ident.UserID {
		return nil, common.ErrorForbidden
	}

	assessment := &models.Assessment{
		ID:          uuid.NewString(),
		ItemID:      in.ItemID,
		EvaluatorID: ident.UserID,
		Name:        in.Name,
		Message:     in.Message,
		Price:       in.Price,
		State:       models.AssessmentPending,
	}

	return s.repomanager.Assessments(s.db).Create(ctx, assessment)
}

// ListMine returns the caller's own assessments. Evaluator-only.
func (s *AssessmentService) ListMine(ctx context.Context, ident *auth.Identity) ([]*models.Assessment, error) {
	if !ident.IsEvaluator {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Assessments(s.db).ListByEvaluator(ctx, ident.UserID)
}

// ListForItem returns every assessment filed against one of the caller's
// items, including resolved ones.
func (s *AssessmentService) ListForItem(ctx context.Context, ownerID, itemID string) ([]*models.Assessment, error) {
	item, err := s.repomanager.Items(s.db).GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.SellerID != ownerID {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Assessments(s.db).ListByItem(ctx, itemID)
}

// Accept approves a pending assessment. The assessment becomes Approved and
// the item records the delegation: state Approved and the assessment's
// evaluator. A later approval of another assessment overwrites the evaluator
// reference. Both writes happen in one transaction.
func (s *AssessmentService) Accept(ctx context.Context, ownerID, assessmentID string) error {
	return s.resolve(ctx, ownerID, assessmentID, models.AssessmentApproved)
}

// Reject declines a pending assessment. The assessment becomes Rejected and
// the item drops back to delegation state Rejected with no evaluator
// reference.
func (s *AssessmentService) Reject(ctx context.Context, ownerID, assessmentID string) error {
	return s.resolve(ctx, ownerID, assessmentID, models.AssessmentRejected)
}

func (s *AssessmentService) resolve(ctx context.Context, ownerID, assessmentID, state string) error {
	assessment, err := s.repomanager.Assessments(s.db).GetByID(ctx, assessmentID)
	if err != nil {
		return err
	}

	item, err := s.repomanager.Items(s.db).GetByID(ctx, assessment.ItemID)
	if err != nil {
		return err
	}
	if item.SellerID != ownerID {
		return common.ErrorForbidden
	}

	return withTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Assessments(tx).Resolve(ctx, assessmentID, state); err != nil {
			return err
		}

		var evaluatorID *string
		if state == models.AssessmentApproved {
			evaluatorID = &assessment.EvaluatorID
		}
		return s.repomanager.Items(tx).SetDelegation(ctx, item.ID, state, evaluatorID)
	})
}
