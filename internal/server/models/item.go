package models

import "time"

// Delegation states of an item. Independent is the default for items never
// submitted for evaluation; the other three mirror the outcome of the
// assessment workflow.
const (
	DelegationIndependent = "Independent"
	DelegationPending     = "Pending"
	DelegationApproved    = "Approved"
	DelegationRejected    = "Rejected"
)

// Item is a listing offered for sale. SellerID and CreatedAt never change
// after creation; IsSold is flipped exactly once by a purchase. EvaluatorID
// is non-nil only while DelegationState is Approved.
type Item struct {
	ID              string
	Name            string
	Description     string
	Price           float64
	ImgURL          *string
	SellerID        string
	SellerName      string // projected from users on reads, not stored
	CreatedAt       time.Time
	IsSold          bool
	IsVisible       bool
	DelegationState string
	EvaluatorID     *string
}

// ItemUpdate carries a partial update to an item. Nil fields are left
// untouched by the merge.
type ItemUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	ImgURL      *string
	IsVisible   *bool
}
