package models

import "time"

// Assessment states. Pending is initial; Approved and Rejected are terminal
// and never revert.
const (
	AssessmentPending  = "Pending"
	AssessmentApproved = "Approved"
	AssessmentRejected = "Rejected"
)

// Assessment is an evaluator's price/condition proposal for an item it does
// not own. Re-submission after rejection produces a new record; resolved
// records are kept for audit.
type Assessment struct {
	ID          string
	ItemID      string
	EvaluatorID string
	Name        string
	Message     string
	Price       float64
	State       string
	CreatedAt   time.Time
}
