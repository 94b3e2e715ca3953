package models

import "time"

// Payment is an immutable record of a completed purchase. ItemName and
// TotalPrice are snapshots taken at purchase time so later item edits do not
// rewrite history.
type Payment struct {
	ID         string
	ItemID     string
	UserID     string
	ItemName   string
	TotalPrice float64
	CreatedAt  time.Time
}
