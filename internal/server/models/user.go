// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a marketplace account. IsEvaluator is fixed at registration and
// authorizes assessment submission on items the user does not own.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	IsEvaluator  bool
	Bio          string
	CreatedAt    time.Time
}
