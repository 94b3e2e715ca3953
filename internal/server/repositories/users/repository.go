// Package users declares the repository contract for marketplace accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/sellegate/internal/server/models"
)

type Repository interface {
	// Create inserts a new user. Duplicate email or username map to
	// common.ErrorEmailTaken / common.ErrorUsernameTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Update persists the mutable profile fields (username, email, bio).
	// IsEvaluator and PasswordHash are never touched by Update.
	Update(ctx context.Context, user *models.User) error
}
