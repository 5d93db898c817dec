package users

import (
	"context"

	"github.com/dmitrijs2005/medxscan/internal/models"
)

// Repository describes persistence for locally registered users.
type Repository interface {
	// Create inserts a new user.
	Create(ctx context.Context, u *models.User) error

	// GetByEmail returns the user with the given email or common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Update rewrites the user's profile fields in place.
	Update(ctx context.Context, u *models.User) error
}
