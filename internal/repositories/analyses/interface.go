package analyses

import (
	"context"

	"github.com/dmitrijs2005/medxscan/internal/models"
)

// Repository describes persistence for Analysis records. Records are
// append-only: there is no update or delete.
type Repository interface {
	// Add persists a fully populated analysis.
	Add(ctx context.Context, a *models.Analysis) error

	// List returns the user's analyses, newest first. Records owned by
	// other users are never returned.
	List(ctx context.Context, userID string) ([]models.Analysis, error)

	// GetByID returns one analysis if it exists and belongs to userID;
	// otherwise common.ErrNotFound.
	GetByID(ctx context.Context, id, userID string) (*models.Analysis, error)

	// CountForUser returns the number of records owned by userID.
	CountForUser(ctx context.Context, userID string) (int, error)
}
