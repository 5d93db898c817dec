package services

import (
	"context"

	"github.com/dmitrijs2005/medxscan/internal/models"
)

// SubmitRequest carries the inputs for one analysis submission.
type SubmitRequest struct {
	ImagePath  string
	XRayType   models.XRayType
	BoneRegion string
	Symptoms   string
}

// AnalysisSource is the single data-source seam between the views and
// "where analyses come from". Two implementations exist: MockSource (local
// generator) and RemoteSource (inference API); the composition root picks
// one from config, so call sites never branch on mode.
type AnalysisSource interface {
	// Submit creates one analysis for the user from the given image.
	Submit(ctx context.Context, userID string, req SubmitRequest) (*models.Analysis, error)

	// List returns the user's analysis history, newest first.
	List(ctx context.Context, userID string) ([]models.Analysis, error)

	// Get returns one of the user's analyses or common.ErrNotFound.
	Get(ctx context.Context, userID, id string) (*models.Analysis, error)
}
