package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/medxscan/internal/api"
	"github.com/dmitrijs2005/medxscan/internal/models"
	"github.com/dmitrijs2005/medxscan/internal/repositories/analyses"
	"github.com/google/uuid"
)

// RemoteSource feeds submissions through the inference API and keeps the
// resulting analyses in the same local repository the mock uses, so history
// reads are identical across modes.
type RemoteSource struct {
	api  api.Service
	repo analyses.Repository
	now  func() time.Time
}

func NewRemoteSource(apiService api.Service, repo analyses.Repository) *RemoteSource {
	return &RemoteSource{api: apiService, repo: repo, now: time.Now}
}

// Submit uploads the image for prediction and derives an Analysis from the
// response. Transport errors propagate; unsuccessful envelopes become plain
// returned errors for the caller to display.
func (s *RemoteSource) Submit(ctx context.Context, userID string, req SubmitRequest) (*models.Analysis, error) {
	if err := validateSubmit(req); err != nil {
		return nil, err
	}

	resp, err := s.api.Predict(ctx, req.ImagePath, req.Symptoms)
	if err != nil {
		return nil, err
	}
	if !resp.Success || resp.Data == nil {
		return nil, fmt.Errorf("prediction failed: %s", envelopeError(resp.Error))
	}

	a := &models.Analysis{
		ID:                 uuid.NewString(),
		UserID:             userID,
		ImageRef:           req.ImagePath,
		XRayType:           req.XRayType,
		BoneRegion:         req.BoneRegion,
		Symptoms:           req.Symptoms,
		DetectedConditions: []string{resp.Data.Prediction},
		CreatedAt:          s.now().UTC(),
		ReportRef:          resp.Data.ReportPath,
		ReportGenerated:    resp.Data.ReportPath != "",
	}

	if err := s.repo.Add(ctx, a); err != nil {
		return nil, fmt.Errorf("saving analysis: %w", err)
	}
	return a, nil
}

func (s *RemoteSource) List(ctx context.Context, userID string) ([]models.Analysis, error) {
	return s.repo.List(ctx, userID)
}

func (s *RemoteSource) Get(ctx context.Context, userID, id string) (*models.Analysis, error) {
	return s.repo.GetByID(ctx, id, userID)
}

func envelopeError(msg string) string {
	if msg == "" {
		return "no error message"
	}
	return msg
}
