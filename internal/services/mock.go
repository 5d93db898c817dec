package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/dmitrijs2005/medxscan/internal/common"
	"github.com/dmitrijs2005/medxscan/internal/filex"
	"github.com/dmitrijs2005/medxscan/internal/models"
	"github.com/dmitrijs2005/medxscan/internal/repositories/analyses"
	"github.com/google/uuid"
)

// conditionPolicy holds the knobs of the synthetic result generator in one
// place. The numbers are demo behavior, not medicine.
type conditionPolicy struct {
	// normalChance is the probability a scan comes back clean.
	normalChance float64
	// maxAbnormal bounds how many distinct non-normal labels one scan gets.
	maxAbnormal int
}

var defaultConditionPolicy = conditionPolicy{normalChance: 0.7, maxAbnormal: 3}

// MockSource simulates the inference backend for demo/offline use. Results
// are synthesized with a weighted random policy and persisted through the
// analyses repository so they behave exactly like remote ones afterwards.
type MockSource struct {
	repo   analyses.Repository
	policy conditionPolicy
	now    func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewMockSource(repo analyses.Repository) *MockSource {
	return &MockSource{
		repo:   repo,
		policy: defaultConditionPolicy,
		now:    time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Submit validates the image, synthesizes a plausible condition list and
// persists the new record. Symptoms stay empty when the user entered none.
func (s *MockSource) Submit(ctx context.Context, userID string, req SubmitRequest) (*models.Analysis, error) {
	if err := validateSubmit(req); err != nil {
		return nil, err
	}

	a := &models.Analysis{
		ID:                 uuid.NewString(),
		UserID:             userID,
		ImageRef:           req.ImagePath,
		XRayType:           req.XRayType,
		BoneRegion:         req.BoneRegion,
		Symptoms:           req.Symptoms,
		DetectedConditions: s.randomConditions(req.XRayType),
		CreatedAt:          s.now().UTC(),
		ReportGenerated:    true,
	}

	if err := s.repo.Add(ctx, a); err != nil {
		return nil, fmt.Errorf("saving analysis: %w", err)
	}
	return a, nil
}

// List returns the user's history, lazily seeding three sample records on
// first access so a fresh demo install is never empty.
func (s *MockSource) List(ctx context.Context, userID string) ([]models.Analysis, error) {
	n, err := s.repo.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if err := s.seed(ctx, userID); err != nil {
			return nil, fmt.Errorf("seeding sample analyses: %w", err)
		}
	}
	return s.repo.List(ctx, userID)
}

func (s *MockSource) Get(ctx context.Context, userID, id string) (*models.Analysis, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// randomConditions rolls the weighted policy: normalChance of a clean scan,
// otherwise 1..maxAbnormal distinct non-normal labels drawn without
// replacement from the vocabulary for the x-ray type.
func (s *MockSource) randomConditions(t models.XRayType) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rnd.Float64() < s.policy.normalChance {
		return []string{models.ConditionNormal}
	}

	vocab := models.ConditionsFor(t)
	abnormal := make([]string, 0, len(vocab)-1)
	for _, c := range vocab {
		if c != models.ConditionNormal {
			abnormal = append(abnormal, c)
		}
	}
	s.rnd.Shuffle(len(abnormal), func(i, j int) {
		abnormal[i], abnormal[j] = abnormal[j], abnormal[i]
	})

	n := 1 + s.rnd.Intn(s.policy.maxAbnormal)
	if n > len(abnormal) {
		n = len(abnormal)
	}
	return abnormal[:n]
}

// seed inserts the three deterministic sample records, oldest first so the
// read order comes out newest first.
func (s *MockSource) seed(ctx context.Context, userID string) error {
	now := s.now().UTC()
	samples := []models.Analysis{
		{
			ImageRef:           "/placeholder.svg",
			XRayType:           models.XRayTypeChest,
			DetectedConditions: []string{models.ConditionNormal},
			CreatedAt:          now.Add(-10 * 24 * time.Hour),
		},
		{
			ImageRef:           "/placeholder.svg",
			XRayType:           models.XRayTypeChest,
			Symptoms:           "Shortness of breath, fatigue",
			DetectedConditions: []string{"COVID-19"},
			CreatedAt:          now.Add(-5 * 24 * time.Hour),
		},
		{
			ImageRef:           "/placeholder.svg",
			XRayType:           models.XRayTypeChest,
			Symptoms:           "Persistent cough, mild fever",
			DetectedConditions: []string{"Pneumonia"},
			CreatedAt:          now.Add(-2 * 24 * time.Hour),
		},
	}

	for i := range samples {
		samples[i].ID = uuid.NewString()
		samples[i].UserID = userID
		samples[i].ReportGenerated = true
		if err := s.repo.Add(ctx, &samples[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateSubmit(req SubmitRequest) error {
	if !filex.IsImageFile(req.ImagePath) {
		return fmt.Errorf("%w: %s", common.ErrUnsupportedImage, req.ImagePath)
	}
	return nil
}
