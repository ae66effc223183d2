package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"tariff-simulator/internal/observability/metrics"
	"tariff-simulator/internal/rating/domain"
	"tariff-simulator/internal/tariffs/domain"
)

// Service manages the tariff catalog.
type Service struct {
	repo tariffs.Repository
}

// NewService constructs the service.
func NewService(repo tariffs.Repository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("tariff service: nil repository")
	}
	return &Service{repo: repo}, nil
}

// ListTariffs returns every tariff in catalog order.
func (s *Service) ListTariffs(ctx context.Context) ([]rating.Tariff, error) {
	return s.repo.List(ctx)
}

// Get loads one tariff.
func (s *Service) Get(ctx context.Context, id string) (*rating.Tariff, error) {
	if strings.TrimSpace(id) == "" {
		return nil, tariffs.ErrEmptyTariffID
	}
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new tariff, assigning an id when absent.
func (s *Service) Create(ctx context.Context, tariff rating.Tariff) (rating.Tariff, error) {
	tariff = normalize(tariff)
	if tariff.ID == "" {
		tariff.ID = uuid.NewString()
	}
	if err := tariff.Validate(); err != nil {
		return rating.Tariff{}, err
	}
	if err := s.repo.Create(ctx, tariff); err != nil {
		return rating.Tariff{}, err
	}
	metrics.IncTariffMutation("create")
	return tariff, nil
}

// Update replaces an existing tariff.
func (s *Service) Update(ctx context.Context, id string, tariff rating.Tariff) (rating.Tariff, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return rating.Tariff{}, tariffs.ErrEmptyTariffID
	}
	tariff = normalize(tariff)
	tariff.ID = id
	if err := tariff.Validate(); err != nil {
		return rating.Tariff{}, err
	}
	if err := s.repo.Update(ctx, tariff); err != nil {
		return rating.Tariff{}, err
	}
	metrics.IncTariffMutation("update")
	return tariff, nil
}

// Delete removes a tariff.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return tariffs.ErrEmptyTariffID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.IncTariffMutation("delete")
	return nil
}

// Seed stores tariffs that are not in the catalog yet and returns how many
// were added. Existing ids are left untouched.
func (s *Service) Seed(ctx context.Context, seed []rating.Tariff) (int, error) {
	added := 0
	for _, tariff := range seed {
		if _, err := s.Create(ctx, tariff); err != nil {
			if errors.Is(err, tariffs.ErrDuplicateTariff) {
				continue
			}
			return added, err
		}
		added++
	}
	return added, nil
}

func normalize(tariff rating.Tariff) rating.Tariff {
	tariff.ID = strings.TrimSpace(tariff.ID)
	tariff.CompanyName = strings.TrimSpace(tariff.CompanyName)
	tariff.Promo = strings.TrimSpace(tariff.Promo)
	return tariff
}
