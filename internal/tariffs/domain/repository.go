package tariffs

import (
	"context"
	"errors"

	"tariff-simulator/internal/rating/domain"
)

var (
	// ErrTariffNotFound is returned when a tariff does not exist.
	ErrTariffNotFound = errors.New("tariffs: not found")
	// ErrDuplicateTariff is returned when creating a tariff whose id exists.
	ErrDuplicateTariff = errors.New("tariffs: duplicate id")
	// ErrEmptyTariffID is returned when an update or delete names no tariff.
	ErrEmptyTariffID = errors.New("tariffs: empty id")
)

// Repository persists tariffs. List orders by company name, then id.
type Repository interface {
	List(ctx context.Context) ([]rating.Tariff, error)
	Get(ctx context.Context, id string) (*rating.Tariff, error)
	Create(ctx context.Context, tariff rating.Tariff) error
	Update(ctx context.Context, tariff rating.Tariff) error
	Delete(ctx context.Context, id string) error
}
