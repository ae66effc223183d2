package rating

import "errors"

var (
	// ErrNoTariffs is returned when there is nothing to rate against.
	ErrNoTariffs = errors.New("rating: no tariffs")
	// ErrEmptyCompanyName is returned when a tariff has no company name.
	ErrEmptyCompanyName = errors.New("rating: empty company name")
	// ErrNegativePrice is returned when a tariff price or fee is negative.
	ErrNegativePrice = errors.New("rating: negative price")
	// ErrInvalidTaxRate is returned when a tax rate is outside [0, 1).
	ErrInvalidTaxRate = errors.New("rating: tax rate out of range")
)

// NoTariffsError reports an empty tariff list handed to the engine.
type NoTariffsError struct{}

func (*NoTariffsError) Error() string { return "no tariffs available to rate" }

func (*NoTariffsError) Unwrap() error { return ErrNoTariffs }
