package domain

import "errors"

// Failure kinds. Adapters wrap these with %w so callers can match with errors.Is.
var (
	// ErrRegistryUnavailable the symbol list could not be loaded. Fatal.
	ErrRegistryUnavailable = errors.New("symbol registry unavailable")

	// ErrStorageUnavailable the rate table cannot be reached. Disables table mode.
	ErrStorageUnavailable = errors.New("rate storage unavailable")

	ErrRateNotFound           = errors.New("rate not found")
	ErrServiceUnavailable     = errors.New("exchange rate service unavailable")
	ErrServiceResponseInvalid = errors.New("exchange rate service response invalid")
	ErrInvalidAmount          = errors.New("invalid amount")
)
