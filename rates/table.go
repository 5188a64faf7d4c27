package rates

import (
	"context"
	"errors"
	"fmt"
	"go-currency-converter/domain"
)

// RateStore reads fixed rates from the base currency.
// Implementations return domain.ErrRateNotFound when no row matches the code.
type RateStore interface {
	ExchangeRate(ctx context.Context, code domain.Currency) (domain.Rate, error)
}

// Table looks rates up in a local table anchored on domain.BaseCurrency
type Table struct {
	store RateStore
}

// NewTable constructs a Table reading from store
func NewTable(store RateStore) *Table {
	return &Table{store: store}
}

// Rate returns the stored rate for to. from is ignored: every row is a rate from the base currency.
func (t *Table) Rate(ctx context.Context, _ domain.Currency, to domain.Currency) (domain.Rate, error) {
	rate, err := t.store.ExchangeRate(ctx, to)
	if errors.Is(err, domain.ErrRateNotFound) {
		return 0, fmt.Errorf("table lookup [%v]: %w", to, err)
	}
	if err != nil {
		return 0, fmt.Errorf("table lookup [%v]: %w: %v", to, domain.ErrStorageUnavailable, err)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("table lookup [%v]: %w: non-positive rate %v", to, domain.ErrRateNotFound, rate)
	}
	return rate, nil
}
