package symbols

import (
	"context"
	"fmt"
	"go-currency-converter/domain"
	"sort"
)

// Registry the set of valid currency codes. It is never mutated after construction,
// so concurrent reads are safe.
type Registry struct {
	descriptions map[domain.Currency]string
	skipped      []domain.Currency
}

// NewRegistry builds a Registry from a symbol listing
func NewRegistry(listing Listing) *Registry {
	r := &Registry{
		descriptions: make(map[domain.Currency]string, len(listing.Symbols)),
		skipped:      append([]domain.Currency(nil), listing.Skipped...),
	}
	for _, s := range listing.Symbols {
		r.descriptions[s.Code] = s.Description
	}
	sort.Slice(r.skipped, func(i, j int) bool { return r.skipped[i] < r.skipped[j] })
	return r
}

// Load fetches the symbol listing once and builds the Registry from it.
func Load(ctx context.Context, s Service) (*Registry, error) {
	listing, err := s.Symbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	return NewRegistry(listing), nil
}

// Contains reports whether code is a known currency. Codes are case-sensitive.
func (r *Registry) Contains(code domain.Currency) bool {
	_, ok := r.descriptions[code]
	return ok
}

// Describe returns the description of a known currency
func (r *Registry) Describe(code domain.Currency) (string, bool) {
	d, ok := r.descriptions[code]
	return d, ok
}

// Symbols returns every known symbol ordered by code
func (r *Registry) Symbols() []domain.Symbol {
	symbols := make([]domain.Symbol, 0, len(r.descriptions))
	for code, description := range r.descriptions {
		symbols = append(symbols, domain.Symbol{Code: code, Description: description})
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i].Code < symbols[j].Code })
	return symbols
}

// Skipped returns the codes dropped while loading because their entries were malformed
func (r *Registry) Skipped() []domain.Currency {
	return append([]domain.Currency(nil), r.skipped...)
}

// Len number of known currencies
func (r *Registry) Len() int {
	return len(r.descriptions)
}

// IsValid reports whether code can be used in a conversion.
// Codes are never coerced; callers normalise case before asking.
func IsValid(code domain.Currency, r *Registry) bool {
	return r != nil && r.Contains(code)
}
