package rates

import (
	"context"
	"go-currency-converter/domain"
)

// Source looks up the rate for converting one currency into another
type Source interface {
	Rate(ctx context.Context, from domain.Currency, to domain.Currency) (domain.Rate, error)
}
