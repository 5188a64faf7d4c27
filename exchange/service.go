package exchange

import (
	"context"
	"errors"
	"fmt"
	"go-currency-converter/domain"
	"math"
)

// Service interface for converting an amount from one currency to another
type Service interface {
	Convert(ctx context.Context, request domain.Request, mode Mode) (domain.Exchanged, error)
}

// service stateless conversion engine
type service struct{}

// NewService constructs a valid Service
func NewService() Service {
	return &service{}
}

// Convert looks up the rate for the request using the source carried by mode and scales the amount.
// The result is never partial: on any error the zero Exchanged is returned.
func (s *service) Convert(ctx context.Context, request domain.Request, mode Mode) (domain.Exchanged, error) {
	amount := float64(request.Amount)
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return domain.Exchanged{}, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, request.Amount)
	}
	if mode == nil || mode.source() == nil {
		return domain.Exchanged{}, errors.New("convert: no rate source for mode")
	}

	rate, err := mode.source().Rate(ctx, request.From, request.To)
	if err != nil {
		return domain.Exchanged{}, fmt.Errorf("convert %v->%v by %v: %w", request.From, request.To, mode, err)
	}

	converted := float64(rate) * amount
	if math.IsInf(converted, 0) || math.IsNaN(converted) {
		return domain.Exchanged{}, fmt.Errorf("%w: %v * %v is out of range", domain.ErrInvalidAmount, request.Amount, rate)
	}

	result := domain.Exchanged{
		Rate:   rate,
		Amount: domain.Amount(converted),
	}

	return result, nil
}
