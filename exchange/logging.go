package exchange

import (
	"context"
	"github.com/go-kit/log"
	"go-currency-converter/domain"
	"time"
)

// loggingService decorates an exchange.Service with logging
type loggingService struct {
	logger log.Logger
	next   Service
}

// NewLoggingService returns a new instance of a logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Convert(ctx context.Context, request domain.Request, mode Mode) (ex domain.Exchanged, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "convert",
			"mode", mode,
			"amount", request.Amount,
			"from", request.From,
			"to", request.To,
			"rate", ex.Rate,
			"converted_amount", ex.Amount,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Convert(ctx, request, mode)
}
