package rates

import (
	"context"
	"github.com/go-kit/log"
	"go-currency-converter/domain"
	"time"
)

// loggingSource decorates a Source with logging
type loggingSource struct {
	next   Source
	logger log.Logger
}

// NewLoggingSource returns a new logging Source
func NewLoggingSource(logger log.Logger, s Source) Source {
	return &loggingSource{
		next:   s,
		logger: logger,
	}
}

func (s *loggingSource) Rate(ctx context.Context, from domain.Currency, to domain.Currency) (rate domain.Rate, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "rate",
			"from", from,
			"to", to,
			"rate", rate,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Rate(ctx, from, to)
}
