package symbols

import (
	"context"
	"github.com/go-kit/log"
	"time"
)

// loggingService decorates a symbols.Service with logging
type loggingService struct {
	next   Service
	logger log.Logger
}

// NewLoggingService return a new logging service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Symbols(ctx context.Context) (listing Listing, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "symbols",
			"count", len(listing.Symbols),
			"skipped", len(listing.Skipped),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Symbols(ctx)
}
