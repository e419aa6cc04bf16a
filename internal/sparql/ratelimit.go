package sparql

import (
	"context"

	"golang.org/x/time/rate"
)

type rateLimitedService struct {
	next    Service
	limiter *rate.Limiter
}

// WithRateLimit wraps a Service with token-bucket admission control so a
// burst of resolver traffic cannot overload a shared endpoint. A qps of zero
// or less disables limiting and returns next unchanged.
func WithRateLimit(next Service, qps float64, burst int) Service {
	if qps <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	return &rateLimitedService{next: next, limiter: rate.NewLimiter(rate.Limit(qps), burst)}
}

func (s *rateLimitedService) ExecuteSelect(ctx context.Context, query, graphURI string) ([]Binding, error) {
	if !s.limiter.Allow() {
		rateLimitWaits.Inc()
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return s.next.ExecuteSelect(ctx, query, graphURI)
}

func (s *rateLimitedService) VerifyConnectivity(ctx context.Context) error {
	return s.next.VerifyConnectivity(ctx)
}

func (s *rateLimitedService) Endpoint() string { return s.next.Endpoint() }

func (s *rateLimitedService) Close() { s.next.Close() }
