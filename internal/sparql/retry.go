package sparql

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds the retry decorator.
type RetryPolicy struct {
	// MaxRetries is the number of additional attempts after the first.
	// Default: 3.
	MaxRetries uint64

	// InitialBackoff is the wait before the first retry. Default: 500ms.
	InitialBackoff time.Duration

	// MaxBackoff caps the exponential growth of the wait. Default: 10s.
	MaxBackoff time.Duration
}

func (p *RetryPolicy) applyDefaults() {
	if p.MaxRetries == 0 {
		p.MaxRetries = 3
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = 500 * time.Millisecond
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = 10 * time.Second
	}
}

type retryingService struct {
	next   Service
	policy RetryPolicy
}

// WithRetry wraps a Service with exponential-backoff retries on retryable
// query failures. Non-retryable failures and non-QueryError failures pass
// through immediately; an exhausted budget surfaces the last error unchanged,
// so exhausted retries look like any other query failure to callers.
func WithRetry(next Service, policy RetryPolicy) Service {
	policy.applyDefaults()
	return &retryingService{next: next, policy: policy}
}

func (s *retryingService) ExecuteSelect(ctx context.Context, query, graphURI string) ([]Binding, error) {
	var rows []Binding

	attempt := 0
	op := func() error {
		attempt++
		var err error
		rows, err = s.next.ExecuteSelect(ctx, query, graphURI)
		if err == nil {
			return nil
		}
		var qe *QueryError
		if errors.As(err, &qe) && qe.Retryable() {
			if attempt <= int(s.policy.MaxRetries) {
				queryRetries.Inc()
			}
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.policy.InitialBackoff
	b.MaxInterval = s.policy.MaxBackoff
	b.MaxElapsedTime = 0

	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, s.policy.MaxRetries), ctx)); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *retryingService) VerifyConnectivity(ctx context.Context) error {
	return s.next.VerifyConnectivity(ctx)
}

func (s *retryingService) Endpoint() string { return s.next.Endpoint() }

func (s *retryingService) Close() { s.next.Close() }
