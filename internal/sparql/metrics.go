package sparql

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sparql_client_queries_total",
		Help: "SPARQL queries executed, labeled by outcome.",
	}, []string{"outcome"})

	queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sparql_client_query_duration_seconds",
		Help:    "Wall time of SPARQL query round trips.",
		Buckets: prometheus.DefBuckets,
	})

	queryRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sparql_client_retries_total",
		Help: "Query attempts repeated by the retry decorator.",
	})

	rateLimitWaits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sparql_client_ratelimit_waits_total",
		Help: "Queries delayed by the rate-limit decorator.",
	})
)

// classifyOutcome buckets an execution result for the queries_total label.
func classifyOutcome(err error) string {
	if err == nil {
		return "success"
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		switch {
		case qe.Status == 0:
			return "network"
		case qe.Status >= 400:
			return "http_error"
		default:
			return "decode"
		}
	}
	return "error"
}
