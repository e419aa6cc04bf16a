package sparql

import (
	"fmt"
	"net/http"
)

// QueryError wraps every failure to execute a query: network errors,
// non-success HTTP statuses, and malformed response bodies. It is the only
// error type the endpoint layer produces, which lets the resolvers treat
// "execution failed" uniformly while the retry decorator distinguishes
// transient failures via Retryable.
type QueryError struct {
	// Endpoint is the endpoint URL the query was sent to.
	Endpoint string
	// Graph is the named graph the query targeted, when known.
	Graph string
	// Status is the HTTP status code, or 0 when no response was received.
	Status int
	// Err is the underlying cause.
	Err error
}

func (e *QueryError) Error() string {
	msg := fmt.Sprintf("sparql query against %s failed", e.Endpoint)
	if e.Graph != "" {
		msg += fmt.Sprintf(" (graph %s)", e.Graph)
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *QueryError) Unwrap() error { return e.Err }

// Retryable reports whether retrying the same query may succeed. Network
// failures (no status received), 429 and 5xx responses are transient; 4xx
// responses and undecodable bodies indicate a defect that a retry will not
// fix.
func (e *QueryError) Retryable() bool {
	if e.Status == 0 {
		return true
	}
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}
