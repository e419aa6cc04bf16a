package sparql

//go:generate mockgen -destination=mocks/mock_sparql.go -package=sparql_mocks -typed github.com/semanticmatter/sparql-mcp-ontology/internal/sparql Service

import (
	"context"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/rdf"
)

// Binding is one SPARQL result row, mapping variable names to bound terms.
type Binding map[string]rdf.Term

// Service executes SPARQL queries against a single endpoint. Implementations
// fail with *QueryError on any transport, HTTP or response-decoding problem;
// callers only ever inspect the error type, never its internals.
//
// Decorators (WithRetry, WithRateLimit) wrap a Service and return a Service,
// so cross-cutting policy stays out of the resolvers.
type Service interface {
	// ExecuteSelect runs a SELECT query and returns its binding rows. The
	// query text already carries its GRAPH clause; graphURI names the graph
	// being targeted and is attached to logs, spans and errors.
	ExecuteSelect(ctx context.Context, query, graphURI string) ([]Binding, error)

	// VerifyConnectivity checks that the endpoint answers queries at all.
	VerifyConnectivity(ctx context.Context) error

	// Endpoint returns the endpoint URL this service talks to.
	Endpoint() string

	// Close releases held connections. The service must not be used after.
	Close()
}
