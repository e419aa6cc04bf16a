package tools

import (
	"github.com/semanticmatter/sparql-mcp-ontology/internal/analytics"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/hierarchy"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/queries"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/sparql"
)

// ToolDependencies contains all dependencies needed by tools
type ToolDependencies struct {
	SPARQLService    sparql.Service
	AnalyticsService analytics.Service
	QueryBank        *queries.Bank
	Resolver         *hierarchy.Resolver
	// DefaultGraph is the graph IRI used when a tool call omits graphUri.
	DefaultGraph string
	// MaxSubgraphDepth caps fetch-class-subgraph traversals. Negative
	// means unbounded.
	MaxSubgraphDepth int
}
