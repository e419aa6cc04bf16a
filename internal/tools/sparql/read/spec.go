package read

import "github.com/mark3labs/mcp-go/mcp"

// ReadSPARQLInput defines the input parameters for the read-sparql tool
type ReadSPARQLInput struct {
	// Query is a complete SPARQL read query. Mutually exclusive with Pattern.
	Query string `json:"query,omitempty" jsonschema:"description=Complete SPARQL read query (SELECT recommended; ASK / CONSTRUCT / DESCRIBE are accepted but return no bindings). Mutually exclusive with pattern."`

	// Pattern is a basic graph pattern that gets wrapped in
	// SELECT * WHERE { GRAPH <graphUri> { ... } }. Mutually exclusive with Query.
	Pattern string `json:"pattern,omitempty" jsonschema:"description=Basic graph pattern to evaluate inside the graph, wrapped as SELECT * WHERE { GRAPH <graphUri> { pattern } }. Mutually exclusive with query."`

	// GraphUri scopes pattern queries and annotates full queries.
	// Falls back to the server's configured default graph when omitted.
	GraphUri string `json:"graphUri,omitempty" jsonschema:"description=IRI of the named graph to evaluate the pattern in. Defaults to the server's configured graph when omitted."`
}

// Spec returns the MCP tool specification for read-sparql
func Spec() mcp.Tool {
	return mcp.NewTool("read-sparql",
		mcp.WithDescription(`read-sparql runs only read-only SPARQL against the configured endpoint. SPARQL Update operations (INSERT, DELETE, LOAD, CLEAR, DROP, etc...) are rejected before anything reaches the endpoint.

**TWO CALLING MODES:**
1. "query": a complete SPARQL query. You control the GRAPH clauses yourself.
2. "pattern": just a basic graph pattern, e.g. "?cls rdfs:label ?label". The server wraps it as SELECT * WHERE { GRAPH <graphUri> { pattern } } against the requested or configured graph.

Results come back in SPARQL results JSON: one object per row, variable name to {type, value, optional xml:lang / datatype}.

Prefer the purpose-built tools (resolve-class-ancestors, find-common-ancestor, fetch-class-subgraph) for hierarchy questions; use read-sparql for everything they do not cover.`),
		mcp.WithInputSchema[ReadSPARQLInput](),
		mcp.WithTitleAnnotation("Read SPARQL"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
