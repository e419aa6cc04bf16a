package subgraph

import "github.com/mark3labs/mcp-go/mcp"

// FetchSubgraphInput defines the input parameters for the fetch-class-subgraph tool
type FetchSubgraphInput struct {
	// RootUri is the IRI of the class whose descendant subgraph to fetch (required)
	RootUri string `json:"rootUri" jsonschema:"description=IRI of the class whose descendant subgraph to fetch (required)"`

	// GraphUri is the IRI of the named graph holding the ontology.
	// Falls back to the server's configured default graph when omitted.
	GraphUri string `json:"graphUri,omitempty" jsonschema:"description=IRI of the named graph holding the ontology. Defaults to the server's configured graph when omitted."`

	// MaxDepth bounds the traversal. 0 fetches only the root's own triples,
	// each further level adds one generation of subclasses. Negative means
	// unbounded. Omitted means the server's configured limit.
	MaxDepth *int `json:"maxDepth,omitempty" jsonschema:"description=Traversal bound. 0 fetches only the root's own triples and each further level adds one generation of subclasses. Defaults to the server's configured limit."`

	// Format selects the triple serialization of the response.
	Format string `json:"format,omitempty" jsonschema:"description=Serialization of the returned triples,enum=ntriples,enum=json,default=ntriples"`
}

// Spec returns the MCP tool specification for fetch-class-subgraph
func Spec() mcp.Tool {
	return mcp.NewTool("fetch-class-subgraph",
		mcp.WithDescription(`Fetches the descendant subgraph of an ontology class: the class itself, every transitive subclass, and the annotation triples attached to them.

**BEHAVIOR:**
Walks rdfs:subClassOf edges downward from the root, level by level. For each discovered class the tool copies its outgoing triples whose predicate is on the server's configured allowlist (hierarchy edges, labels, domain/range and similar annotation predicates). Duplicate triples collapse, so repeated fetches of overlapping subtrees stay consistent.

**OUTPUT STRUCTURE:**
{
  "root":    "<root class IRI>",
  "graph":   "<graph IRI>",
  "count":   <number of distinct triples>,
  "triples": "<N-Triples text>" | [{subject, predicate, object}, ...]
}

With "format": "json" each triple component is an object in SPARQL results encoding ({type, value, optional xml:lang / datatype}); the default "ntriples" returns one N-Triples line per triple.

**FAILURE MODES:**
- The subclass hierarchy below the root contains a cycle
- A class below the root has more than one direct superclass
- The endpoint cannot be reached

**WHEN TO USE THIS TOOL:**
- Materializing one branch of a large ontology for local inspection
- Extracting the vocabulary relevant to a class before writing queries against it
- Comparing the structure of two branches returned by separate calls`),
		mcp.WithInputSchema[FetchSubgraphInput](),
		mcp.WithTitleAnnotation("Fetch Class Subgraph"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
