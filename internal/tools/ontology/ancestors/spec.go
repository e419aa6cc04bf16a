package ancestors

import "github.com/mark3labs/mcp-go/mcp"

// ResolveAncestorsInput defines the input parameters for the resolve-class-ancestors tool
type ResolveAncestorsInput struct {
	// ClassUri is the IRI of the class whose ancestor path to resolve (required)
	ClassUri string `json:"classUri" jsonschema:"description=IRI of the class whose ancestor path to resolve (required)"`

	// GraphUri is the IRI of the named graph holding the ontology.
	// Falls back to the server's configured default graph when omitted.
	GraphUri string `json:"graphUri,omitempty" jsonschema:"description=IRI of the named graph holding the ontology. Defaults to the server's configured graph when omitted."`
}

// Spec returns the MCP tool specification for resolve-class-ancestors
func Spec() mcp.Tool {
	return mcp.NewTool("resolve-class-ancestors",
		mcp.WithDescription(`Resolves the full superclass chain of an ontology class, from the class itself up to its root.

**BEHAVIOR:**
Walks rdfs:subClassOf edges one hop at a time inside the requested named graph. The returned path always starts with the queried class (depth 0) and ends at the hierarchy root (a class with no superclass).

**OUTPUT STRUCTURE:**
{
  "class": "<queried class IRI>",
  "graph": "<graph IRI>",
  "path":  ["<class IRI>", "<parent IRI>", ..., "<root IRI>"],
  "depth": <number of edges walked>
}

**FAILURE MODES:**
- The class does not exist in the graph (no triples mention it)
- The hierarchy is ambiguous (a class on the path has more than one direct superclass)
- The hierarchy contains a cycle (the walk revisits a class)

**WHEN TO USE THIS TOOL:**
- Determining where a class sits in the ontology before classifying instances
- Checking whether one class transitively specializes another
- Gathering the chain of ancestors as context for find-common-ancestor results`),
		mcp.WithInputSchema[ResolveAncestorsInput](),
		mcp.WithTitleAnnotation("Resolve Class Ancestors"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
