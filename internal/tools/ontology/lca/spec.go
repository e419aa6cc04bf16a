package lca

import "github.com/mark3labs/mcp-go/mcp"

// FindCommonAncestorInput defines the input parameters for the find-common-ancestor tool
type FindCommonAncestorInput struct {
	// ClassUris lists the IRIs of the classes to relate (required, duplicates allowed)
	ClassUris []string `json:"classUris" jsonschema:"description=IRIs of the classes to find the lowest common ancestor of (required, duplicates are collapsed)"`

	// GraphUri is the IRI of the named graph holding the ontology.
	// Falls back to the server's configured default graph when omitted.
	GraphUri string `json:"graphUri,omitempty" jsonschema:"description=IRI of the named graph holding the ontology. Defaults to the server's configured graph when omitted."`
}

// Spec returns the MCP tool specification for find-common-ancestor
func Spec() mcp.Tool {
	return mcp.NewTool("find-common-ancestor",
		mcp.WithDescription(`Finds the lowest common ancestor of a set of ontology classes inside a named graph.

**BEHAVIOR:**
Resolves the ancestor path of every class concurrently, intersects the paths, and picks the shared class closest to the input classes. A class counts as its own ancestor, so the ancestor of {A} or {A, A} is A itself, and the ancestor of {A, parent-of-A} is the parent.

**OUTPUT STRUCTURE:**
{
  "found":    true | false,
  "ancestor": "<IRI of the lowest common ancestor>" (only when found),
  "graph":    "<graph IRI>",
  "classes":  ["<input class IRIs>"]
}

Classes that share no ancestor (disjoint hierarchies in the same graph) produce a successful result with "found": false, not an error.

**FAILURE MODES:**
- Any input class does not exist in the graph
- Any ancestor walk hits a cycle or an ambiguous (multi-parent) class
- The endpoint cannot be reached

A single failed walk fails the whole call. No partial answers are returned.

**WHEN TO USE THIS TOOL:**
- Finding the most specific shared type of several instances
- Generalizing a set of classes to one class for query broadening
- Checking whether classes belong to the same branch of the ontology`),
		mcp.WithInputSchema[FindCommonAncestorInput](),
		mcp.WithTitleAnnotation("Find Common Ancestor"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
