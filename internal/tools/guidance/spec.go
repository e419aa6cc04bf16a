package guidance

import "github.com/mark3labs/mcp-go/mcp"

// Spec returns the tool specification for get-ontology-guidance
func Spec() mcp.Tool {
	return mcp.NewTool("get-ontology-guidance",
		mcp.WithDescription(`Fetches guidance on investigating the class hierarchy served by this server.

Returns structured guidance including:
- The recommended tool workflow from graph discovery down to subgraph extraction
- IRI conventions the hierarchy tools expect
- Reference SPARQL patterns for labels, subclasses and instance queries
- How to interpret each failure mode (missing class, ambiguous hierarchy, cycle, endpoint errors)
- Best practices for combining the hierarchy tools with read-sparql

Use this tool when you need guidance on:
- Which tool answers a hierarchy question
- How to phrase class and graph parameters
- Why a hierarchy call failed and whether retrying can help`),
		mcp.WithTitleAnnotation("Get Ontology Guidance"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
