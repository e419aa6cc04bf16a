package subgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/hierarchy"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/rdf"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools"
)

const (
	formatNTriples = "ntriples"
	formatJSON     = "json"
)

// subgraphResponse is the JSON payload returned on success. Triples holds
// either one N-Triples string or an array of structured triples depending
// on the requested format.
type subgraphResponse struct {
	Root    string `json:"root"`
	Graph   string `json:"graph"`
	Count   int    `json:"count"`
	Triples any    `json:"triples"`
}

// jsonTerm mirrors the SPARQL results encoding of a single term.
type jsonTerm struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

type jsonTriple struct {
	Subject   jsonTerm `json:"subject"`
	Predicate jsonTerm `json:"predicate"`
	Object    jsonTerm `json:"object"`
}

// Handler returns the tool handler function for fetch-class-subgraph
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleFetchSubgraph(ctx, request, deps)
	}
}

func handleFetchSubgraph(ctx context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	// Validate dependencies
	if deps.AnalyticsService == nil {
		errMessage := "Analytics service is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	if deps.Resolver == nil {
		errMessage := "Hierarchy resolver is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	// Emit analytics event
	deps.AnalyticsService.EmitEvent(
		deps.AnalyticsService.NewToolsEvent("fetch-class-subgraph"),
	)

	// Parse arguments
	var args FetchSubgraphInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Validate required parameters
	if args.RootUri == "" {
		errMessage := "rootUri parameter is required and cannot be empty"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	format := args.Format
	if format == "" {
		format = formatNTriples
	}
	if format != formatNTriples && format != formatJSON {
		errMessage := fmt.Sprintf("format must be %q or %q, got %q", formatNTriples, formatJSON, args.Format)
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	graphURI := args.GraphUri
	if graphURI == "" {
		graphURI = deps.DefaultGraph
	}
	if graphURI == "" {
		errMessage := "graphUri parameter is required because the server has no default graph configured"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	// The server limit caps client requests. A request below the limit
	// stands, anything else is clamped to it.
	depth := deps.MaxSubgraphDepth
	if args.MaxDepth != nil {
		depth = *args.MaxDepth
		if deps.MaxSubgraphDepth >= 0 && (depth < 0 || depth > deps.MaxSubgraphDepth) {
			depth = deps.MaxSubgraphDepth
		}
	}

	slog.Info("fetching class subgraph", "root", args.RootUri, "graph", graphURI, "maxDepth", depth, "format", format)

	graph, err := deps.Resolver.PopulateSubgraph(ctx, args.RootUri, graphURI, nil, hierarchy.WithMaxDepth(depth))
	if err != nil {
		slog.Error("error fetching class subgraph", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp := subgraphResponse{
		Root:  args.RootUri,
		Graph: graphURI,
		Count: graph.Len(),
	}
	switch format {
	case formatJSON:
		resp.Triples = triplesToJSON(graph.Triples())
	default:
		resp.Triples = graph.NTriples()
	}

	response, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		slog.Error("error formatting subgraph", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(string(response)), nil
}

func triplesToJSON(triples []rdf.Triple) []jsonTriple {
	out := make([]jsonTriple, 0, len(triples))
	for _, t := range triples {
		out = append(out, jsonTriple{
			Subject:   termToJSON(t.Subject),
			Predicate: termToJSON(t.Predicate),
			Object:    termToJSON(t.Object),
		})
	}
	return out
}

func termToJSON(t rdf.Term) jsonTerm {
	switch t.Kind {
	case rdf.TermIRI:
		return jsonTerm{Type: "uri", Value: t.Value}
	case rdf.TermBlank:
		return jsonTerm{Type: "bnode", Value: t.Value}
	default:
		return jsonTerm{Type: "literal", Value: t.Value, Lang: t.Lang, Datatype: t.Datatype}
	}
}
