package lca

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/hierarchy"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools"
)

// commonAncestorResponse is the JSON payload returned on success. Found is
// false when the classes share no ancestor, which is an answer rather than
// a failure.
type commonAncestorResponse struct {
	Found    bool     `json:"found"`
	Ancestor string   `json:"ancestor,omitempty"`
	Graph    string   `json:"graph"`
	Classes  []string `json:"classes"`
}

// Handler returns the tool handler function for find-common-ancestor
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleFindCommonAncestor(ctx, request, deps)
	}
}

func handleFindCommonAncestor(ctx context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
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
		deps.AnalyticsService.NewToolsEvent("find-common-ancestor"),
	)

	// Parse arguments
	var args FindCommonAncestorInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Validate required parameters
	if len(args.ClassUris) == 0 {
		errMessage := "classUris parameter is required and cannot be empty"
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

	slog.Info("finding common ancestor", "classes", len(args.ClassUris), "graph", graphURI)

	ancestor, err := deps.Resolver.FindCommonAncestor(ctx, args.ClassUris, graphURI)
	resp := commonAncestorResponse{
		Graph:   graphURI,
		Classes: args.ClassUris,
	}
	switch {
	case errors.Is(err, hierarchy.ErrNoCommonAncestor):
		// Disjoint classes answer the question rather than fail it.
		slog.Info("classes share no ancestor", "graph", graphURI)
	case err != nil:
		slog.Error("error finding common ancestor", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	default:
		resp.Found = true
		resp.Ancestor = ancestor
	}

	response, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		slog.Error("error formatting common ancestor", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(string(response)), nil
}
