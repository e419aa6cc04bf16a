package ancestors

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools"
)

// ancestorPathResponse is the JSON payload returned on success.
type ancestorPathResponse struct {
	Class string   `json:"class"`
	Graph string   `json:"graph"`
	Path  []string `json:"path"`
	Depth int      `json:"depth"`
}

// Handler returns the tool handler function for resolve-class-ancestors
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleResolveAncestors(ctx, request, deps)
	}
}

func handleResolveAncestors(ctx context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
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
		deps.AnalyticsService.NewToolsEvent("resolve-class-ancestors"),
	)

	// Parse arguments
	var args ResolveAncestorsInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Validate required parameters
	if args.ClassUri == "" {
		errMessage := "classUri parameter is required and cannot be empty"
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

	slog.Info("resolving class ancestors", "class", args.ClassUri, "graph", graphURI)

	path, err := deps.Resolver.ResolveAncestors(ctx, args.ClassUri, graphURI)
	if err != nil {
		slog.Error("error resolving class ancestors", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	response, err := json.MarshalIndent(ancestorPathResponse{
		Class: args.ClassUri,
		Graph: graphURI,
		Path:  path,
		Depth: len(path) - 1,
	}, "", "  ")
	if err != nil {
		slog.Error("error formatting ancestor path", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(string(response)), nil
}
