package read

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/queries"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/sparql"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools"
)

// Handler returns the tool handler function for read-sparql
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleReadSPARQL(ctx, request, deps)
	}
}

func handleReadSPARQL(ctx context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	// Validate dependencies
	if deps.AnalyticsService == nil {
		errMessage := "Analytics service is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	if deps.SPARQLService == nil {
		errMessage := "SPARQL service is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	// Emit analytics event
	deps.AnalyticsService.EmitEvent(
		deps.AnalyticsService.NewToolsEvent("read-sparql"),
	)

	// Parse arguments
	var args ReadSPARQLInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Validate required parameters
	if args.Query == "" && args.Pattern == "" {
		errMessage := "either the query or the pattern parameter is required"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}
	if args.Query != "" && args.Pattern != "" {
		errMessage := "query and pattern parameters are mutually exclusive, pass exactly one"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	graphURI := args.GraphUri
	if graphURI == "" {
		graphURI = deps.DefaultGraph
	}

	query := args.Query
	if args.Pattern != "" {
		if graphURI == "" {
			errMessage := "graphUri parameter is required for pattern queries because the server has no default graph configured"
			slog.Error(errMessage)
			return mcp.NewToolResultError(errMessage), nil
		}
		wrapped, err := queries.WrapInGraph(args.Pattern, graphURI)
		if err != nil {
			slog.Error("error wrapping pattern", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		query = wrapped
	}

	if err := queries.ValidateReadQuery(query); err != nil {
		slog.Error("rejecting non-read query", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	slog.Info("executing read sparql", "graph", graphURI, "bytes", len(query))

	rows, err := deps.SPARQLService.ExecuteSelect(ctx, query, graphURI)
	if err != nil {
		slog.Error("error executing read sparql", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	response, err := sparql.BindingsToJSON(rows)
	if err != nil {
		slog.Error("error formatting query results", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response), nil
}
