package guidance

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/semanticmatter/sparql-mcp-ontology/docs"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools"
)

// Handler returns the tool handler function for get-ontology-guidance
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetGuidance(ctx, request, deps)
	}
}

func handleGetGuidance(_ context.Context, _ mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	// Validate dependencies
	if deps.AnalyticsService == nil {
		errMessage := "Analytics service is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	// Emit analytics event
	deps.AnalyticsService.EmitEvent(
		deps.AnalyticsService.NewToolsEvent("get-ontology-guidance"),
	)

	slog.Info("serving ontology guidance")

	return mcp.NewToolResultText(docs.OntologyGuidancePrompt), nil
}
