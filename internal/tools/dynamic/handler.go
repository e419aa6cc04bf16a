package dynamic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/queries"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/sparql"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools"
)

// graphParameter is the conventional name of the named-graph parameter in
// saved query configs. It inherits the server's default graph when a call
// leaves it out.
const graphParameter = "graph"

// NewDynamicHandler creates a handler function for a saved query tool
func NewDynamicHandler(config *ToolConfig, deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDynamicTool(ctx, request, config, deps)
	}
}

func handleDynamicTool(ctx context.Context, request mcp.CallToolRequest, config *ToolConfig, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	// Validate dependencies
	if deps.SPARQLService == nil {
		errMessage := "SPARQL service is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	// Emit analytics event if available
	if deps.AnalyticsService != nil {
		deps.AnalyticsService.EmitEvent(
			deps.AnalyticsService.NewToolsEvent(config.Name),
		)
	}

	vars, err := bindParameters(config.Parameters, request.GetArguments(), deps.DefaultGraph)
	if err != nil {
		slog.Error("invalid saved query arguments", "tool", config.Name, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	query, err := config.template.Render(vars)
	if err != nil {
		slog.Error("error rendering saved query", "tool", config.Name, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Configs loaded from an operator-supplied directory get the same
	// read-only gate as ad-hoc queries.
	if err := queries.ValidateReadQuery(query); err != nil {
		slog.Error("saved query is not read-only", "tool", config.Name, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	graphURI := deps.DefaultGraph
	if g, ok := vars[graphParameter].(string); ok && g != "" {
		graphURI = g
	}

	slog.Info("saved query tool called", "tool", config.Name, "category", config.Category, "graph", graphURI)

	rows, err := deps.SPARQLService.ExecuteSelect(ctx, query, graphURI)
	if err != nil {
		slog.Error("error executing saved query", "tool", config.Name, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	response, err := sparql.BindingsToJSON(rows)
	if err != nil {
		slog.Error("error formatting saved query results", "tool", config.Name, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response), nil
}

// bindParameters resolves the template variables for one call: caller
// arguments first, then config defaults, then the server's default graph
// for the graph parameter. Missing optional parameters bind to their
// type's zero value so the template engine sees every declared name.
func bindParameters(params []ParameterConfig, args map[string]any, defaultGraph string) (map[string]any, error) {
	vars := make(map[string]any, len(params))
	for _, p := range params {
		value, ok := args[p.Name]
		if !ok || value == nil || value == "" {
			switch {
			case p.Default != nil:
				value = p.Default
			case p.Name == graphParameter && defaultGraph != "":
				value = defaultGraph
			case p.Required:
				return nil, fmt.Errorf("parameter '%s' is required", p.Name)
			default:
				value = zeroValue(p.Type)
			}
		}
		vars[p.Name] = value
	}
	return vars, nil
}

func zeroValue(paramType string) any {
	switch paramType {
	case "integer", "number":
		return 0
	case "boolean":
		return false
	case "array":
		return []any{}
	case "object":
		return map[string]any{}
	default:
		return ""
	}
}

// buildEnrichedDescription creates a comprehensive description from all semantic fields
func buildEnrichedDescription(config *ToolConfig) string {
	var sb strings.Builder

	// Core description
	sb.WriteString(config.Description)

	// Intent - when to use this tool
	if config.Intent != "" {
		sb.WriteString("\n\n## Intent\n")
		sb.WriteString(config.Intent)
	}

	// The stored query doubles as reference documentation
	sb.WriteString("\n\n## Reference SPARQL\n```sparql\n")
	sb.WriteString(strings.TrimSpace(config.Query))
	sb.WriteString("\n```\n")

	// Parameters - expected query parameters
	if len(config.Parameters) > 0 {
		sb.WriteString("\n## Parameters\n")
		for _, p := range config.Parameters {
			sb.WriteString(fmt.Sprintf("- `%s` (%s)", p.Name, p.Type))
			if p.Default != nil {
				sb.WriteString(fmt.Sprintf(" [default: %v]", p.Default))
			}
			if p.Description != "" {
				sb.WriteString(fmt.Sprintf(": %s", p.Description))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
