package server

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools/dynamic"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools/guidance"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools/ontology/ancestors"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools/ontology/lca"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools/ontology/subgraph"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools/sparql/read"
)

// registerTools registers all enabled MCP tools and adds them to the MCP
// server, returning how many were registered. Tools are filtered according
// to the server configuration: the raw read-sparql passthrough is excluded
// unless Config.Tools.AllowRawQueries (or MCP_ALLOW_RAW_QUERIES) enables it.
// Every registered tool is read-only against the endpoint; the filter exists
// because an unrestricted query surface is a policy decision, not because
// any tool writes.
func (s *OntologyMCPServer) registerTools() (int, error) {
	filteredTools := s.getEnabledTools()
	s.MCPServer.AddTools(filteredTools...)
	return len(filteredTools), nil
}

type toolFilter func(tools []ToolDefinition) []ToolDefinition

type toolCategory int

const (
	hierarchyCategory toolCategory = 0
	sparqlCategory    toolCategory = 1
	guidanceCategory  toolCategory = 2
	dynamicCategory   toolCategory = 3 // Saved-query tools from YAML configs
)

type ToolDefinition struct {
	category   toolCategory
	definition server.ServerTool
	// rawQuery marks tools that accept arbitrary caller-written SPARQL.
	rawQuery bool
}

func (s *OntologyMCPServer) getEnabledTools() []server.ServerTool {
	filters := make([]toolFilter, 0)

	// Arbitrary-query tools stay off unless explicitly enabled.
	if s.config == nil || !s.config.Tools.AllowRawQueries {
		filters = append(filters, filterRawQueryTools)
	}

	deps := &tools.ToolDependencies{
		SPARQLService:    s.sparqlService,
		AnalyticsService: s.anService,
		QueryBank:        s.queryBank,
		Resolver:         s.resolver,
	}
	if s.config != nil {
		deps.DefaultGraph = s.config.Endpoint.DefaultGraph
		deps.MaxSubgraphDepth = s.config.Hierarchy.MaxSubgraphDepth
	}
	toolDefs := s.getAllToolsDefs(deps)

	for _, filter := range filters {
		toolDefs = filter(toolDefs)
	}
	enabledTools := make([]server.ServerTool, 0)
	for _, toolDef := range toolDefs {
		enabledTools = append(enabledTools, toolDef.definition)
	}
	return enabledTools
}

func filterRawQueryTools(tools []ToolDefinition) []ToolDefinition {
	restricted := make([]ToolDefinition, 0, len(tools))
	for _, t := range tools {
		if !t.rawQuery {
			restricted = append(restricted, t)
		}
	}
	return restricted
}

// getAllToolsDefs returns all available tools with their specs and handlers
func (s *OntologyMCPServer) getAllToolsDefs(deps *tools.ToolDependencies) []ToolDefinition {
	toolDefs := []ToolDefinition{
		{
			category: hierarchyCategory,
			definition: server.ServerTool{
				Tool:    ancestors.Spec(),
				Handler: ancestors.Handler(deps),
			},
		},
		{
			category: hierarchyCategory,
			definition: server.ServerTool{
				Tool:    lca.Spec(),
				Handler: lca.Handler(deps),
			},
		},
		{
			category: hierarchyCategory,
			definition: server.ServerTool{
				Tool:    subgraph.Spec(),
				Handler: subgraph.Handler(deps),
			},
		},
		{
			category: sparqlCategory,
			definition: server.ServerTool{
				Tool:    read.Spec(),
				Handler: read.Handler(deps),
			},
			rawQuery: true,
		},
		{
			category: guidanceCategory,
			definition: server.ServerTool{
				Tool:    guidance.Spec(),
				Handler: guidance.Handler(deps),
			},
		},
		// Note: discovery and inspection queries (list-named-graphs,
		// list-root-classes, describe-class, ...) are config-based in
		// tools/config/.
	}

	// Load saved query tools from the embedded config directory
	dynamicTools := s.loadDynamicTools(deps)
	toolDefs = append(toolDefs, dynamicTools...)

	return toolDefs
}

// loadDynamicTools loads tools from YAML configs in tools/config/ directory
func (s *OntologyMCPServer) loadDynamicTools(deps *tools.ToolDependencies) []ToolDefinition {
	registry := dynamic.NewToolRegistry("tools/config")

	if err := registry.LoadTools(); err != nil {
		slog.Error("failed to load saved query tools", "error", err)
		return []ToolDefinition{}
	}

	if registry.GetToolCount() == 0 {
		slog.Info("no saved query tools found in config directory")
		return []ToolDefinition{}
	}

	serverTools := registry.GetServerTools(deps)
	toolDefs := make([]ToolDefinition, 0, len(serverTools))

	for _, serverTool := range serverTools {
		// Saved queries pass ValidateReadQuery at call time and never
		// accept caller-written SPARQL, so they are never rawQuery.
		toolDef := ToolDefinition{
			category:   dynamicCategory,
			definition: serverTool,
		}
		toolDefs = append(toolDefs, toolDef)
	}

	return toolDefs
}
