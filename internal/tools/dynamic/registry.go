package dynamic

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools"
)

// ToolRegistry manages the loading and registration of saved query tools
type ToolRegistry struct {
	configDir string
	configs   []*ToolConfig
}

// NewToolRegistry creates a new tool registry
func NewToolRegistry(configDir string) *ToolRegistry {
	return &ToolRegistry{
		configDir: configDir,
		configs:   make([]*ToolConfig, 0),
	}
}

// LoadTools loads all tool configurations from the config directory
func (r *ToolRegistry) LoadTools() error {
	configs, err := WalkConfigDirectory(r.configDir)
	if err != nil {
		return fmt.Errorf("failed to load tools from config directory: %w", err)
	}

	r.configs = configs
	slog.Info("loaded saved query tools", "count", len(configs), "categories", r.ListCategories())

	return nil
}

// GetToolCount returns the number of loaded tools
func (r *ToolRegistry) GetToolCount() int {
	return len(r.configs)
}

// GetTools returns all loaded tool configurations
func (r *ToolRegistry) GetTools() []*ToolConfig {
	return r.configs
}

// GetServerTools converts all loaded configs into MCP server tools
func (r *ToolRegistry) GetServerTools(deps *tools.ToolDependencies) []server.ServerTool {
	serverTools := make([]server.ServerTool, 0, len(r.configs))

	for _, config := range r.configs {
		serverTools = append(serverTools, buildServerTool(config, deps))
	}

	return serverTools
}

// ListCategories returns all unique categories in sorted order
func (r *ToolRegistry) ListCategories() []string {
	categoryMap := make(map[string]bool)
	for _, config := range r.configs {
		categoryMap[config.Category] = true
	}

	categories := make([]string, 0, len(categoryMap))
	for category := range categoryMap {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	return categories
}

// buildServerTool creates an MCP server tool from a tool config.
// Saved queries are read-only by construction, the handler never executes
// anything but the stored SELECT.
func buildServerTool(config *ToolConfig, deps *tools.ToolDependencies) server.ServerTool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(buildEnrichedDescription(config)),
		mcp.WithTitleAnnotation(config.Name),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	}
	opts = append(opts, parameterOptions(config.Parameters)...)

	slog.Debug("built saved query tool", "name", config.Name, "category", config.Category)

	return server.ServerTool{
		Tool:    mcp.NewTool(config.Name, opts...),
		Handler: NewDynamicHandler(config, deps),
	}
}

// parameterOptions translates the YAML parameter definitions into tool
// input schema options.
func parameterOptions(params []ParameterConfig) []mcp.ToolOption {
	opts := make([]mcp.ToolOption, 0, len(params))
	for _, p := range params {
		var propOpts []mcp.PropertyOption
		if p.Description != "" {
			propOpts = append(propOpts, mcp.Description(p.Description))
		}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}

		switch p.Type {
		case "integer", "number":
			if d, ok := toNumber(p.Default); ok {
				propOpts = append(propOpts, mcp.DefaultNumber(d))
			}
			opts = append(opts, mcp.WithNumber(p.Name, propOpts...))
		case "boolean":
			if d, ok := p.Default.(bool); ok {
				propOpts = append(propOpts, mcp.DefaultBool(d))
			}
			opts = append(opts, mcp.WithBoolean(p.Name, propOpts...))
		case "array":
			opts = append(opts, mcp.WithArray(p.Name, propOpts...))
		case "object":
			opts = append(opts, mcp.WithObject(p.Name, propOpts...))
		default:
			if d, ok := p.Default.(string); ok {
				propOpts = append(propOpts, mcp.DefaultString(d))
			}
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		}
	}
	return opts
}

// toNumber widens the numeric types the YAML decoder may produce.
func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
