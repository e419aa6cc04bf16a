package dynamic

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/queries"
)

// EmbeddedFS is a package-level variable that can be set with embedded config files
var EmbeddedFS embed.FS

// WalkConfigDirectory loads all YAML tool definitions. Release builds carry
// the configs in EmbeddedFS; when that is empty (development, tests with a
// scratch directory) the OS directory is walked instead.
func WalkConfigDirectory(configDir string) ([]*ToolConfig, error) {
	if _, err := fs.Stat(EmbeddedFS, "."); err == nil {
		configs, err := loadConfigs(EmbeddedFS, "embedded")
		if err != nil {
			return nil, err
		}
		if len(configs) > 0 {
			return configs, nil
		}
	}

	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		slog.Warn("config directory does not exist", "dir", configDir)
		return nil, nil
	}
	return loadConfigs(os.DirFS(configDir), configDir)
}

// loadConfigs walks one filesystem and parses every .yaml/.yml file in it.
// A single malformed config fails the whole load; shipping a broken saved
// query is a packaging defect, not something to skip over.
func loadConfigs(fsys fs.FS, source string) ([]*ToolConfig, error) {
	var configs []*ToolConfig

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(d.Name()); ext != ".yaml" && ext != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		config, err := parseToolConfig(data, path)
		if err != nil {
			return err
		}

		configs = append(configs, config)
		slog.Info("loaded tool config", "tool", config.Name, "category", config.Category, "source", source, "path", path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load tool configs from %s: %w", source, err)
	}

	return configs, nil
}

// parseToolConfig parses, validates and compiles a YAML tool configuration
func parseToolConfig(data []byte, path string) (*ToolConfig, error) {
	var config ToolConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML in %s: %w", path, err)
	}

	// Derive category from directory structure
	config.Category = deriveCategoryFromPath(path)

	if config.Name == "" {
		return nil, fmt.Errorf("tool name is required in config file: %s", path)
	}
	if config.Description == "" {
		return nil, fmt.Errorf("tool description is required in config file: %s", path)
	}
	if strings.TrimSpace(config.Query) == "" {
		return nil, fmt.Errorf("tool query is required in config file: %s", path)
	}

	if err := validateParameters(config.Parameters); err != nil {
		return nil, fmt.Errorf("invalid parameters in %s: %w", path, err)
	}

	// Compile the query template once. A syntax error surfaces at load time
	// instead of on the first call.
	tmpl, err := queries.ParseInline(config.Name, config.Query)
	if err != nil {
		return nil, fmt.Errorf("invalid query template in %s: %w", path, err)
	}
	config.template = tmpl

	return &config, nil
}

// validateParameters validates parameter definitions
func validateParameters(params []ParameterConfig) error {
	validTypes := map[string]bool{
		"string": true, "integer": true, "number": true,
		"boolean": true, "array": true, "object": true,
	}
	names := make(map[string]bool)

	for i, param := range params {
		if param.Name == "" {
			return fmt.Errorf("parameter[%d] name is required", i)
		}

		if names[param.Name] {
			return fmt.Errorf("duplicate parameter name '%s'", param.Name)
		}
		names[param.Name] = true

		if param.Type != "" && !validTypes[param.Type] {
			return fmt.Errorf("parameter '%s' has invalid type '%s'", param.Name, param.Type)
		}
	}

	return nil
}

// deriveCategoryFromPath extracts the category from the file path
// Example: "config/discovery/list-root-classes.yaml" -> "discovery"
func deriveCategoryFromPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")

	// Embedded paths start at the config root
	for i, part := range parts {
		if part == "config" && i+1 < len(parts) {
			return parts[i+1]
		}
	}

	// OS paths are already relative to the config directory
	if len(parts) >= 2 {
		return parts[0]
	}

	return "general"
}
