package dynamic

import "github.com/semanticmatter/sparql-mcp-ontology/internal/queries"

// ToolConfig represents the YAML definition of a saved SPARQL query tool
type ToolConfig struct {
	// Name is the unique tool identifier (e.g., "list-root-classes")
	Name string `yaml:"name"`

	// Description provides the operational description of the tool
	Description string `yaml:"description"`

	// Intent provides semantic understanding for agents - WHEN to use this tool
	Intent string `yaml:"intent,omitempty"`

	// Query is the SPARQL SELECT template executed by the tool. It runs
	// through the same engine as the built-in query bank, so parameters are
	// injected with {{iri .name}} / {{iriList .name}} for IRI values and
	// {{.name}} for literals.
	Query string `yaml:"query"`

	// Parameters defines typed input parameters for the query
	Parameters []ParameterConfig `yaml:"parameters,omitempty"`

	// Category is derived from the folder structure (e.g., "discovery")
	// This is an internal field, not from YAML
	Category string `yaml:"-"`

	// template is the compiled Query, built once when the config loads
	template *queries.InlineTemplate
}

// ParameterConfig defines a typed input parameter
type ParameterConfig struct {
	// Name is the parameter identifier
	Name string `yaml:"name"`

	// Type is the JSON Schema type (string, integer, number, boolean, array, object)
	Type string `yaml:"type"`

	// Description explains the parameter's purpose
	Description string `yaml:"description,omitempty"`

	// Default value (type depends on Type field)
	Default interface{} `yaml:"default,omitempty"`

	// Required indicates if this parameter must be provided
	Required bool `yaml:"required,omitempty"`
}
