// Package config provides configuration for the MCP server: defaults, an
// optional YAML file, environment overrides, and validation. Credentials are
// always passed explicitly; the endpoint password is read from the
// environment only and never from the file.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/hierarchy"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/rdf"
)

// Environment variables recognized by Load. SPARQL_* configure the endpoint
// connection, MCP_* configure server behavior.
const (
	EnvEndpoint          = "SPARQL_ENDPOINT"
	EnvDefaultGraph      = "SPARQL_DEFAULT_GRAPH"
	EnvUsername          = "SPARQL_USERNAME"
	EnvPassword          = "SPARQL_PASSWORD"
	EnvQueryTimeout      = "SPARQL_QUERY_TIMEOUT"
	EnvAllowRawQueries   = "MCP_ALLOW_RAW_QUERIES"
	EnvTelemetryDisabled = "MCP_TELEMETRY_DISABLED"
	EnvLogLevel          = "MCP_LOG_LEVEL"
)

// Config is the complete server configuration.
type Config struct {
	Endpoint  EndpointConfig  `yaml:"endpoint"`
	Retry     RetryConfig     `yaml:"retry"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Hierarchy HierarchyConfig `yaml:"hierarchy"`
	Tools     ToolsConfig     `yaml:"tools"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// EndpointConfig configures the SPARQL endpoint connection.
type EndpointConfig struct {
	// URL is the SPARQL Protocol query endpoint (required).
	URL string `yaml:"url"`
	// DefaultGraph is the named graph used when a tool call omits one.
	DefaultGraph string `yaml:"default_graph"`
	// Username enables HTTP basic auth when non-empty.
	Username string `yaml:"username"`
	// Password is read from SPARQL_PASSWORD only, never from the file.
	Password string `yaml:"-"`
	// QueryTimeout bounds a single query round trip.
	QueryTimeout time.Duration `yaml:"query_timeout"`
}

// RetryConfig configures the retry decorator around the SPARQL client.
type RetryConfig struct {
	// MaxRetries is the number of additional attempts after the first.
	MaxRetries uint64 `yaml:"max_retries"`
	// BaseDelay seeds the exponential backoff.
	BaseDelay time.Duration `yaml:"base_delay"`
	// MaxDelay caps a single backoff interval.
	MaxDelay time.Duration `yaml:"max_delay"`
}

// RateLimitConfig configures the client-side query rate limit.
type RateLimitConfig struct {
	// QPS is the sustained query rate; 0 disables rate limiting.
	QPS float64 `yaml:"qps"`
	// Burst is the number of queries allowed to exceed the rate momentarily.
	Burst int `yaml:"burst"`
}

// HierarchyConfig configures hierarchy traversal.
type HierarchyConfig struct {
	// Predicate is the IRI traversals follow.
	Predicate string `yaml:"predicate"`
	// PopulatePredicates restricts the triples fetched into subgraphs.
	PopulatePredicates []string `yaml:"populate_predicates"`
	// MaxSubgraphDepth caps fetch-class-subgraph descent; negative means
	// unbounded.
	MaxSubgraphDepth int `yaml:"max_subgraph_depth"`
}

// ToolsConfig configures which tools the server registers.
type ToolsConfig struct {
	// AllowRawQueries registers the read-sparql passthrough tool.
	AllowRawQueries bool `yaml:"allow_raw_queries"`
}

// TelemetryConfig configures usage analytics.
type TelemetryConfig struct {
	// Disabled turns off analytics events.
	Disabled bool `yaml:"disabled"`
}

// DefaultConfig returns a Config with working defaults for everything but
// the endpoint URL.
func DefaultConfig() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			QueryTimeout: 30 * time.Second,
		},
		Retry: RetryConfig{
			MaxRetries: 3,
			BaseDelay:  500 * time.Millisecond,
			MaxDelay:   10 * time.Second,
		},
		RateLimit: RateLimitConfig{
			QPS:   0, // disabled
			Burst: 1,
		},
		Hierarchy: HierarchyConfig{
			Predicate:          hierarchy.DefaultHierarchyPredicate,
			PopulatePredicates: hierarchy.DefaultPopulatePredicates(),
			MaxSubgraphDepth:   -1,
		},
		Tools: ToolsConfig{
			AllowRawQueries: false,
		},
		Telemetry: TelemetryConfig{
			Disabled: false,
		},
		LogLevel: "info",
	}
}

// Load builds the effective configuration: defaults, then the optional YAML
// file at path, then environment overrides, then validation.
func Load(path string) (*Config, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides builds the configuration like Load but lets the caller
// apply one final layer, typically CLI flags, before validation runs.
func LoadWithOverrides(path string, override func(*Config)) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	envString(EnvEndpoint, &c.Endpoint.URL)
	envString(EnvDefaultGraph, &c.Endpoint.DefaultGraph)
	envString(EnvUsername, &c.Endpoint.Username)
	envString(EnvPassword, &c.Endpoint.Password)
	envString(EnvLogLevel, &c.LogLevel)

	if err := envDuration(EnvQueryTimeout, &c.Endpoint.QueryTimeout); err != nil {
		return err
	}
	if err := envBool(EnvAllowRawQueries, &c.Tools.AllowRawQueries); err != nil {
		return err
	}
	return envBool(EnvTelemetryDisabled, &c.Telemetry.Disabled)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Endpoint.URL == "" {
		return fmt.Errorf("endpoint.url is required (set it in the config file or %s)", EnvEndpoint)
	}
	u, err := url.Parse(c.Endpoint.URL)
	if err != nil || u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint.url %q is not an http(s) URL", c.Endpoint.URL)
	}
	if c.Endpoint.DefaultGraph != "" {
		if err := rdf.ValidateIRI(c.Endpoint.DefaultGraph); err != nil {
			return fmt.Errorf("endpoint.default_graph: %w", err)
		}
	}
	if c.Endpoint.QueryTimeout <= 0 {
		return fmt.Errorf("endpoint.query_timeout must be positive")
	}

	if c.Retry.BaseDelay <= 0 {
		return fmt.Errorf("retry.base_delay must be positive")
	}
	if c.Retry.MaxDelay < c.Retry.BaseDelay {
		return fmt.Errorf("retry.max_delay must be at least retry.base_delay")
	}

	if c.RateLimit.QPS < 0 {
		return fmt.Errorf("rate_limit.qps must not be negative")
	}
	if c.RateLimit.QPS > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit.burst must be at least 1 when rate limiting is on")
	}

	if err := rdf.ValidateIRI(c.Hierarchy.Predicate); err != nil {
		return fmt.Errorf("hierarchy.predicate: %w", err)
	}
	if len(c.Hierarchy.PopulatePredicates) == 0 {
		return fmt.Errorf("hierarchy.populate_predicates must not be empty")
	}
	for _, p := range c.Hierarchy.PopulatePredicates {
		if err := rdf.ValidateIRI(p); err != nil {
			return fmt.Errorf("hierarchy.populate_predicates: %w", err)
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// SlogLevel maps the configured log level onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func envBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %q is not a boolean", key, v)
	}
	*dst = b
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %q is not a duration", key, v)
	}
	*dst = d
	return nil
}
