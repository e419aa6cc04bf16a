package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/rdf"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Endpoint.QueryTimeout != 30*time.Second {
		t.Errorf("expected default query timeout 30s, got %s", cfg.Endpoint.QueryTimeout)
	}
	if cfg.Retry.MaxRetries != 3 {
		t.Errorf("expected 3 retries by default, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.RateLimit.QPS != 0 {
		t.Errorf("expected rate limiting off by default, got qps %f", cfg.RateLimit.QPS)
	}
	if cfg.Hierarchy.Predicate != rdf.RDFSSubClassOf {
		t.Errorf("expected rdfs:subClassOf as default predicate, got %s", cfg.Hierarchy.Predicate)
	}
	if cfg.Hierarchy.MaxSubgraphDepth != -1 {
		t.Errorf("expected unbounded subgraph depth by default, got %d", cfg.Hierarchy.MaxSubgraphDepth)
	}
	if cfg.Tools.AllowRawQueries {
		t.Error("expected raw queries disabled by default")
	}
	if cfg.Telemetry.Disabled {
		t.Error("expected telemetry enabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing endpoint url",
			modify:  func(c *Config) { c.Endpoint.URL = "" },
			wantErr: true,
		},
		{
			name:    "non-http endpoint url",
			modify:  func(c *Config) { c.Endpoint.URL = "bolt://localhost:7687" },
			wantErr: true,
		},
		{
			name:    "bad default graph",
			modify:  func(c *Config) { c.Endpoint.DefaultGraph = "not a graph" },
			wantErr: true,
		},
		{
			name:    "zero query timeout",
			modify:  func(c *Config) { c.Endpoint.QueryTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "max delay below base delay",
			modify:  func(c *Config) { c.Retry.MaxDelay = c.Retry.BaseDelay / 2 },
			wantErr: true,
		},
		{
			name:    "negative qps",
			modify:  func(c *Config) { c.RateLimit.QPS = -1 },
			wantErr: true,
		},
		{
			name: "rate limit without burst",
			modify: func(c *Config) {
				c.RateLimit.QPS = 5
				c.RateLimit.Burst = 0
			},
			wantErr: true,
		},
		{
			name:    "bad hierarchy predicate",
			modify:  func(c *Config) { c.Hierarchy.Predicate = "subClassOf" },
			wantErr: true,
		},
		{
			name:    "empty populate predicates",
			modify:  func(c *Config) { c.Hierarchy.PopulatePredicates = nil },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Endpoint.URL = "http://localhost:3030/ds/sparql"
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
endpoint:
  url: "http://fuseki:3030/ontology/sparql"
  default_graph: "http://example.org/graphs/ontology"
  username: "reader"
  query_timeout: 10s
retry:
  max_retries: 5
rate_limit:
  qps: 20
  burst: 10
tools:
  allow_raw_queries: true
log_level: "debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Endpoint.URL != "http://fuseki:3030/ontology/sparql" {
		t.Errorf("unexpected endpoint url %q", cfg.Endpoint.URL)
	}
	if cfg.Endpoint.QueryTimeout != 10*time.Second {
		t.Errorf("unexpected query timeout %s", cfg.Endpoint.QueryTimeout)
	}
	if cfg.Retry.MaxRetries != 5 {
		t.Errorf("unexpected retry budget %d", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.BaseDelay != 500*time.Millisecond {
		t.Errorf("defaults must survive partial files, got base delay %s", cfg.Retry.BaseDelay)
	}
	if !cfg.Tools.AllowRawQueries {
		t.Error("expected raw queries enabled")
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("unexpected slog level %v", cfg.SlogLevel())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvEndpoint, "http://override:3030/ds/sparql")
	t.Setenv(EnvPassword, "hunter2")
	t.Setenv(EnvAllowRawQueries, "true")
	t.Setenv(EnvQueryTimeout, "5s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Endpoint.URL != "http://override:3030/ds/sparql" {
		t.Errorf("env endpoint not applied, got %q", cfg.Endpoint.URL)
	}
	if cfg.Endpoint.Password != "hunter2" {
		t.Error("env password not applied")
	}
	if !cfg.Tools.AllowRawQueries {
		t.Error("env raw-query toggle not applied")
	}
	if cfg.Endpoint.QueryTimeout != 5*time.Second {
		t.Errorf("env timeout not applied, got %s", cfg.Endpoint.QueryTimeout)
	}
}

func TestLoadRejectsMalformedEnv(t *testing.T) {
	t.Setenv(EnvEndpoint, "http://localhost:3030/ds/sparql")
	t.Setenv(EnvAllowRawQueries, "yes please")

	if _, err := Load(""); err == nil {
		t.Error("expected an error for a malformed boolean")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestPasswordNeverReadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
endpoint:
  url: "http://localhost:3030/ds/sparql"
  password: "leaked"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Endpoint.Password != "" {
		t.Errorf("password must come from the environment only, got %q", cfg.Endpoint.Password)
	}
}

func TestLoadWithOverridesAppliesBeforeValidation(t *testing.T) {
	// No file, no env: only the override supplies the endpoint, so the
	// override must run before Validate.
	cfg, err := LoadWithOverrides("", func(cfg *Config) {
		cfg.Endpoint.URL = "http://localhost:3030/ds/sparql"
		cfg.Tools.AllowRawQueries = true
	})
	if err != nil {
		t.Fatalf("LoadWithOverrides() error = %v", err)
	}
	if cfg.Endpoint.URL != "http://localhost:3030/ds/sparql" {
		t.Errorf("override not applied, got %q", cfg.Endpoint.URL)
	}
	if !cfg.Tools.AllowRawQueries {
		t.Error("override not applied to tools config")
	}

	// An override producing an invalid config still fails validation.
	if _, err := LoadWithOverrides("", func(cfg *Config) {
		cfg.Endpoint.URL = "http://localhost:3030/ds/sparql"
		cfg.LogLevel = "loud"
	}); err == nil {
		t.Error("expected a validation error for a bad log level")
	}
}
