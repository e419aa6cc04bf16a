// Package server assembles the MCP server: configuration, the decorated
// SPARQL service, the query bank, the hierarchy resolver and the tool
// surface, served over stdio.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/analytics"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/config"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/hierarchy"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/queries"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/sparql"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools/dynamic"
	toolsembed "github.com/semanticmatter/sparql-mcp-ontology/tools"
)

const serverName = "sparql-mcp-ontology"

// OntologyMCPServer owns every long-lived component of the running server.
type OntologyMCPServer struct {
	MCPServer *server.MCPServer

	config        *config.Config
	sparqlService sparql.Service
	anService     analytics.Service
	queryBank     *queries.Bank
	resolver      *hierarchy.Resolver
	version       string
}

// New wires a server from the effective configuration. The SPARQL client is
// decorated inside-out: rate limiting closest to the wire, retries outside
// it, so each retry attempt also waits for a token.
func New(cfg *config.Config, version string) (*OntologyMCPServer, error) {
	bank, err := queries.Load()
	if err != nil {
		return nil, fmt.Errorf("loading query bank: %w", err)
	}

	client, err := sparql.NewClient(sparql.ClientConfig{
		Endpoint:  cfg.Endpoint.URL,
		Username:  cfg.Endpoint.Username,
		Password:  cfg.Endpoint.Password,
		Timeout:   cfg.Endpoint.QueryTimeout,
		UserAgent: serverName + "/" + version,
	})
	if err != nil {
		return nil, fmt.Errorf("creating SPARQL client: %w", err)
	}

	var svc sparql.Service = client
	if cfg.RateLimit.QPS > 0 {
		svc = sparql.WithRateLimit(svc, cfg.RateLimit.QPS, cfg.RateLimit.Burst)
	}
	if cfg.Retry.MaxRetries > 0 {
		svc = sparql.WithRetry(svc, sparql.RetryPolicy{
			MaxRetries:     cfg.Retry.MaxRetries,
			InitialBackoff: cfg.Retry.BaseDelay,
			MaxBackoff:     cfg.Retry.MaxDelay,
		})
	}

	resolver, err := hierarchy.New(svc, bank,
		hierarchy.WithHierarchyPredicate(cfg.Hierarchy.Predicate),
		hierarchy.WithPopulatePredicates(cfg.Hierarchy.PopulatePredicates),
	)
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("creating hierarchy resolver: %w", err)
	}

	// Saved query configs ship inside the binary.
	dynamic.EmbeddedFS = toolsembed.ConfigFiles

	s := &OntologyMCPServer{
		config:        cfg,
		sparqlService: svc,
		anService:     analytics.NewService(!cfg.Telemetry.Disabled),
		queryBank:     bank,
		resolver:      resolver,
		version:       version,
	}
	s.MCPServer = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	return s, nil
}

// Start verifies endpoint connectivity, registers the tool surface and
// serves the MCP protocol over stdio until the client disconnects.
func (s *OntologyMCPServer) Start(ctx context.Context) error {
	if err := s.sparqlService.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("SPARQL endpoint %s is not reachable: %w", s.sparqlService.Endpoint(), err)
	}
	slog.Info("connected to SPARQL endpoint", "endpoint", s.sparqlService.Endpoint(), "graph", s.config.Endpoint.DefaultGraph)

	registered, err := s.registerTools()
	if err != nil {
		return fmt.Errorf("registering tools: %w", err)
	}

	s.anService.EmitEvent(s.anService.NewStartupEvent(analytics.StartupEventInfo{
		Version:      s.version,
		Endpoint:     s.sparqlService.Endpoint(),
		DefaultGraph: s.config.Endpoint.DefaultGraph,
		ToolsEnabled: registered,
	}))

	slog.Info("serving MCP over stdio", "tools", registered, "version", s.version)
	return server.ServeStdio(s.MCPServer)
}

// Close releases the underlying SPARQL connections.
func (s *OntologyMCPServer) Close() {
	s.sparqlService.Close()
}
