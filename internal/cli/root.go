// Package cli wires the cobra command surface for the MCP server binary.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/config"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/server"
)

const appName = "sparql-mcp-ontology"

// Version is overridden at build time via
// -ldflags "-X github.com/semanticmatter/sparql-mcp-ontology/internal/cli.Version=...".
var Version = "dev"

// NewRootCmd builds the root command: running it serves MCP over stdio.
func NewRootCmd() *cobra.Command {
	var (
		configPath      string
		endpoint        string
		graph           string
		allowRawQueries bool
		logLevel        string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "MCP server for RDF class hierarchies behind a SPARQL endpoint",
		Long: `sparql-mcp-ontology serves Model Context Protocol tools for navigating an
RDF class hierarchy exposed through a SPARQL 1.1 endpoint:

- resolve-class-ancestors walks a class's superclass chain to the root
- find-common-ancestor computes the lowest common ancestor of a class set
- fetch-class-subgraph extracts the triples reachable below a class
- saved discovery queries (list-named-graphs, list-root-classes, ...)

The protocol runs over stdio; all logging goes to stderr. Configuration is
layered: built-in defaults, then the optional YAML file, then SPARQL_*/MCP_*
environment variables, then these flags.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, configPath, endpoint, graph, allowRawQueries, logLevel)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "SPARQL query endpoint URL")
	cmd.Flags().StringVar(&graph, "graph", "", "Default named graph IRI")
	cmd.Flags().BoolVar(&allowRawQueries, "allow-raw-queries", false, "Register the read-sparql passthrough tool")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func run(cmd *cobra.Command, configPath, endpoint, graph string, allowRawQueries bool, logLevel string) error {
	// Flags are the outermost configuration layer.
	cfg, err := config.LoadWithOverrides(configPath, func(cfg *config.Config) {
		if endpoint != "" {
			cfg.Endpoint.URL = endpoint
		}
		if graph != "" {
			cfg.Endpoint.DefaultGraph = graph
		}
		if cmd.Flags().Changed("allow-raw-queries") {
			cfg.Tools.AllowRawQueries = allowRawQueries
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
	})
	if err != nil {
		return err
	}

	// stdout carries the MCP protocol, so logs must go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	srv, err := server.New(cfg, Version)
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}
