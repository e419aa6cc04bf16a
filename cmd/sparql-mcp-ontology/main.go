// Command sparql-mcp-ontology serves MCP tools for navigating RDF class
// hierarchies behind a SPARQL endpoint.
package main

import (
	"fmt"
	"os"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
