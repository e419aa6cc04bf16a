//go:build integration

package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/analytics"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/hierarchy"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/queries"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/sparql"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools"
)

// TestContext bundles a real client, resolver and tool dependencies for one
// test, plus a private named graph that is dropped on cleanup.
type TestContext struct {
	T     *testing.T
	Deps  *tools.ToolDependencies
	Graph string

	fuseki *FusekiContainer
}

// NewTestContext wires a fresh tool dependency set against the shared
// container and allocates a unique named graph for the test.
func NewTestContext(t *testing.T, fuseki *FusekiContainer) *TestContext {
	t.Helper()

	client, err := sparql.NewClient(sparql.ClientConfig{
		Endpoint: fuseki.QueryEndpoint(),
		Timeout:  30 * time.Second,
	})
	if err != nil {
		t.Fatalf("creating SPARQL client: %v", err)
	}
	t.Cleanup(client.Close)

	bank, err := queries.Load()
	if err != nil {
		t.Fatalf("loading query bank: %v", err)
	}

	resolver, err := hierarchy.New(client, bank)
	if err != nil {
		t.Fatalf("creating resolver: %v", err)
	}

	graph := "http://example.org/it/" + uuid.NewString()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := fuseki.Update(ctx, fmt.Sprintf("DROP SILENT GRAPH <%s>", graph)); err != nil {
			t.Logf("dropping test graph: %v", err)
		}
	})

	return &TestContext{
		T: t,
		Deps: &tools.ToolDependencies{
			SPARQLService:    client,
			AnalyticsService: analytics.NewService(false),
			QueryBank:        bank,
			Resolver:         resolver,
			DefaultGraph:     graph,
			MaxSubgraphDepth: -1,
		},
		Graph:  graph,
		fuseki: fuseki,
	}
}

// InsertTriples loads N-Triples-style statements into the test's graph.
// Each statement must already carry its terminating dot.
func (tc *TestContext) InsertTriples(statements ...string) {
	tc.T.Helper()

	update := fmt.Sprintf("INSERT DATA { GRAPH <%s> {\n%s\n} }", tc.Graph, strings.Join(statements, "\n"))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := tc.fuseki.Update(ctx, update); err != nil {
		tc.T.Fatalf("loading fixture triples: %v", err)
	}
}

// SubClassOf renders one rdfs:subClassOf statement for InsertTriples.
func SubClassOf(child, parent string) string {
	return fmt.Sprintf("<%s> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <%s> .", child, parent)
}

// CallTool invokes a tool handler and fails the test on a tool error.
func (tc *TestContext) CallTool(handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	tc.T.Helper()

	res := tc.CallToolExpectingOutcome(handler, args)
	if res.IsError {
		tc.T.Fatalf("tool call failed: %s", resultText(res))
	}
	return res
}

// CallToolExpectingOutcome invokes a tool handler and returns whatever came
// back, tool errors included.
func (tc *TestContext) CallToolExpectingOutcome(handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	tc.T.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := handler(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	})
	if err != nil {
		tc.T.Fatalf("tool handler returned a protocol error: %v", err)
	}
	return res
}

// ParseJSONResponse decodes the tool result's text content into out.
func (tc *TestContext) ParseJSONResponse(res *mcp.CallToolResult, out any) {
	tc.T.Helper()

	if err := json.Unmarshal([]byte(resultText(res)), out); err != nil {
		tc.T.Fatalf("parsing tool response: %v\nresponse: %s", err, resultText(res))
	}
}

func resultText(res *mcp.CallToolResult) string {
	var sb strings.Builder
	for _, content := range res.Content {
		if text, ok := content.(mcp.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String()
}
