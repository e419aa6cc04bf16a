package read_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	analytics "github.com/semanticmatter/sparql-mcp-ontology/internal/analytics/mocks"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/rdf"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/sparql"
	sparqlmocks "github.com/semanticmatter/sparql-mcp-ontology/internal/sparql/mocks"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools/sparql/read"
	"go.uber.org/mock/gomock"
)

const testGraph = "http://example.org/graphs/zoo"

func callHandler(t *testing.T, deps *tools.ToolDependencies, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	handler := read.Handler(deps)
	result, err := handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	})
	if err != nil {
		t.Fatalf("Expected no error from handler, got: %v", err)
	}
	if result == nil {
		t.Fatal("Expected non-nil result")
	}
	return result
}

func TestReadSPARQLHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyticsService := analytics.NewMockService(ctrl)
	analyticsService.EXPECT().NewToolsEvent(gomock.Any()).AnyTimes()
	analyticsService.EXPECT().EmitEvent(gomock.Any()).AnyTimes()
	defer ctrl.Finish()

	t.Run("executes a full query", func(t *testing.T) {
		query := "SELECT ?label WHERE { GRAPH <" + testGraph + "> { ?cls <" + rdf.RDFSLabel + "> ?label } }"

		mockSPARQL := sparqlmocks.NewMockService(ctrl)
		mockSPARQL.EXPECT().
			ExecuteSelect(gomock.Any(), query, testGraph).
			Return([]sparql.Binding{
				{"label": rdf.NewLangLiteral("Animal", "en")},
			}, nil)

		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			SPARQLService:    mockSPARQL,
			DefaultGraph:     testGraph,
		}

		result := callHandler(t, deps, map[string]interface{}{"query": query})

		if result.IsError {
			t.Fatal("Expected success result")
		}

		textContent := result.Content[0].(mcp.TextContent)
		var rows []map[string]map[string]string
		if err := json.Unmarshal([]byte(textContent.Text), &rows); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("Expected 1 row, got: %d", len(rows))
		}
		if rows[0]["label"]["value"] != "Animal" || rows[0]["label"]["xml:lang"] != "en" {
			t.Errorf("Expected Animal@en label, got: %v", rows[0]["label"])
		}
	})

	t.Run("wraps a pattern in the requested graph", func(t *testing.T) {
		mockSPARQL := sparqlmocks.NewMockService(ctrl)
		mockSPARQL.EXPECT().
			ExecuteSelect(gomock.Any(), gomock.Any(), testGraph).
			DoAndReturn(func(_ context.Context, query, _ string) ([]sparql.Binding, error) {
				if !strings.HasPrefix(query, "SELECT * WHERE { GRAPH <"+testGraph+"> {") {
					t.Errorf("Expected wrapped pattern, got: %s", query)
				}
				if !strings.Contains(query, "?s ?p ?o") {
					t.Errorf("Expected pattern inside wrapper, got: %s", query)
				}
				return nil, nil
			})

		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			SPARQLService:    mockSPARQL,
			DefaultGraph:     testGraph,
		}

		result := callHandler(t, deps, map[string]interface{}{"pattern": "?s ?p ?o"})

		if result.IsError {
			t.Fatal("Expected success result")
		}
	})

	t.Run("rejects update queries", func(t *testing.T) {
		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			SPARQLService:    sparqlmocks.NewMockService(ctrl),
			DefaultGraph:     testGraph,
		}

		result := callHandler(t, deps, map[string]interface{}{
			"query": "DROP GRAPH <" + testGraph + ">",
		})

		if !result.IsError {
			t.Fatal("Expected error result for update query")
		}
		textContent := result.Content[0].(mcp.TextContent)
		if !strings.Contains(textContent.Text, "DROP") {
			t.Errorf("Expected rejection message naming the keyword, got: %s", textContent.Text)
		}
	})

	t.Run("rejects update keywords smuggled into read queries", func(t *testing.T) {
		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			SPARQLService:    sparqlmocks.NewMockService(ctrl),
			DefaultGraph:     testGraph,
		}

		result := callHandler(t, deps, map[string]interface{}{
			"query": "SELECT ?s WHERE { ?s ?p ?o } ; DELETE WHERE { ?s ?p ?o }",
		})

		if !result.IsError {
			t.Error("Expected error result for smuggled update keyword")
		}
	})

	t.Run("pattern cannot break out of the graph clause", func(t *testing.T) {
		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			SPARQLService:    sparqlmocks.NewMockService(ctrl),
			DefaultGraph:     testGraph,
		}

		result := callHandler(t, deps, map[string]interface{}{
			"pattern": "?s ?p ?o } } ; DROP GRAPH <" + testGraph + "> ; SELECT * WHERE { {",
		})

		if !result.IsError {
			t.Error("Expected error result for pattern escape attempt")
		}
	})

	t.Run("requires query or pattern", func(t *testing.T) {
		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			SPARQLService:    sparqlmocks.NewMockService(ctrl),
			DefaultGraph:     testGraph,
		}

		result := callHandler(t, deps, map[string]interface{}{})

		if !result.IsError {
			t.Error("Expected error result when both query and pattern are missing")
		}
	})

	t.Run("rejects query and pattern together", func(t *testing.T) {
		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			SPARQLService:    sparqlmocks.NewMockService(ctrl),
			DefaultGraph:     testGraph,
		}

		result := callHandler(t, deps, map[string]interface{}{
			"query":   "SELECT * WHERE { ?s ?p ?o }",
			"pattern": "?s ?p ?o",
		})

		if !result.IsError {
			t.Error("Expected error result for mutually exclusive parameters")
		}
	})

	t.Run("pattern requires a graph", func(t *testing.T) {
		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			SPARQLService:    sparqlmocks.NewMockService(ctrl),
		}

		result := callHandler(t, deps, map[string]interface{}{"pattern": "?s ?p ?o"})

		if !result.IsError {
			t.Error("Expected error result for pattern without graph")
		}
	})

	t.Run("endpoint failure", func(t *testing.T) {
		mockSPARQL := sparqlmocks.NewMockService(ctrl)
		mockSPARQL.EXPECT().
			ExecuteSelect(gomock.Any(), gomock.Any(), testGraph).
			Return(nil, errors.New("connection refused"))

		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			SPARQLService:    mockSPARQL,
			DefaultGraph:     testGraph,
		}

		result := callHandler(t, deps, map[string]interface{}{
			"query": "SELECT * WHERE { ?s ?p ?o }",
		})

		if !result.IsError {
			t.Error("Expected error result for endpoint failure")
		}
	})

	t.Run("nil sparql service", func(t *testing.T) {
		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
		}

		result := callHandler(t, deps, map[string]interface{}{
			"query": "SELECT * WHERE { ?s ?p ?o }",
		})

		if !result.IsError {
			t.Error("Expected error result for nil sparql service")
		}
	})

	t.Run("nil analytics service", func(t *testing.T) {
		deps := &tools.ToolDependencies{
			SPARQLService: sparqlmocks.NewMockService(ctrl),
		}

		result := callHandler(t, deps, map[string]interface{}{
			"query": "SELECT * WHERE { ?s ?p ?o }",
		})

		if !result.IsError {
			t.Error("Expected error result for nil analytics service")
		}
	})
}

func TestReadSPARQLSpec(t *testing.T) {
	spec := read.Spec()

	if spec.Name != "read-sparql" {
		t.Errorf("Expected tool name 'read-sparql', got: %s", spec.Name)
	}
	for _, phrase := range []string{"read-only", "pattern", "GRAPH"} {
		if !strings.Contains(spec.Description, phrase) {
			t.Errorf("Expected description to contain %q", phrase)
		}
	}
}
