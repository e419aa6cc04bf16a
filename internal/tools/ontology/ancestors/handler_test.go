package ancestors_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	analytics "github.com/semanticmatter/sparql-mcp-ontology/internal/analytics/mocks"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/hierarchy"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/queries"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/rdf"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/sparql"
	sparqlmocks "github.com/semanticmatter/sparql-mcp-ontology/internal/sparql/mocks"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/tools/ontology/ancestors"
	"go.uber.org/mock/gomock"
)

const (
	testGraph = "http://example.org/graphs/zoo"
	clsCat    = "http://example.org/zoo#Cat"
	clsMammal = "http://example.org/zoo#Mammal"
	clsAnimal = "http://example.org/zoo#Animal"
)

func newResolver(t *testing.T, svc sparql.Service) *hierarchy.Resolver {
	t.Helper()
	bank, err := queries.Load()
	if err != nil {
		t.Fatalf("loading query bank: %v", err)
	}
	resolver, err := hierarchy.New(svc, bank)
	if err != nil {
		t.Fatalf("building resolver: %v", err)
	}
	return resolver
}

func existsRow() []sparql.Binding {
	return []sparql.Binding{{"p": rdf.NewIRI(rdf.RDFSSubClassOf)}}
}

func superclassRow(parent string) []sparql.Binding {
	return []sparql.Binding{{"superClass": rdf.NewIRI(parent)}}
}

func TestResolveAncestorsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyticsService := analytics.NewMockService(ctrl)
	analyticsService.EXPECT().NewToolsEvent(gomock.Any()).AnyTimes()
	analyticsService.EXPECT().EmitEvent(gomock.Any()).AnyTimes()
	defer ctrl.Finish()

	t.Run("successfully resolves ancestor path", func(t *testing.T) {
		mockSPARQL := sparqlmocks.NewMockService(ctrl)
		mockSPARQL.EXPECT().ExecuteSelect(gomock.Any(), gomock.Any(), testGraph).Return(existsRow(), nil)
		mockSPARQL.EXPECT().ExecuteSelect(gomock.Any(), gomock.Any(), testGraph).Return(superclassRow(clsMammal), nil)
		mockSPARQL.EXPECT().ExecuteSelect(gomock.Any(), gomock.Any(), testGraph).Return(superclassRow(clsAnimal), nil)
		mockSPARQL.EXPECT().ExecuteSelect(gomock.Any(), gomock.Any(), testGraph).Return([]sparql.Binding{}, nil)

		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			Resolver:         newResolver(t, mockSPARQL),
		}

		handler := ancestors.Handler(deps)
		request := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Arguments: map[string]interface{}{
					"classUri": clsCat,
					"graphUri": testGraph,
				},
			},
		}
		result, err := handler(context.Background(), request)

		if err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}
		if result == nil || result.IsError {
			t.Fatal("Expected success result")
		}

		textContent := result.Content[0].(mcp.TextContent)
		var response struct {
			Class string   `json:"class"`
			Graph string   `json:"graph"`
			Path  []string `json:"path"`
			Depth int      `json:"depth"`
		}
		if err := json.Unmarshal([]byte(textContent.Text), &response); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}

		if response.Class != clsCat {
			t.Errorf("Expected class %s, got: %s", clsCat, response.Class)
		}
		if response.Graph != testGraph {
			t.Errorf("Expected graph %s, got: %s", testGraph, response.Graph)
		}
		wantPath := []string{clsCat, clsMammal, clsAnimal}
		if len(response.Path) != len(wantPath) {
			t.Fatalf("Expected path %v, got: %v", wantPath, response.Path)
		}
		for i, uri := range wantPath {
			if response.Path[i] != uri {
				t.Errorf("Expected path[%d] %s, got: %s", i, uri, response.Path[i])
			}
		}
		if response.Depth != 2 {
			t.Errorf("Expected depth 2, got: %d", response.Depth)
		}
	})

	t.Run("falls back to configured default graph", func(t *testing.T) {
		mockSPARQL := sparqlmocks.NewMockService(ctrl)
		mockSPARQL.EXPECT().ExecuteSelect(gomock.Any(), gomock.Any(), testGraph).Return(existsRow(), nil)
		mockSPARQL.EXPECT().ExecuteSelect(gomock.Any(), gomock.Any(), testGraph).Return([]sparql.Binding{}, nil)

		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			Resolver:         newResolver(t, mockSPARQL),
			DefaultGraph:     testGraph,
		}

		handler := ancestors.Handler(deps)
		request := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Arguments: map[string]interface{}{
					"classUri": clsAnimal,
				},
			},
		}
		result, err := handler(context.Background(), request)

		if err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}
		if result == nil || result.IsError {
			t.Fatal("Expected success result")
		}

		textContent := result.Content[0].(mcp.TextContent)
		if !strings.Contains(textContent.Text, testGraph) {
			t.Errorf("Expected response to carry default graph %s, got: %s", testGraph, textContent.Text)
		}
	})

	t.Run("missing classUri parameter", func(t *testing.T) {
		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			Resolver:         newResolver(t, sparqlmocks.NewMockService(ctrl)),
			DefaultGraph:     testGraph,
		}

		handler := ancestors.Handler(deps)
		result, err := handler(context.Background(), mcp.CallToolRequest{})

		if err != nil {
			t.Errorf("Expected no error from handler, got: %v", err)
		}
		if result == nil || !result.IsError {
			t.Error("Expected error result for missing classUri")
		}
	})

	t.Run("no graph available", func(t *testing.T) {
		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			Resolver:         newResolver(t, sparqlmocks.NewMockService(ctrl)),
		}

		handler := ancestors.Handler(deps)
		request := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Arguments: map[string]interface{}{
					"classUri": clsCat,
				},
			},
		}
		result, err := handler(context.Background(), request)

		if err != nil {
			t.Errorf("Expected no error from handler, got: %v", err)
		}
		if result == nil || !result.IsError {
			t.Error("Expected error result when no graph is available")
		}
	})

	t.Run("unknown class returns error result", func(t *testing.T) {
		mockSPARQL := sparqlmocks.NewMockService(ctrl)
		mockSPARQL.EXPECT().ExecuteSelect(gomock.Any(), gomock.Any(), testGraph).Return([]sparql.Binding{}, nil)

		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			Resolver:         newResolver(t, mockSPARQL),
			DefaultGraph:     testGraph,
		}

		handler := ancestors.Handler(deps)
		request := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Arguments: map[string]interface{}{
					"classUri": "http://example.org/zoo#Ghost",
				},
			},
		}
		result, err := handler(context.Background(), request)

		if err != nil {
			t.Errorf("Expected no error from handler, got: %v", err)
		}
		if result == nil || !result.IsError {
			t.Fatal("Expected error result for unknown class")
		}

		textContent := result.Content[0].(mcp.TextContent)
		if !strings.Contains(textContent.Text, "class not found") {
			t.Errorf("Expected not-found message, got: %s", textContent.Text)
		}
	})

	t.Run("query failure", func(t *testing.T) {
		mockSPARQL := sparqlmocks.NewMockService(ctrl)
		mockSPARQL.EXPECT().
			ExecuteSelect(gomock.Any(), gomock.Any(), testGraph).
			Return(nil, &sparql.QueryError{Endpoint: "http://localhost:3030/ds/sparql", Status: 503})

		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			Resolver:         newResolver(t, mockSPARQL),
			DefaultGraph:     testGraph,
		}

		handler := ancestors.Handler(deps)
		request := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Arguments: map[string]interface{}{
					"classUri": clsCat,
				},
			},
		}
		result, err := handler(context.Background(), request)

		if err != nil {
			t.Errorf("Expected no error from handler, got: %v", err)
		}
		if result == nil || !result.IsError {
			t.Error("Expected error result for query failure")
		}
	})

	t.Run("nil resolver", func(t *testing.T) {
		deps := &tools.ToolDependencies{
			AnalyticsService: analyticsService,
			Resolver:         nil,
		}

		handler := ancestors.Handler(deps)
		result, err := handler(context.Background(), mcp.CallToolRequest{})

		if err != nil {
			t.Errorf("Expected no error from handler, got: %v", err)
		}
		if result == nil || !result.IsError {
			t.Error("Expected error result for nil resolver")
		}
	})

	t.Run("nil analytics service", func(t *testing.T) {
		deps := &tools.ToolDependencies{
			AnalyticsService: nil,
			Resolver:         newResolver(t, sparqlmocks.NewMockService(ctrl)),
		}

		handler := ancestors.Handler(deps)
		result, err := handler(context.Background(), mcp.CallToolRequest{})

		if err != nil {
			t.Errorf("Expected no error from handler, got: %v", err)
		}
		if result == nil || !result.IsError {
			t.Error("Expected error result for nil analytics service")
		}
	})
}

func TestResolveAncestorsSpec(t *testing.T) {
	spec := ancestors.Spec()

	if spec.Name != "resolve-class-ancestors" {
		t.Errorf("Expected tool name 'resolve-class-ancestors', got: %s", spec.Name)
	}
	if spec.Description == "" {
		t.Error("Expected non-empty description")
	}
	if !strings.Contains(spec.Description, "rdfs:subClassOf") {
		t.Error("Expected description to mention rdfs:subClassOf")
	}
}
