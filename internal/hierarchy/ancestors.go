package hierarchy

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/queries"
)

// ResolveAncestors walks the hierarchy predicate upward from classURI and
// returns the path to the root, beginning with classURI itself at depth 0.
// A class that occurs in no triple of the graph fails with ErrClassNotFound;
// a node with multiple direct superclasses fails with
// *AmbiguousHierarchyError; a node reappearing on its own path fails with
// *CycleError. The result is deterministic for a fixed endpoint state.
func (r *Resolver) ResolveAncestors(ctx context.Context, classURI, graphURI string) (path []string, err error) {
	defer func() {
		ancestorWalks.WithLabelValues(resolutionOutcome(err)).Inc()
	}()

	ctx, span := tracer().Start(ctx, "hierarchy.ResolveAncestors",
		trace.WithAttributes(
			attribute.String("ontology.class", classURI),
			attribute.String("ontology.graph", graphURI),
		),
	)
	defer span.End()

	if err = validateInput(classURI, graphURI); err != nil {
		span.SetStatus(codes.Error, "invalid input")
		return nil, err
	}

	exists, err := r.nodeExists(ctx, classURI, graphURI)
	if err != nil {
		err = fmt.Errorf("resolving ancestors of <%s> in <%s>: %w", classURI, graphURI, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "existence probe failed")
		return nil, err
	}
	if !exists {
		err = fmt.Errorf("resolving ancestors of <%s> in <%s>: %w", classURI, graphURI, ErrClassNotFound)
		span.SetStatus(codes.Error, "class not found")
		return nil, err
	}

	path = []string{classURI}
	seen := map[string]int{classURI: 0}

	for current := classURI; ; {
		parents, qerr := r.directSuperclasses(ctx, current, graphURI)
		if qerr != nil {
			err = fmt.Errorf("resolving ancestors of <%s> in <%s>: %w", classURI, graphURI, qerr)
			span.RecordError(err)
			span.SetStatus(codes.Error, "superclass query failed")
			return nil, err
		}
		if len(parents) == 0 {
			break // root reached
		}
		if len(parents) > 1 {
			err = &AmbiguousHierarchyError{Class: current, Parents: parents}
			span.RecordError(err)
			span.SetStatus(codes.Error, "ambiguous hierarchy")
			return nil, err
		}

		parent := parents[0]
		if at, ok := seen[parent]; ok {
			err = &CycleError{Nodes: append(append([]string{}, path[at:]...), parent)}
			span.RecordError(err)
			span.SetStatus(codes.Error, "hierarchy cycle")
			return nil, err
		}
		seen[parent] = len(path)
		path = append(path, parent)
		current = parent
	}

	slog.Debug("resolved ancestor path",
		"class", classURI,
		"graph", graphURI,
		"depth", len(path)-1)
	span.SetAttributes(attribute.Int("ontology.path_length", len(path)))
	span.SetStatus(codes.Ok, "path resolved")
	return path, nil
}

// nodeExists probes whether node occurs as subject or object of any triple
// in the graph.
func (r *Resolver) nodeExists(ctx context.Context, nodeURI, graphURI string) (bool, error) {
	query, err := r.bank.Render(queries.NodeExists, map[string]any{
		"graph": graphURI,
		"node":  nodeURI,
	})
	if err != nil {
		return false, err
	}
	rows, err := r.svc.ExecuteSelect(ctx, query, graphURI)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// directSuperclasses returns the distinct IRI parents of classURI. Blank
// node and literal bindings cannot participate in the walk and are skipped.
func (r *Resolver) directSuperclasses(ctx context.Context, classURI, graphURI string) ([]string, error) {
	query, err := r.bank.Render(queries.DirectSuperclasses, map[string]any{
		"graph":     graphURI,
		"class":     classURI,
		"predicate": r.predicate,
	})
	if err != nil {
		return nil, err
	}
	rows, err := r.svc.ExecuteSelect(ctx, query, graphURI)
	if err != nil {
		return nil, err
	}

	parents := make([]string, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		term := row["superClass"]
		if term.IsZero() || !term.IsIRI() || seen[term.Value] {
			continue
		}
		seen[term.Value] = true
		parents = append(parents, term.Value)
	}
	return parents, nil
}
