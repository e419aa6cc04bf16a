package hierarchy

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/queries"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/rdf"
)

// PopulateOption configures a single PopulateSubgraph run.
type PopulateOption func(*populateSettings)

type populateSettings struct {
	maxDepth int
}

// WithMaxDepth bounds the descent: 0 keeps only the root's own triples, 1
// adds its direct subclasses, and so on. Negative means unbounded, the
// default.
func WithMaxDepth(depth int) PopulateOption {
	return func(s *populateSettings) { s.maxDepth = depth }
}

// hierarchyEdge is one (child, predicate, parent) row of the child-discovery
// query, predicate fixed to the resolver's hierarchy predicate.
type hierarchyEdge struct {
	child  string
	parent string
}

// PopulateSubgraph collects the descendant closure of rootURI into target
// and returns it. A nil target starts a fresh graph; otherwise the given
// graph is mutated in place, so triples merged before a failure remain. The
// descent is level by level: each level issues one batched fetch of the
// frontier's triples, restricted to the populate predicate allowlist, and
// one batched child-discovery query over the hierarchy predicate.
//
// Insertion is set-semantic, so repeated runs against unchanged data leave
// the graph unchanged. A child rediscovered on its own ancestor chain fails
// with *CycleError; a child reached through a second unrelated parent fails
// with *AmbiguousHierarchyError.
func (r *Resolver) PopulateSubgraph(ctx context.Context, rootURI, graphURI string, target *rdf.Graph, opts ...PopulateOption) (_ *rdf.Graph, err error) {
	defer func() {
		subgraphWalks.WithLabelValues(resolutionOutcome(err)).Inc()
	}()

	ctx, span := tracer().Start(ctx, "hierarchy.PopulateSubgraph",
		trace.WithAttributes(
			attribute.String("ontology.root", rootURI),
			attribute.String("ontology.graph", graphURI),
		),
	)
	defer span.End()

	settings := populateSettings{maxDepth: -1}
	for _, opt := range opts {
		opt(&settings)
	}

	if err = validateInput(rootURI, graphURI); err != nil {
		span.SetStatus(codes.Error, "invalid input")
		return nil, err
	}
	if target == nil {
		target = rdf.NewGraph()
	}

	var (
		frontier = []string{rootURI}
		visited  = map[string]bool{rootURI: true}
		parentOf = make(map[string]string)
		added    int
	)

	for depth := 0; len(frontier) > 0; depth++ {
		n, ferr := r.frontierTriples(ctx, frontier, graphURI, target)
		if ferr != nil {
			err = fmt.Errorf("populating subgraph of <%s> in <%s>: %w", rootURI, graphURI, ferr)
			span.RecordError(err)
			span.SetStatus(codes.Error, "triple fetch failed")
			return nil, err
		}
		added += n

		if settings.maxDepth >= 0 && depth >= settings.maxDepth {
			break
		}

		edges, ferr := r.directSubclasses(ctx, frontier, graphURI)
		if ferr != nil {
			err = fmt.Errorf("populating subgraph of <%s> in <%s>: %w", rootURI, graphURI, ferr)
			span.RecordError(err)
			span.SetStatus(codes.Error, "child discovery failed")
			return nil, err
		}

		var next []string
		for _, e := range edges {
			if visited[e.child] && parentOf[e.child] == e.parent {
				continue // duplicate row for a known edge
			}
			if loop := ancestorLoop(parentOf, e.child, e.parent); loop != nil {
				err = &CycleError{Nodes: loop}
				span.RecordError(err)
				span.SetStatus(codes.Error, "hierarchy cycle")
				return nil, err
			}
			if visited[e.child] {
				err = &AmbiguousHierarchyError{
					Class:   e.child,
					Parents: []string{parentOf[e.child], e.parent},
				}
				span.RecordError(err)
				span.SetStatus(codes.Error, "ambiguous hierarchy")
				return nil, err
			}
			visited[e.child] = true
			parentOf[e.child] = e.parent
			next = append(next, e.child)
		}
		frontier = next
	}

	subgraphTriplesAdded.Add(float64(added))
	slog.Debug("populated subgraph",
		"root", rootURI,
		"graph", graphURI,
		"triples_added", added,
		"graph_size", target.Len())
	span.SetAttributes(
		attribute.Int("ontology.triples_added", added),
		attribute.Int("ontology.graph_size", target.Len()),
	)
	span.SetStatus(codes.Ok, "subgraph populated")
	return target, nil
}

// frontierTriples fetches the allowlisted triples of every frontier subject
// and merges them into target, returning the number of triples that were new.
func (r *Resolver) frontierTriples(ctx context.Context, frontier []string, graphURI string, target *rdf.Graph) (int, error) {
	query, err := r.bank.Render(queries.SubjectTriples, map[string]any{
		"graph":      graphURI,
		"subjects":   frontier,
		"predicates": r.populatePredicates,
	})
	if err != nil {
		return 0, err
	}
	rows, err := r.svc.ExecuteSelect(ctx, query, graphURI)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, row := range rows {
		s, p, o := row["subject"], row["predicate"], row["object"]
		if s.IsZero() || p.IsZero() || o.IsZero() {
			continue
		}
		if target.Add(rdf.NewTriple(s, p, o)) {
			added++
		}
	}
	return added, nil
}

// directSubclasses returns the (child, parent) hierarchy edges below the
// frontier of parents. Blank node children cannot be walked further and are
// skipped.
func (r *Resolver) directSubclasses(ctx context.Context, parents []string, graphURI string) ([]hierarchyEdge, error) {
	query, err := r.bank.Render(queries.DirectSubclassesOf, map[string]any{
		"graph":     graphURI,
		"predicate": r.predicate,
		"parents":   parents,
	})
	if err != nil {
		return nil, err
	}
	rows, err := r.svc.ExecuteSelect(ctx, query, graphURI)
	if err != nil {
		return nil, err
	}

	edges := make([]hierarchyEdge, 0, len(rows))
	for _, row := range rows {
		child, parent := row["child"], row["parent"]
		if child.IsZero() || !child.IsIRI() || parent.IsZero() || !parent.IsIRI() {
			continue
		}
		edges = append(edges, hierarchyEdge{child: child.Value, parent: parent.Value})
	}
	return edges, nil
}

// ancestorLoop reports whether child already sits on parent's ancestor chain
// in the walked tree. It returns the loop's node sequence in descent order,
// closed with child, or nil when there is no loop.
func ancestorLoop(parentOf map[string]string, child, parent string) []string {
	chain := []string{parent}
	for node := parent; node != child; {
		up, ok := parentOf[node]
		if !ok {
			return nil
		}
		node = up
		chain = append(chain, node)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return append(chain, child)
}
