package hierarchy

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// FindCommonAncestor returns the lowest common ancestor of the given
// classes: the shared ancestor whose greatest depth across the individual
// ancestor paths is smallest, ties broken by lexicographically smallest URI.
// Every class counts as an ancestor of itself, so a single distinct input is
// its own answer and no query is issued for it. Classes in disjoint
// hierarchies yield ErrNoCommonAncestor.
//
// Ancestor paths resolve concurrently; the first failure cancels the
// remaining lookups and no partial answer is returned.
func (r *Resolver) FindCommonAncestor(ctx context.Context, classURIs []string, graphURI string) (lca string, err error) {
	defer func() {
		lcaResolutions.WithLabelValues(resolutionOutcome(err)).Inc()
	}()

	ctx, span := tracer().Start(ctx, "hierarchy.FindCommonAncestor",
		trace.WithAttributes(
			attribute.Int("ontology.classes", len(classURIs)),
			attribute.String("ontology.graph", graphURI),
		),
	)
	defer span.End()

	distinct := dedupe(classURIs)
	if len(distinct) == 0 {
		span.SetStatus(codes.Error, "no classes")
		return "", ErrNoClasses
	}
	for _, uri := range distinct {
		if err = validateInput(uri, graphURI); err != nil {
			span.SetStatus(codes.Error, "invalid input")
			return "", err
		}
	}
	if len(distinct) == 1 {
		span.SetStatus(codes.Ok, "single class")
		return distinct[0], nil
	}

	paths := make([][]string, len(distinct))
	g, gctx := errgroup.WithContext(ctx)
	for i, uri := range distinct {
		g.Go(func() error {
			p, rerr := r.ResolveAncestors(gctx, uri, graphURI)
			if rerr != nil {
				return rerr
			}
			paths[i] = p
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ancestor resolution failed")
		return "", err
	}

	// shared maps each common ancestor to its greatest depth across paths.
	shared := make(map[string]int, len(paths[0]))
	for depth, node := range paths[0] {
		shared[node] = depth
	}
	for _, path := range paths[1:] {
		next := make(map[string]int, len(shared))
		for depth, node := range path {
			if worst, ok := shared[node]; ok {
				if depth < worst {
					depth = worst
				}
				next[node] = depth
			}
		}
		shared = next
	}

	if len(shared) == 0 {
		err = fmt.Errorf("classes %s in <%s>: %w", strings.Join(distinct, ", "), graphURI, ErrNoCommonAncestor)
		span.SetStatus(codes.Error, "no common ancestor")
		return "", err
	}

	best, bestDepth := selectShallowest(shared)

	span.SetAttributes(
		attribute.String("ontology.lca", best),
		attribute.Int("ontology.lca_depth", bestDepth),
	)
	span.SetStatus(codes.Ok, "ancestor found")
	return best, nil
}

// selectShallowest returns the candidate with the smallest recorded depth,
// ties broken by lexicographically smallest URI so the answer is stable even
// when concurrent walks saw inconsistent endpoint states.
func selectShallowest(depths map[string]int) (string, int) {
	best, bestDepth := "", -1
	for node, depth := range depths {
		switch {
		case bestDepth == -1 || depth < bestDepth:
			best, bestDepth = node, depth
		case depth == bestDepth && node < best:
			best = node
		}
	}
	return best, bestDepth
}

// dedupe returns the distinct values of uris in first-occurrence order.
func dedupe(uris []string) []string {
	seen := make(map[string]bool, len(uris))
	out := make([]string, 0, len(uris))
	for _, u := range uris {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
