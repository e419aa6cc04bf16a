package hierarchy

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ancestorWalks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ontology_ancestor_walks_total",
		Help: "Ancestor path resolutions, labeled by outcome.",
	}, []string{"outcome"})

	lcaResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ontology_lca_resolutions_total",
		Help: "Lowest-common-ancestor resolutions, labeled by outcome.",
	}, []string{"outcome"})

	subgraphWalks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ontology_subgraph_walks_total",
		Help: "Subgraph population runs, labeled by outcome.",
	}, []string{"outcome"})

	subgraphTriplesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ontology_subgraph_triples_added_total",
		Help: "Distinct triples added to populated subgraphs.",
	})
)

// resolutionOutcome buckets an operation result for the outcome label.
func resolutionOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrClassNotFound):
		return "not_found"
	case errors.Is(err, ErrNoCommonAncestor):
		return "no_common_ancestor"
	}
	var (
		cycleErr     *CycleError
		ambiguousErr *AmbiguousHierarchyError
	)
	switch {
	case errors.As(err, &cycleErr):
		return "cycle"
	case errors.As(err, &ambiguousErr):
		return "ambiguous"
	}
	return "error"
}
