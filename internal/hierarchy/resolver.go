// Package hierarchy answers class-hierarchy questions over a SPARQL
// endpoint: ancestor paths, lowest common ancestors and descendant
// subgraphs. All traversal is iterative and issues one query per step or per
// level, so graphs never load into memory whole.
//
// The hierarchy is modeled as single-inheritance: a class with more than one
// direct superclass fails with *AmbiguousHierarchyError, and loops fail with
// *CycleError carrying the observed node sequence.
package hierarchy

import (
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/queries"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/rdf"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/sparql"
)

var (
	tracerOnce sync.Once
	pkgTracer  trace.Tracer
)

func tracer() trace.Tracer {
	tracerOnce.Do(func() {
		pkgTracer = otel.Tracer("sparql-mcp-ontology/internal/hierarchy")
	})
	return pkgTracer
}

// DefaultHierarchyPredicate is the predicate traversals follow unless
// WithHierarchyPredicate overrides it.
const DefaultHierarchyPredicate = rdf.RDFSSubClassOf

// DefaultPopulatePredicates returns the predicate allowlist PopulateSubgraph
// applies unless WithPopulatePredicates overrides it: class and property
// structure, labels, and function-ontology annotations.
func DefaultPopulatePredicates() []string {
	return []string{
		rdf.RDFSSubClassOf,
		rdf.RDFSSubPropertyOf,
		rdf.RDFSDomain,
		rdf.RDFSRange,
		rdf.RDFType,
		rdf.SKOSPrefLabel,
		rdf.OWLPropertyDisjointWith,
		rdf.FNOExpects,
		rdf.FNOPredicate,
		rdf.FNOType,
		rdf.FNOReturns,
		rdf.FNOExecutes,
	}
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHierarchyPredicate overrides the predicate traversals follow.
func WithHierarchyPredicate(predicateIRI string) Option {
	return func(r *Resolver) { r.predicate = predicateIRI }
}

// WithPopulatePredicates overrides the predicate allowlist applied when
// populating subgraphs.
func WithPopulatePredicates(predicateIRIs []string) Option {
	return func(r *Resolver) { r.populatePredicates = predicateIRIs }
}

// Resolver resolves hierarchy queries through a sparql.Service using the
// embedded query bank. It is safe for concurrent use.
type Resolver struct {
	svc                sparql.Service
	bank               *queries.Bank
	predicate          string
	populatePredicates []string
}

// New builds a Resolver. Predicate configuration is validated here so
// traversals can assume well-formed IRIs.
func New(svc sparql.Service, bank *queries.Bank, opts ...Option) (*Resolver, error) {
	if svc == nil {
		return nil, fmt.Errorf("sparql service is required")
	}
	if bank == nil {
		return nil, fmt.Errorf("query bank is required")
	}

	r := &Resolver{
		svc:                svc,
		bank:               bank,
		predicate:          DefaultHierarchyPredicate,
		populatePredicates: DefaultPopulatePredicates(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := rdf.ValidateIRI(r.predicate); err != nil {
		return nil, fmt.Errorf("hierarchy predicate: %w", err)
	}
	if len(r.populatePredicates) == 0 {
		return nil, fmt.Errorf("populate predicate allowlist is empty")
	}
	for _, p := range r.populatePredicates {
		if err := rdf.ValidateIRI(p); err != nil {
			return nil, fmt.Errorf("populate predicate: %w", err)
		}
	}
	return r, nil
}

// HierarchyPredicate returns the predicate the resolver follows.
func (r *Resolver) HierarchyPredicate() string { return r.predicate }

func validateInput(classURI, graphURI string) error {
	if err := rdf.ValidateIRI(classURI); err != nil {
		return fmt.Errorf("class URI: %w", err)
	}
	if err := rdf.ValidateIRI(graphURI); err != nil {
		return fmt.Errorf("graph URI: %w", err)
	}
	return nil
}
