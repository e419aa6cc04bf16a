package hierarchy

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/queries"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/rdf"
	"github.com/semanticmatter/sparql-mcp-ontology/internal/sparql"
)

const testGraph = "http://example.org/graphs/zoo"

const (
	clsAnimal  = "http://example.org/zoo#Animal"
	clsMammal  = "http://example.org/zoo#Mammal"
	clsCat     = "http://example.org/zoo#Cat"
	clsDog     = "http://example.org/zoo#Dog"
	clsReptile = "http://example.org/zoo#Reptile"
	clsSnake   = "http://example.org/zoo#Snake"
	clsRock    = "http://example.org/zoo#Rock"
	clsMineral = "http://example.org/zoo#Mineral"
)

func subClassOf(child, parent string) rdf.Triple {
	return rdf.NewTriple(rdf.NewIRI(child), rdf.NewIRI(rdf.RDFSSubClassOf), rdf.NewIRI(parent))
}

func prefLabel(subject, label string) rdf.Triple {
	return rdf.NewTriple(rdf.NewIRI(subject), rdf.NewIRI(rdf.SKOSPrefLabel), rdf.NewLangLiteral(label, "en"))
}

// zooTriples is the shared happy-path fixture: two mammal leaves, a reptile
// branch, and a disjoint mineral root.
func zooTriples() []rdf.Triple {
	return []rdf.Triple{
		subClassOf(clsCat, clsMammal),
		subClassOf(clsDog, clsMammal),
		subClassOf(clsMammal, clsAnimal),
		subClassOf(clsReptile, clsAnimal),
		subClassOf(clsSnake, clsReptile),
		subClassOf(clsRock, clsMineral),
		prefLabel(clsCat, "cat"),
		prefLabel(clsAnimal, "animal"),
	}
}

func newTestResolver(t *testing.T, svc sparql.Service, opts ...Option) *Resolver {
	t.Helper()
	bank, err := queries.Load()
	require.NoError(t, err)
	r, err := New(svc, bank, opts...)
	require.NoError(t, err)
	return r
}

var (
	superclassPattern = regexp.MustCompile(`<([^>]+)> <([^>]+)> \?superClass`)
	existsPattern     = regexp.MustCompile(`\{ <([^>]+)> \?p \?o \. \}`)
	childPattern      = regexp.MustCompile(`\?child <([^>]+)> \?parent`)
	parentFilter      = regexp.MustCompile(`FILTER\(\?parent IN \(([^)]+)\)\)`)
	subjectFilter     = regexp.MustCompile(`FILTER\(\?subject IN \(([^)]+)\)\)`)
	predicateFilter   = regexp.MustCompile(`FILTER\(\?predicate IN \(([^)]+)\)\)`)
)

// scriptedService answers the bank's rendered queries from an in-memory
// triple set, so traversals are exercised against the exact query text a
// real endpoint would receive. It deliberately skips DISTINCT handling:
// duplicate fixture triples come back as duplicate rows.
type scriptedService struct {
	mu      sync.Mutex
	triples []rdf.Triple
	queries []string

	// failWhen, when set, fails any query whose text it rejects.
	failWhen func(query string) error
	// blockWhen, when set, parks matching queries until ctx is canceled.
	blockWhen func(query string) bool
}

func newScriptedService(triples ...rdf.Triple) *scriptedService {
	return &scriptedService{triples: triples}
}

func (s *scriptedService) ExecuteSelect(ctx context.Context, query, graphURI string) ([]sparql.Binding, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()

	if s.blockWhen != nil && s.blockWhen(query) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.failWhen != nil {
		if err := s.failWhen(query); err != nil {
			return nil, err
		}
	}

	switch {
	case strings.Contains(query, "?superClass"):
		return s.answerSuperclasses(query)
	case strings.Contains(query, "LIMIT 1"):
		return s.answerNodeExists(query)
	case strings.Contains(query, "?child"):
		return s.answerChildEdges(query)
	case strings.Contains(query, "?subject"):
		return s.answerSubjectTriples(query)
	}
	return nil, fmt.Errorf("scripted service: unrecognized query:\n%s", query)
}

func (s *scriptedService) VerifyConnectivity(context.Context) error { return nil }
func (s *scriptedService) Endpoint() string                         { return "scripted://fixture" }
func (s *scriptedService) Close()                                   {}

func (s *scriptedService) queryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

func (s *scriptedService) answerSuperclasses(query string) ([]sparql.Binding, error) {
	m := superclassPattern.FindStringSubmatch(query)
	if m == nil {
		return nil, fmt.Errorf("scripted service: no class in superclass query:\n%s", query)
	}
	class, predicate := m[1], m[2]

	var out []sparql.Binding
	seen := make(map[rdf.Term]bool)
	for _, t := range s.triples {
		if t.Subject != rdf.NewIRI(class) || t.Predicate.Value != predicate || seen[t.Object] {
			continue
		}
		seen[t.Object] = true
		out = append(out, sparql.Binding{"superClass": t.Object})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i]["superClass"].Value < out[j]["superClass"].Value
	})
	return out, nil
}

func (s *scriptedService) answerNodeExists(query string) ([]sparql.Binding, error) {
	m := existsPattern.FindStringSubmatch(query)
	if m == nil {
		return nil, fmt.Errorf("scripted service: no node in existence probe:\n%s", query)
	}
	node := m[1]
	for _, t := range s.triples {
		if (t.Subject.IsIRI() && t.Subject.Value == node) || (t.Object.IsIRI() && t.Object.Value == node) {
			return []sparql.Binding{{"p": t.Predicate}}, nil
		}
	}
	return nil, nil
}

func (s *scriptedService) answerChildEdges(query string) ([]sparql.Binding, error) {
	pm := childPattern.FindStringSubmatch(query)
	fm := parentFilter.FindStringSubmatch(query)
	if pm == nil || fm == nil {
		return nil, fmt.Errorf("scripted service: malformed child query:\n%s", query)
	}
	predicate, parents := pm[1], iriSet(fm[1])

	var edges []rdf.Triple
	for _, t := range s.triples {
		if t.Predicate.Value == predicate && t.Object.IsIRI() && parents[t.Object.Value] {
			edges = append(edges, t)
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Object.Value != edges[j].Object.Value {
			return edges[i].Object.Value < edges[j].Object.Value
		}
		return edges[i].Subject.Value < edges[j].Subject.Value
	})

	out := make([]sparql.Binding, 0, len(edges))
	for _, t := range edges {
		out = append(out, sparql.Binding{"child": t.Subject, "parent": t.Object})
	}
	return out, nil
}

func (s *scriptedService) answerSubjectTriples(query string) ([]sparql.Binding, error) {
	sm := subjectFilter.FindStringSubmatch(query)
	pm := predicateFilter.FindStringSubmatch(query)
	if sm == nil || pm == nil {
		return nil, fmt.Errorf("scripted service: malformed subject query:\n%s", query)
	}
	subjects, predicates := iriSet(sm[1]), iriSet(pm[1])

	var matched []rdf.Triple
	for _, t := range s.triples {
		if t.Subject.IsIRI() && subjects[t.Subject.Value] && predicates[t.Predicate.Value] {
			matched = append(matched, t)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].String() < matched[j].String() })

	out := make([]sparql.Binding, 0, len(matched))
	for _, t := range matched {
		out = append(out, sparql.Binding{"subject": t.Subject, "predicate": t.Predicate, "object": t.Object})
	}
	return out, nil
}

// iriSet splits a rendered iriList argument back into its member IRIs.
func iriSet(csv string) map[string]bool {
	set := make(map[string]bool)
	for _, part := range strings.Split(csv, ",") {
		set[strings.Trim(strings.TrimSpace(part), "<>")] = true
	}
	return set
}
