package rdf

import (
	"io"
	"sort"
	"strings"
	"sync"
)

// Graph is a mutable set of triples. Inserting a triple that is already
// present has no effect, so repeated population runs converge on the same
// triple set. All methods are safe for concurrent use; mutation is guarded by
// a single lock because the populate contract assumes one logical writer.
type Graph struct {
	mu      sync.RWMutex
	triples map[Triple]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{triples: make(map[Triple]struct{})}
}

// Add inserts a triple, reporting whether it was not already present.
func (g *Graph) Add(t Triple) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.triples[t]; ok {
		return false
	}
	g.triples[t] = struct{}{}
	return true
}

// Has reports whether the graph contains the triple.
func (g *Graph) Has(t Triple) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.triples[t]
	return ok
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.triples)
}

// Clear removes every triple.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.triples = make(map[Triple]struct{})
}

// Triples returns all triples sorted by subject, predicate, object.
func (g *Graph) Triples() []Triple {
	g.mu.RLock()
	out := make([]Triple, 0, len(g.triples))
	for t := range g.triples {
		out = append(out, t)
	}
	g.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// Match returns all triples matching the given pattern, where a nil term is a
// wildcard. Results are sorted.
func (g *Graph) Match(s, p, o *Term) []Triple {
	g.mu.RLock()
	out := make([]Triple, 0)
	for t := range g.triples {
		if (s == nil || t.Subject == *s) &&
			(p == nil || t.Predicate == *p) &&
			(o == nil || t.Object == *o) {
			out = append(out, t)
		}
	}
	g.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// Subjects returns the distinct subject terms, sorted by rendering.
func (g *Graph) Subjects() []Term {
	g.mu.RLock()
	set := make(map[Term]struct{})
	for t := range g.triples {
		set[t.Subject] = struct{}{}
	}
	g.mu.RUnlock()
	out := make([]Term, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Merge inserts every triple from other, returning how many were new.
func (g *Graph) Merge(other *Graph) int {
	added := 0
	for _, t := range other.Triples() {
		if g.Add(t) {
			added++
		}
	}
	return added
}

// WriteNTriples writes the graph in N-Triples form, one statement per line,
// in the deterministic Triples() order.
func (g *Graph) WriteNTriples(w io.Writer) error {
	for _, t := range g.Triples() {
		if _, err := io.WriteString(w, t.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// NTriples returns the graph serialized as an N-Triples document.
func (g *Graph) NTriples() string {
	var b strings.Builder
	for _, t := range g.Triples() {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// PathOptions restricts the edges and nodes a path search may use.
type PathOptions struct {
	// Predicates limits traversal to edges with these predicates. Empty
	// means any predicate.
	Predicates []Term
	// Avoid lists nodes the search must never enter.
	Avoid []Term
}

// Paths finds every simple path between origin and dest, treating triples as
// undirected edges. Each returned path is the ordered node sequence from
// origin to dest inclusive. Results are deterministic for a fixed triple set.
func (g *Graph) Paths(origin, dest Term, opt PathOptions) [][]Term {
	var paths [][]Term
	visited := map[Term]bool{}
	g.walk(origin, dest, opt, []Term{}, visited, &paths)
	return paths
}

func (g *Graph) walk(node, dest Term, opt PathOptions, trail []Term, visited map[Term]bool, paths *[][]Term) {
	trail = append(trail, node)
	if node == dest {
		out := make([]Term, len(trail))
		copy(out, trail)
		*paths = append(*paths, out)
		return
	}
	visited[node] = true
	for _, next := range g.neighbors(node, opt, visited) {
		branch := make(map[Term]bool, len(visited))
		for k, v := range visited {
			branch[k] = v
		}
		g.walk(next, dest, opt, trail, branch, paths)
	}
}

// neighbors collects the nodes reachable from node over one edge in either
// direction, honoring the predicate and avoidance filters. Sorted for
// deterministic traversal order.
func (g *Graph) neighbors(node Term, opt PathOptions, visited map[Term]bool) []Term {
	allowed := func(p Term) bool {
		if len(opt.Predicates) == 0 {
			return true
		}
		for _, f := range opt.Predicates {
			if p == f {
				return true
			}
		}
		return false
	}
	avoided := func(n Term) bool {
		for _, a := range opt.Avoid {
			if n == a {
				return true
			}
		}
		return false
	}

	set := make(map[Term]struct{})
	for _, t := range g.Match(&node, nil, nil) {
		if allowed(t.Predicate) && !avoided(t.Object) && !visited[t.Object] {
			set[t.Object] = struct{}{}
		}
	}
	for _, t := range g.Match(nil, nil, &node) {
		if allowed(t.Predicate) && !avoided(t.Subject) && !visited[t.Subject] {
			set[t.Subject] = struct{}{}
		}
	}
	out := make([]Term, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
