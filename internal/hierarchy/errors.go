package hierarchy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrClassNotFound reports a class URI that occurs in no triple of the
	// queried graph.
	ErrClassNotFound = errors.New("class not found")

	// ErrNoCommonAncestor reports that the queried classes share no
	// ancestor. Disjoint hierarchies are an expected outcome, not a failure
	// of the resolution itself; callers test for it with errors.Is.
	ErrNoCommonAncestor = errors.New("no common ancestor")

	// ErrNoClasses reports an empty input set.
	ErrNoClasses = errors.New("no class URIs given")
)

// CycleError reports a loop in the class hierarchy. Nodes holds the nodes in
// the order the walk observed them, with the repeated node closing the loop.
type CycleError struct {
	Nodes []string
}

func (e *CycleError) Error() string {
	return "hierarchy cycle detected: " + strings.Join(e.Nodes, " -> ")
}

// AmbiguousHierarchyError reports a class with more than one direct parent,
// which the single-parent walk cannot resolve.
type AmbiguousHierarchyError struct {
	Class   string
	Parents []string
}

func (e *AmbiguousHierarchyError) Error() string {
	return fmt.Sprintf("class <%s> has %d direct superclasses (%s), expected at most one",
		e.Class, len(e.Parents), strings.Join(e.Parents, ", "))
}
