package rdf

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidIRI reports a caller-supplied string that is not usable as an IRI.
var ErrInvalidIRI = errors.New("invalid IRI")

// TermKind discriminates the three RDF term kinds.
type TermKind int

const (
	// TermIRI is an IRI reference.
	TermIRI TermKind = iota
	// TermLiteral is a literal value, optionally language-tagged or typed.
	TermLiteral
	// TermBlank is a blank node.
	TermBlank
)

// Term is a single RDF term. It is a comparable value type so it can be used
// directly as a map key and compared with ==.
type Term struct {
	Kind TermKind
	// Value holds the IRI string, the literal's lexical form, or the blank
	// node label depending on Kind.
	Value string
	// Lang is the language tag for language-tagged literals, empty otherwise.
	Lang string
	// Datatype is the datatype IRI for typed literals, empty otherwise.
	Datatype string
}

// NewIRI returns an IRI term. The value is not validated here; use
// ValidateIRI for caller-supplied input.
func NewIRI(iri string) Term {
	return Term{Kind: TermIRI, Value: iri}
}

// NewLiteral returns a plain literal term.
func NewLiteral(value string) Term {
	return Term{Kind: TermLiteral, Value: value}
}

// NewLangLiteral returns a language-tagged literal term.
func NewLangLiteral(value, lang string) Term {
	return Term{Kind: TermLiteral, Value: value, Lang: lang}
}

// NewTypedLiteral returns a literal term with an explicit datatype IRI.
func NewTypedLiteral(value, datatype string) Term {
	return Term{Kind: TermLiteral, Value: value, Datatype: datatype}
}

// NewBlank returns a blank node term with the given label.
func NewBlank(label string) Term {
	return Term{Kind: TermBlank, Value: label}
}

// IsIRI reports whether the term is an IRI.
func (t Term) IsIRI() bool { return t.Kind == TermIRI }

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool { return t.Kind == TermLiteral }

// IsBlank reports whether the term is a blank node.
func (t Term) IsBlank() bool { return t.Kind == TermBlank }

// IsZero reports whether the term is the zero value, i.e. not a real term.
func (t Term) IsZero() bool { return t == Term{} }

// String renders the term in N-Triples syntax.
func (t Term) String() string {
	switch t.Kind {
	case TermIRI:
		return "<" + t.Value + ">"
	case TermBlank:
		return "_:" + t.Value
	default:
		s := `"` + escapeLiteral(t.Value) + `"`
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^<" + t.Datatype + ">"
		}
		return s
	}
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}

// ValidateIRI checks that s is usable as an IRI in a query or an N-Triples
// document: absolute, parseable, and free of characters that would escape an
// IRIREF production. Caller-supplied URIs must pass this check before they
// are interpolated anywhere.
func ValidateIRI(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty string", ErrInvalidIRI)
	}
	for _, r := range s {
		if r <= 0x20 || r == 0x7f {
			return fmt.Errorf("%w: %q contains whitespace or control characters", ErrInvalidIRI, s)
		}
		switch r {
		case '<', '>', '"', '{', '}', '|', '^', '`', '\\':
			return fmt.Errorf("%w: %q contains forbidden character %q", ErrInvalidIRI, s, r)
		}
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidIRI, s, err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("%w: %q has no scheme", ErrInvalidIRI, s)
	}
	return nil
}
