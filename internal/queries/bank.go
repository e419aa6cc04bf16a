// Package queries renders the SPARQL query text the resolvers execute. All
// queries live in embedded .rq templates; caller-supplied values reach the
// query text only through the iri/iriList template functions, which validate
// them first.
package queries

import (
	"bytes"
	"embed"
	"errors"
	"sort"
	"strings"
	"text/template"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/rdf"
)

//go:embed templates/*.rq
var templateFS embed.FS

const templateExt = ".rq"

// Names of the templates shipped in the bank.
const (
	// DirectSuperclasses selects the distinct direct superclasses of one
	// class. Variables: graph, class, predicate.
	DirectSuperclasses = "direct_superclasses"

	// DirectSubclassesOf selects (child, parent) pairs for a frontier of
	// parent nodes. Variables: graph, predicate, parents.
	DirectSubclassesOf = "direct_subclasses_of"

	// NodeExists probes whether a node occurs in any triple of the graph.
	// Variables: graph, node.
	NodeExists = "node_exists"

	// SubjectTriples selects all allowlisted triples for a frontier of
	// subjects. Variables: graph, subjects, predicates.
	SubjectTriples = "subject_triples"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"iri": func(s string) (string, error) {
			if err := rdf.ValidateIRI(s); err != nil {
				return "", err
			}
			return "<" + s + ">", nil
		},
		"iriList": func(values []string) (string, error) {
			if len(values) == 0 {
				return "", errors.New("iriList requires at least one IRI")
			}
			parts := make([]string, 0, len(values))
			for _, s := range values {
				if err := rdf.ValidateIRI(s); err != nil {
					return "", err
				}
				parts = append(parts, "<"+s+">")
			}
			return strings.Join(parts, ", "), nil
		},
	}
}

// Bank holds the parsed embedded templates.
type Bank struct {
	templates *template.Template
}

// Load parses every embedded template. A parse failure is a build defect and
// is reported as a *TemplateError.
func Load() (*Bank, error) {
	tmpl, err := template.New("queries").
		Option("missingkey=error").
		Funcs(funcMap()).
		ParseFS(templateFS, "templates/*"+templateExt)
	if err != nil {
		return nil, &TemplateError{Name: "queries", Err: err}
	}
	return &Bank{templates: tmpl}, nil
}

// Render executes the named template with the given variables and returns
// the query text. Unknown templates, missing variables and invalid IRI
// values all fail with *TemplateError.
func (b *Bank) Render(name string, vars map[string]any) (string, error) {
	tmpl := b.templates.Lookup(name + templateExt)
	if tmpl == nil {
		return "", &TemplateError{Name: name, Err: errors.New("no such template")}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", &TemplateError{Name: name, Err: err}
	}
	return buf.String(), nil
}

// Names lists the available template names, sorted, without extension.
func (b *Bank) Names() []string {
	var names []string
	for _, t := range b.templates.Templates() {
		if strings.HasSuffix(t.Name(), templateExt) {
			names = append(names, strings.TrimSuffix(t.Name(), templateExt))
		}
	}
	sort.Strings(names)
	return names
}

// InlineTemplate is a query template parsed from configuration rather than
// the embedded bank, sharing the bank's function set and strictness. The
// dynamic tool registry compiles one per saved query.
type InlineTemplate struct {
	name string
	tmpl *template.Template
}

// ParseInline compiles an inline query template.
func ParseInline(name, text string) (*InlineTemplate, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(funcMap()).
		Parse(text)
	if err != nil {
		return nil, &TemplateError{Name: name, Err: err}
	}
	return &InlineTemplate{name: name, tmpl: tmpl}, nil
}

// Render executes the inline template with the given variables.
func (t *InlineTemplate) Render(vars map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, vars); err != nil {
		return "", &TemplateError{Name: t.name, Err: err}
	}
	return buf.String(), nil
}

// Name returns the template's configured name.
func (t *InlineTemplate) Name() string { return t.name }
