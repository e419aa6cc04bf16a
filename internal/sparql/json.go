package sparql

import (
	"encoding/json"
	"fmt"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/rdf"
)

// BindingsToJSON renders result rows as an indented JSON array, one object
// per row keyed by variable name. Terms keep their SPARQL results encoding
// (type, value, optional xml:lang / datatype) so tool consumers see the same
// shape the endpoint produced.
func BindingsToJSON(rows []Binding) (string, error) {
	out := make([]map[string]jsonTerm, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]jsonTerm, len(row))
		for name, term := range row {
			obj[name] = termToJSON(term)
		}
		out = append(out, obj)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling bindings: %w", err)
	}
	return string(data), nil
}

func termToJSON(t rdf.Term) jsonTerm {
	switch t.Kind {
	case rdf.TermIRI:
		return jsonTerm{Type: "uri", Value: t.Value}
	case rdf.TermBlank:
		return jsonTerm{Type: "bnode", Value: t.Value}
	default:
		return jsonTerm{Type: "literal", Value: t.Value, Lang: t.Lang, Datatype: t.Datatype}
	}
}
