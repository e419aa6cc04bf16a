package queries

import (
	"fmt"
	"strings"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/rdf"
)

// Query forms accepted by ValidateReadQuery.
var readForms = map[string]bool{
	"SELECT":    true,
	"ASK":       true,
	"CONSTRUCT": true,
	"DESCRIBE":  true,
}

// SPARQL Update keywords rejected by ValidateReadQuery.
var updateKeywords = map[string]bool{
	"INSERT": true,
	"DELETE": true,
	"LOAD":   true,
	"CLEAR":  true,
	"CREATE": true,
	"DROP":   true,
	"COPY":   true,
	"MOVE":   true,
	"ADD":    true,
}

// ValidateReadQuery checks that query is a SPARQL read form: the first
// keyword after any BASE and PREFIX declarations must be SELECT, ASK,
// CONSTRUCT or DESCRIBE, and no SPARQL Update keyword may appear outside
// IRI references, string literals and comments.
func ValidateReadQuery(query string) error {
	tokens := scanTokens(query)
	if len(tokens) == 0 {
		return fmt.Errorf("query is empty")
	}

	form := ""
	for i := 0; i < len(tokens); i++ {
		if tokens[i] == "BASE" {
			continue
		}
		if tokens[i] == "PREFIX" {
			i++ // skip the prefix label
			continue
		}
		form = tokens[i]
		break
	}
	if !readForms[form] {
		return fmt.Errorf("query form %q is not one of SELECT, ASK, CONSTRUCT or DESCRIBE", form)
	}

	for _, tok := range tokens {
		if updateKeywords[tok] {
			return fmt.Errorf("query contains SPARQL Update keyword %s", tok)
		}
	}
	return nil
}

// WrapInGraph encloses a basic graph pattern in a GRAPH clause scoped to
// graphURI and returns a complete SELECT query over it.
func WrapInGraph(pattern, graphURI string) (string, error) {
	if strings.TrimSpace(pattern) == "" {
		return "", fmt.Errorf("pattern is empty")
	}
	if err := rdf.ValidateIRI(graphURI); err != nil {
		return "", fmt.Errorf("graph %q: %w", graphURI, err)
	}
	return fmt.Sprintf("SELECT * WHERE { GRAPH <%s> { %s } }", graphURI, pattern), nil
}

// scanTokens splits query into uppercased bare words, dropping the contents
// of IRI references, string literals and comments so that keyword checks do
// not trip on data.
func scanTokens(query string) []string {
	var (
		out  []string
		word strings.Builder
	)
	flush := func() {
		if word.Len() > 0 {
			out = append(out, strings.ToUpper(word.String()))
			word.Reset()
		}
	}

	const (
		normal = iota
		iriRef
		singleQuoted
		doubleQuoted
		comment
	)
	state := normal
	escaped := false

	for _, r := range query {
		switch state {
		case normal:
			switch {
			case r == '<':
				flush()
				state = iriRef
			case r == '\'':
				flush()
				state = singleQuoted
			case r == '"':
				flush()
				state = doubleQuoted
			case r == '#':
				flush()
				state = comment
			case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_':
				word.WriteRune(r)
			default:
				flush()
			}
		case iriRef:
			if r == '>' {
				state = normal
			}
		case singleQuoted, doubleQuoted:
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case state == singleQuoted && r == '\'':
				state = normal
			case state == doubleQuoted && r == '"':
				state = normal
			}
		case comment:
			if r == '\n' {
				state = normal
			}
		}
	}
	flush()
	return out
}
