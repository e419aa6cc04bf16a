package queries

import "fmt"

// TemplateError reports a failure to compile or render a query template: an
// unknown template name, a missing variable, invalid syntax, or an
// interpolated value that failed IRI validation. It marks a programming or
// configuration defect, so callers fail fast and never retry it.
type TemplateError struct {
	// Name is the template the failure belongs to.
	Name string
	// Err is the underlying cause.
	Err error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("query template %q: %v", e.Name, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }
