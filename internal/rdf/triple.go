package rdf

// Triple is a single RDF statement. Uniqueness is defined by the full
// (subject, predicate, object) tuple; the type is comparable so triples can
// key maps and be deduplicated structurally.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// NewTriple assembles a triple from its three terms.
func NewTriple(s, p, o Term) Triple {
	return Triple{Subject: s, Predicate: p, Object: o}
}

// String renders the triple as an N-Triples statement.
func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}

// less orders triples by rendered subject, predicate, then object. The order
// is total and stable, which keeps serialized graphs deterministic.
func (t Triple) less(u Triple) bool {
	if s, us := t.Subject.String(), u.Subject.String(); s != us {
		return s < us
	}
	if p, up := t.Predicate.String(), u.Predicate.String(); p != up {
		return p < up
	}
	return t.Object.String() < u.Object.String()
}
