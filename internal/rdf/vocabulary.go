package rdf

// Standard vocabulary IRIs used throughout hierarchy traversal and the
// default subgraph predicate allowlist.
//
// References:
// - RDF: https://www.w3.org/TR/rdf11-concepts/
// - RDFS: https://www.w3.org/TR/rdf-schema/
// - OWL: https://www.w3.org/TR/owl2-overview/
// - SKOS: https://www.w3.org/TR/skos-reference/
// - FnO: https://w3id.org/function/spec/

// RDF core vocabulary.
const (
	// RDFType links a resource to its class.
	RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
)

// RDF Schema vocabulary.
const (
	// RDFSSubClassOf is the default hierarchy predicate.
	RDFSSubClassOf = "http://www.w3.org/2000/01/rdf-schema#subClassOf"

	// RDFSSubPropertyOf relates a property to its super-property.
	RDFSSubPropertyOf = "http://www.w3.org/2000/01/rdf-schema#subPropertyOf"

	// RDFSDomain declares the subject class of a property.
	RDFSDomain = "http://www.w3.org/2000/01/rdf-schema#domain"

	// RDFSRange declares the object class of a property.
	RDFSRange = "http://www.w3.org/2000/01/rdf-schema#range"

	// RDFSLabel provides a human-readable name for a resource.
	RDFSLabel = "http://www.w3.org/2000/01/rdf-schema#label"
)

// OWL vocabulary.
const (
	// OWLClass marks a resource as an OWL class.
	OWLClass = "http://www.w3.org/2002/07/owl#Class"

	// OWLPropertyDisjointWith declares two properties disjoint.
	OWLPropertyDisjointWith = "http://www.w3.org/2002/07/owl#propertyDisjointWith"
)

// SKOS vocabulary.
const (
	// SKOSPrefLabel provides the preferred lexical label for a resource.
	SKOSPrefLabel = "http://www.w3.org/2004/02/skos/core#prefLabel"
)

// Function Ontology (FnO) vocabulary, carried by ontologies that describe
// executable functions attached to classes.
const (
	FNOExpects   = "https://w3id.org/function/ontology#expects"
	FNOPredicate = "https://w3id.org/function/ontology#predicate"
	FNOType      = "https://w3id.org/function/ontology#type"
	FNOReturns   = "https://w3id.org/function/ontology#returns"
	FNOExecutes  = "https://w3id.org/function/ontology#executes"
)
