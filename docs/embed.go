package docs

import (
	_ "embed"
)

// OntologyGuidancePrompt embeds the ontology investigation guidance
// This prompt explains the tool surface, IRI conventions and failure modes
// to LLMs working against the class hierarchy
//
//go:embed prompts/ontology_guidance.md
var OntologyGuidancePrompt string
