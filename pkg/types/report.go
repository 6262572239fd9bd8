// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Provenance marks how a report body was produced.
type Provenance string

const (
	// ProvenanceModel marks a report whose body came from the
	// generative model.
	ProvenanceModel Provenance = "generated_by_model"

	// ProvenanceFallback marks a report rendered by the deterministic
	// template, either because no model was configured or because the
	// model call failed.
	ProvenanceFallback Provenance = "template_fallback"
)

// Report is the final findings document for one pipeline run. It is
// created once and never updated in place; writing it to storage is
// the caller's responsibility.
type Report struct {
	// Body is the complete markdown text.
	Body string `json:"body" yaml:"body"`

	// Provenance records which synthesis path produced Body.
	Provenance Provenance `json:"provenance" yaml:"provenance"`

	// FallbackReason carries the textual cause of a model failure when
	// the fallback was taken after one. Empty for model-generated
	// reports and for the offline (no credential) fallback.
	FallbackReason string `json:"fallback_reason,omitempty" yaml:"fallback_reason,omitempty"`
}
