// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Consequence categorizes a variant's predicted functional effect on a
// gene product, following the VEP-style vocabulary used in the input
// annotation column.
type Consequence string

const (
	ConsequenceStopGained     Consequence = "stop_gained"
	ConsequenceFrameshift     Consequence = "frameshift_variant"
	ConsequenceSpliceAcceptor Consequence = "splice_acceptor_variant"
	ConsequenceSpliceDonor    Consequence = "splice_donor_variant"
	ConsequenceMissense       Consequence = "missense_variant"
	ConsequenceInframeDel     Consequence = "inframe_deletion"
	ConsequenceInframeIns     Consequence = "inframe_insertion"
	ConsequenceSynonymous     Consequence = "synonymous_variant"
	ConsequenceIntron         Consequence = "intron_variant"
	ConsequenceOther          Consequence = "other"
)

// knownConsequences is the set of annotation values recognized as-is.
var knownConsequences = map[Consequence]bool{
	ConsequenceStopGained:     true,
	ConsequenceFrameshift:     true,
	ConsequenceSpliceAcceptor: true,
	ConsequenceSpliceDonor:    true,
	ConsequenceMissense:       true,
	ConsequenceInframeDel:     true,
	ConsequenceInframeIns:     true,
	ConsequenceSynonymous:     true,
	ConsequenceIntron:         true,
	ConsequenceOther:          true,
}

// ParseConsequence normalizes a raw annotation string. Unrecognized
// values map to ConsequenceOther rather than failing, so upstream
// annotators with richer vocabularies still load.
func ParseConsequence(s string) Consequence {
	c := Consequence(strings.ToLower(strings.TrimSpace(s)))
	if knownConsequences[c] {
		return c
	}
	return ConsequenceOther
}

// VariantRecord is one row of the input variant table. Records are
// immutable after load.
type VariantRecord struct {
	// Chrom is the chromosome name as it appears in the input (e.g. "1", "X").
	Chrom string `json:"chrom" yaml:"chrom"`

	// Pos is the 1-based genomic position.
	Pos int `json:"pos" yaml:"pos"`

	// Ref is the reference allele.
	Ref string `json:"ref" yaml:"ref"`

	// Alt is the alternate allele.
	Alt string `json:"alt" yaml:"alt"`

	// Gene is the gene symbol (e.g. "BRCA1").
	Gene string `json:"gene" yaml:"gene"`

	// Consequence is the normalized functional-effect annotation.
	Consequence Consequence `json:"consequence" yaml:"consequence"`

	// AF is the allele-frequency column verbatim from the input. It is
	// parsed at scoring time, so a malformed value surfaces there and a
	// well-formed one round-trips through the scored table unchanged.
	AF string `json:"af" yaml:"af"`
}

// ScoredVariant is a VariantRecord with its rule-based suspicion score.
// The score is a pure function of consequence and allele frequency.
type ScoredVariant struct {
	VariantRecord `yaml:",inline"`

	// Score is the suspicion score, 0.0 through 6.0 in whole steps.
	Score float64 `json:"score" yaml:"score"`
}
