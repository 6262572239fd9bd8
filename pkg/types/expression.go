// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExpressionRecord is one gene's differential-expression statistics as
// produced by the external DESeq2 analysis. Optional statistics that
// are missing or NA in the source table are NaN.
type ExpressionRecord struct {
	// Gene is the gene symbol or identifier.
	Gene string `json:"gene" yaml:"gene"`

	// BaseMean is the mean normalized count across samples.
	BaseMean float64 `json:"base_mean" yaml:"base_mean"`

	// Log2FoldChange is the log2 expression change between conditions.
	Log2FoldChange float64 `json:"log2_fold_change" yaml:"log2_fold_change"`

	// AdjustedP is the multiple-testing adjusted p-value.
	AdjustedP float64 `json:"adjusted_p_value" yaml:"adjusted_p_value"`
}

// ExpressionTable holds a loaded differential-expression results table
// together with which optional columns the source file carried. Rows
// keep their input order.
type ExpressionTable struct {
	Records []ExpressionRecord

	// HasBaseMean, HasFoldChange, and HasAdjustedP report whether the
	// corresponding column (under either naming convention) was present.
	HasBaseMean   bool
	HasFoldChange bool
	HasAdjustedP  bool
}
