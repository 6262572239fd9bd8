package types

import "time"

// AIConfig holds shared settings for calls to the generative model API.
type AIConfig struct {
	// Model is the model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the model API. An empty key
	// means offline mode: the deterministic template is used instead.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Timeout is the per-call timeout for the model API (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ScoringConfig holds settings for the variant-scoring stage.
type ScoringConfig struct {
	// VariantsPath is the input variant table (TSV).
	VariantsPath string `json:"variants_path" yaml:"variants_path"`

	// ScoredOut is where the scored variant table is written.
	ScoredOut string `json:"scored_out" yaml:"scored_out"`
}

// ExpressionConfig holds settings for the expression summarizer.
type ExpressionConfig struct {
	// ResultsPath is the differential-expression results table. A
	// missing file is the valid absent state, not an error.
	ResultsPath string `json:"results_path" yaml:"results_path"`

	// TopGenes is how many up- and downregulated genes the digest lists
	// per direction (default 3).
	TopGenes int `json:"top_genes" yaml:"top_genes"`
}

// DESeqConfig holds settings for the external R analysis stage.
type DESeqConfig struct {
	// RscriptBin is the Rscript binary name or path (default "Rscript").
	RscriptBin string `json:"rscript_bin" yaml:"rscript_bin"`

	// ScriptsDir is the directory holding the analysis scripts (default "R").
	ScriptsDir string `json:"scripts_dir" yaml:"scripts_dir"`

	// OutDir is where the R scripts write their result tables.
	OutDir string `json:"out_dir" yaml:"out_dir"`
}

// ReportConfig holds settings for report synthesis.
type ReportConfig struct {
	AIConfig `yaml:",inline"`

	// TopVariants is how many scored variants the report digest lists
	// (default 5).
	TopVariants int `json:"top_variants" yaml:"top_variants"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Scoring    ScoringConfig    `json:"scoring" yaml:"scoring"`
	DESeq      DESeqConfig      `json:"deseq" yaml:"deseq"`
	Expression ExpressionConfig `json:"expression" yaml:"expression"`
	Report     ReportConfig     `json:"report" yaml:"report"`
}
