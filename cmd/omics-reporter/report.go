package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/omics-reporter/internal/deseq"
	"github.com/pdiddy/omics-reporter/internal/expression"
	"github.com/pdiddy/omics-reporter/internal/phenotype"
	"github.com/pdiddy/omics-reporter/internal/report"
	"github.com/pdiddy/omics-reporter/internal/secrets"
	"github.com/pdiddy/omics-reporter/internal/variant"
	"github.com/pdiddy/omics-reporter/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the pipeline end to end and write the findings report",
	Long: `Report sequences the whole pipeline: score the variant table,
optionally run the external DE analysis on a counts matrix, summarize
the expression results, and synthesize a markdown findings report.

Synthesis calls the generative model when a credential is configured
(--api-key, the OMICS_REPORTER_API_KEY environment variable, or
.secrets/anthropic-api-key). Without one the run is offline and the
deterministic template is used; a report is always produced.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("variants", "", "input variant table (TSV)")
	reportCmd.Flags().String("scored", "", "already-scored variant table (skips scoring)")
	reportCmd.Flags().String("scored-out", defaultScoredOut, "output path for the scored table")
	reportCmd.Flags().String("phenotypes", "", "free-text phenotype description")
	reportCmd.Flags().String("phenotype-file", "", "YAML file of phenotype terms")
	reportCmd.Flags().String("counts", "", "RNA-seq counts matrix; triggers the DE analysis")
	reportCmd.Flags().String("results", "", "existing differential-expression results table")
	reportCmd.Flags().Bool("skip-de", false, "skip the DE analysis even when --counts is given")
	reportCmd.Flags().String("out", "report.md", "output report path (markdown)")
	reportCmd.Flags().Int("top-variants", 0, "variants listed in the report digest (default 5)")
	reportCmd.Flags().Int("top-genes", 0, "genes listed per direction in the expression digest (default 3)")
	reportCmd.Flags().String("model", "", "generative model identifier")
	reportCmd.Flags().String("api-key", "", "generative model API key")
	reportCmd.Flags().Duration("timeout", 0, "generative model call timeout (default 30s)")
	reportCmd.Flags().Int("max-retries", 0, "generative model retry attempts (default 3)")
	reportCmd.Flags().String("rscript", "", "Rscript binary (default \"Rscript\")")
	reportCmd.Flags().String("scripts-dir", "", "directory holding the analysis scripts (default \"R\")")
	reportCmd.Flags().String("de-out-dir", defaultExprOutDir, "directory for the R result tables")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	phenoText, _ := cmd.Flags().GetString("phenotypes")
	phenoFile, _ := cmd.Flags().GetString("phenotype-file")
	phenotypes, err := phenotype.Load(phenoText, phenoFile)
	if err != nil {
		return err
	}

	scored, err := loadScoredVariants(cmd)
	if err != nil {
		return err
	}

	resultsPath, err := resolveExpressionResults(cmd)
	if err != nil {
		return err
	}
	table, err := expression.Load(resultsPath)
	if err != nil {
		return err
	}
	topGenes, _ := cmd.Flags().GetInt("top-genes")
	expressionDigest := expression.Summarize(table, topGenes)

	synthesizer := report.NewSynthesizer(modelBackend(cmd), reportConfigFromFlags(cmd))
	rep := synthesizer.Synthesize(cmd.Context(), phenotypes, scored, expressionDigest)

	outPath, _ := cmd.Flags().GetString("out")
	if err := writeReport(outPath, rep); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Report written to %s (%s)\n", outPath, rep.Provenance)
	if rep.FallbackReason != "" {
		fmt.Fprintf(os.Stderr, "Model synthesis failed, used template: %s\n", rep.FallbackReason)
	}
	return nil
}

// loadScoredVariants either reads an already-scored table or runs the
// load → score → write stage on the raw variant table.
func loadScoredVariants(cmd *cobra.Command) ([]types.ScoredVariant, error) {
	scoredPath, _ := cmd.Flags().GetString("scored")
	if scoredPath != "" {
		return variant.LoadScored(scoredPath)
	}

	variantsPath, _ := cmd.Flags().GetString("variants")
	if variantsPath == "" {
		return nil, fmt.Errorf("provide --variants or --scored")
	}
	scoredOut, _ := cmd.Flags().GetString("scored-out")

	return scoreVariants(types.ScoringConfig{
		VariantsPath: variantsPath,
		ScoredOut:    scoredOut,
	})
}

// resolveExpressionResults decides where the DE results table is: an
// explicit --results path, the output of a fresh DE analysis when
// --counts is given, or nowhere at all. Absent results are a valid
// state; the summarizer degrades to its sentinel.
func resolveExpressionResults(cmd *cobra.Command) (string, error) {
	if resultsPath, _ := cmd.Flags().GetString("results"); resultsPath != "" {
		return resultsPath, nil
	}

	countsPath, _ := cmd.Flags().GetString("counts")
	skipDE, _ := cmd.Flags().GetBool("skip-de")
	if countsPath == "" || skipDE {
		return "", nil
	}

	cfg := deseqConfigFromFlags(cmd)
	cfg.OutDir, _ = cmd.Flags().GetString("de-out-dir")

	runner, err := deseq.NewRunner(cfg)
	if err != nil {
		return "", err
	}
	return runner.Run(countsPath, os.Stderr)
}

// modelBackend builds the generative backend, or nil for offline mode.
// The credential resolves flag → environment → .secrets/, and its
// absence is never an error.
func modelBackend(cmd *cobra.Command) report.Backend {
	cfg := reportConfigFromFlags(cmd)
	if cfg.APIKey == "" {
		return nil
	}
	return report.NewClaudeBackend(cfg.AIConfig)
}

func reportConfigFromFlags(cmd *cobra.Command) types.ReportConfig {
	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = viper.GetString("api_key")
	}
	apiKey = secretDefault(secrets.AnthropicAPIKey, apiKey)

	model, _ := cmd.Flags().GetString("model")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	topVariants, _ := cmd.Flags().GetInt("top-variants")

	return types.ReportConfig{
		AIConfig: types.AIConfig{
			Model:      model,
			APIKey:     apiKey,
			MaxRetries: maxRetries,
			Timeout:    timeout,
		},
		TopVariants: topVariants,
	}
}

// writeReport writes the report body to path, creating parents.
func writeReport(path string, rep types.Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(rep.Body), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
