package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/omics-reporter/internal/variant"
	"github.com/pdiddy/omics-reporter/pkg/types"
)

const defaultScoredOut = "results/variants/scored_variants.tsv"

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a variant table and write the ranked result",
	Long: `Score loads a tab-delimited variant table, applies the rule-based
suspicion score to every row, and writes the table back with a trailing
score column, rows sorted from most to least suspicious.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().String("variants", "", "input variant table (TSV)")
	scoreCmd.Flags().String("out", defaultScoredOut, "output path for the scored table")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	variantsPath, _ := cmd.Flags().GetString("variants")
	if variantsPath == "" {
		return fmt.Errorf("--variants is required")
	}
	outPath, _ := cmd.Flags().GetString("out")

	cfg := types.ScoringConfig{
		VariantsPath: variantsPath,
		ScoredOut:    outPath,
	}

	scored, err := scoreVariants(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Scored %d variants, wrote %s\n", len(scored), cfg.ScoredOut)
	return nil
}

// scoreVariants runs the load → score → write stage. The scored table
// is only written after the whole pass succeeds, so a fatal load or
// scoring error leaves no partial output behind.
func scoreVariants(cfg types.ScoringConfig) ([]types.ScoredVariant, error) {
	records, err := variant.Load(cfg.VariantsPath)
	if err != nil {
		return nil, err
	}
	scored, err := variant.Score(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.VariantsPath, err)
	}
	if err := variant.WriteScored(cfg.ScoredOut, scored); err != nil {
		return nil, err
	}
	return scored, nil
}
