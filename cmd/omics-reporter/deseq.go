package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/omics-reporter/internal/deseq"
	"github.com/pdiddy/omics-reporter/pkg/types"
)

const defaultExprOutDir = "results/expression"

var deseqCmd = &cobra.Command{
	Use:   "deseq",
	Short: "Run the external DESeq2 and GO-enrichment analysis",
	Long: `Deseq runs the R analysis scripts on an RNA-seq counts matrix:
DESeq2 first, then GO enrichment on its results. The scripts are opaque
collaborators; their output tables land in the output directory.`,
	RunE: runDeseq,
}

func init() {
	deseqCmd.Flags().String("counts", "", "RNA-seq counts matrix (TSV)")
	deseqCmd.Flags().String("out-dir", defaultExprOutDir, "directory for the R result tables")
	deseqCmd.Flags().String("rscript", "", "Rscript binary (default \"Rscript\")")
	deseqCmd.Flags().String("scripts-dir", "", "directory holding the analysis scripts (default \"R\")")

	rootCmd.AddCommand(deseqCmd)
}

func runDeseq(cmd *cobra.Command, args []string) error {
	countsPath, _ := cmd.Flags().GetString("counts")
	if countsPath == "" {
		return fmt.Errorf("--counts is required")
	}

	cfg := deseqConfigFromFlags(cmd)
	cfg.OutDir, _ = cmd.Flags().GetString("out-dir")

	runner, err := deseq.NewRunner(cfg)
	if err != nil {
		return err
	}

	resultsPath, err := runner.Run(countsPath, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Differential-expression results at %s\n", resultsPath)
	return nil
}

// deseqConfigFromFlags reads the flags shared between the deseq and
// report subcommands; the caller fills in OutDir from its own flag.
func deseqConfigFromFlags(cmd *cobra.Command) types.DESeqConfig {
	rscript, _ := cmd.Flags().GetString("rscript")
	scriptsDir, _ := cmd.Flags().GetString("scripts-dir")

	return types.DESeqConfig{
		RscriptBin: rscript,
		ScriptsDir: scriptsDir,
	}
}
