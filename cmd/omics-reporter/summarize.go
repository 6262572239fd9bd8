package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/omics-reporter/internal/expression"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Print a digest of differential-expression results",
	Long: `Summarize reduces a differential-expression results table to a short
ranked digest: the top up- and downregulated genes when fold-change and
adjusted-p columns are present, a plain per-row digest otherwise. A
missing table is a valid state and yields a fixed sentinel line.`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().String("results", "", "differential-expression results table (TSV)")
	summarizeCmd.Flags().Int("top", 0, "genes listed per direction (default 3)")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	resultsPath, _ := cmd.Flags().GetString("results")
	topN, _ := cmd.Flags().GetInt("top")

	table, err := expression.Load(resultsPath)
	if err != nil {
		return err
	}

	fmt.Println(expression.Summarize(table, topN))
	return nil
}
