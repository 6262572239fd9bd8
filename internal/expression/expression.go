// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package expression loads differential-expression results and reduces
// them to a short ranked digest for the report.
package expression

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/omics-reporter/pkg/types"
)

// AbsentDigest is the fixed digest used when no expression evidence is
// available. Absence is an expected operating condition, not an error.
const AbsentDigest = "no expression evidence available"

// defaultTopGenes is the per-direction gene count in the ranked digest.
const defaultTopGenes = 3

// Column aliases accepted for the optional statistics. DESeq2 emits the
// camel-case names; the snake-case names are the pipeline's own.
var (
	geneColumns       = []string{"gene", "Gene"}
	baseMeanColumns   = []string{"base_mean", "baseMean"}
	foldChangeColumns = []string{"log2_fold_change", "log2FoldChange"}
	adjustedPColumns  = []string{"adjusted_p_value", "padj"}
)

// Load reads a tab-delimited differential-expression results table.
// A missing file or empty path returns (nil, nil): the absent state.
// A present table without a recognizable gene column is treated the
// same way rather than failing, since the summarizer must degrade to
// the sentinel instead of aborting a run.
func Load(path string) (*types.ExpressionTable, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening expression results: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}

	geneIdx, ok := findColumn(idx, geneColumns)
	if !ok {
		return nil, nil
	}
	baseMeanIdx, hasBaseMean := findColumn(idx, baseMeanColumns)
	foldIdx, hasFold := findColumn(idx, foldChangeColumns)
	adjIdx, hasAdj := findColumn(idx, adjustedPColumns)

	table := &types.ExpressionTable{
		HasBaseMean:   hasBaseMean,
		HasFoldChange: hasFold,
		HasAdjustedP:  hasAdj,
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading expression results %s: %w", path, err)
		}

		rec := types.ExpressionRecord{
			Gene:           cell(row, geneIdx),
			BaseMean:       math.NaN(),
			Log2FoldChange: math.NaN(),
			AdjustedP:      math.NaN(),
		}
		if hasBaseMean {
			rec.BaseMean = parseStat(cell(row, baseMeanIdx))
		}
		if hasFold {
			rec.Log2FoldChange = parseStat(cell(row, foldIdx))
		}
		if hasAdj {
			rec.AdjustedP = parseStat(cell(row, adjIdx))
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// Summarize reduces an expression table to a deterministic digest. An
// absent or empty table yields AbsentDigest. With fold-change and
// adjusted-p statistics present, the digest lists the topN most up-
// and downregulated genes; otherwise it is a plain per-row digest of
// whatever numeric columns the table carries. Ranking ties keep their
// input order.
func Summarize(table *types.ExpressionTable, topN int) string {
	if table == nil || len(table.Records) == 0 {
		return AbsentDigest
	}
	if topN <= 0 {
		topN = defaultTopGenes
	}
	if table.HasFoldChange && table.HasAdjustedP {
		return rankedDigest(table.Records, topN)
	}
	return plainDigest(table, topN)
}

// rankedDigest lists the top up- and downregulated genes by fold change.
func rankedDigest(records []types.ExpressionRecord, topN int) string {
	ranked := make([]types.ExpressionRecord, 0, len(records))
	for _, rec := range records {
		if !math.IsNaN(rec.Log2FoldChange) {
			ranked = append(ranked, rec)
		}
	}
	if len(ranked) == 0 {
		return AbsentDigest
	}

	up := make([]types.ExpressionRecord, len(ranked))
	copy(up, ranked)
	sort.SliceStable(up, func(a, b int) bool {
		return up[a].Log2FoldChange > up[b].Log2FoldChange
	})
	down := make([]types.ExpressionRecord, len(ranked))
	copy(down, ranked)
	sort.SliceStable(down, func(a, b int) bool {
		return down[a].Log2FoldChange < down[b].Log2FoldChange
	})

	var b strings.Builder
	b.WriteString("Differential expression summary:\n\n")
	b.WriteString("Top up-regulated genes:\n")
	for _, rec := range head(up, topN) {
		fmt.Fprintf(&b, "- %s: log2FC=%.2f, padj=%s\n", rec.Gene, rec.Log2FoldChange, formatP(rec.AdjustedP))
	}
	b.WriteString("\nTop down-regulated genes:\n")
	for _, rec := range head(down, topN) {
		fmt.Fprintf(&b, "- %s: log2FC=%.2f, padj=%s\n", rec.Gene, rec.Log2FoldChange, formatP(rec.AdjustedP))
	}
	return strings.TrimRight(b.String(), "\n")
}

// plainDigest shows the first rows with whatever statistics are present.
func plainDigest(table *types.ExpressionTable, topN int) string {
	var b strings.Builder
	b.WriteString("Expression summary:\n")
	for _, rec := range head(table.Records, topN) {
		fmt.Fprintf(&b, "- %s", rec.Gene)
		sep := ": "
		if table.HasBaseMean && !math.IsNaN(rec.BaseMean) {
			fmt.Fprintf(&b, "%sbase_mean=%.2f", sep, rec.BaseMean)
			sep = ", "
		}
		if table.HasFoldChange && !math.IsNaN(rec.Log2FoldChange) {
			fmt.Fprintf(&b, "%slog2FC=%.2f", sep, rec.Log2FoldChange)
			sep = ", "
		}
		if table.HasAdjustedP && !math.IsNaN(rec.AdjustedP) {
			fmt.Fprintf(&b, "%spadj=%s", sep, formatP(rec.AdjustedP))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// findColumn returns the index of the first alias present in the header.
func findColumn(idx map[string]int, aliases []string) (int, bool) {
	for _, name := range aliases {
		if i, ok := idx[name]; ok {
			return i, true
		}
	}
	return 0, false
}

// parseStat parses a numeric cell. NA, empty, and malformed values all
// become NaN; DESeq2 emits NA for genes it could not test.
func parseStat(s string) float64 {
	if s == "" || s == "NA" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// formatP renders an adjusted p-value in scientific notation, or NA.
func formatP(p float64) string {
	if math.IsNaN(p) {
		return "NA"
	}
	return strconv.FormatFloat(p, 'e', 2, 64)
}

func head(records []types.ExpressionRecord, n int) []types.ExpressionRecord {
	if len(records) < n {
		return records
	}
	return records[:n]
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
