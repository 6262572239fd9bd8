// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package variant

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/omics-reporter/pkg/types"
)

// WriteScored writes a scored variant table as tab-delimited text: the
// input columns plus a trailing score column, rows in the order the
// scorer produced them.
func WriteScored(path string, scored []types.ScoredVariant) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating scored table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(scoredColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, v := range scored {
		row := []string{
			v.Chrom,
			strconv.Itoa(v.Pos),
			v.Ref,
			v.Alt,
			v.Gene,
			string(v.Consequence),
			v.AF,
			strconv.FormatFloat(v.Score, 'f', 1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing scored table: %w", err)
	}
	return f.Close()
}
