// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package variant loads, scores, and writes tabular variant lists.
package variant

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/omics-reporter/pkg/types"
)

// requiredColumns are the header names every input variant table must
// carry. Extra columns are ignored.
var requiredColumns = []string{"chrom", "pos", "ref", "alt", "gene", "consequence", "af"}

// scoredColumns is the scored-table layout: the input columns plus a
// trailing score column.
var scoredColumns = append(append([]string{}, requiredColumns...), "score")

// SchemaError reports required columns missing from an input table.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Path, strings.Join(e.Missing, ", "))
}

// Load reads a tab-delimited variant table into ordered records. It
// fails with a *SchemaError when any required column is absent. Value
// ranges are not validated here: a malformed allele frequency is kept
// verbatim and fails at scoring time instead.
func Load(path string) ([]types.VariantRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening variant table: %w", err)
	}
	defer f.Close()

	r := newTSVReader(f)

	idx, err := readHeader(r, path, requiredColumns)
	if err != nil {
		return nil, err
	}

	var records []types.VariantRecord
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading variant table %s: %w", path, err)
		}
		line++

		pos, err := strconv.Atoi(field(row, idx["pos"]))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad pos %q: %w", path, line, field(row, idx["pos"]), err)
		}
		if pos < 0 {
			return nil, fmt.Errorf("%s:%d: negative pos %d", path, line, pos)
		}

		records = append(records, types.VariantRecord{
			Chrom:       field(row, idx["chrom"]),
			Pos:         pos,
			Ref:         field(row, idx["ref"]),
			Alt:         field(row, idx["alt"]),
			Gene:        field(row, idx["gene"]),
			Consequence: types.ParseConsequence(field(row, idx["consequence"])),
			AF:          field(row, idx["af"]),
		})
	}

	return records, nil
}

// LoadScored reads back a scored variant table, as written by
// WriteScored, preserving row order.
func LoadScored(path string) ([]types.ScoredVariant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scored table: %w", err)
	}
	defer f.Close()

	r := newTSVReader(f)

	idx, err := readHeader(r, path, scoredColumns)
	if err != nil {
		return nil, err
	}

	var scored []types.ScoredVariant
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading scored table %s: %w", path, err)
		}
		line++

		pos, err := strconv.Atoi(field(row, idx["pos"]))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad pos %q: %w", path, line, field(row, idx["pos"]), err)
		}
		score, err := strconv.ParseFloat(field(row, idx["score"]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad score %q: %w", path, line, field(row, idx["score"]), err)
		}

		scored = append(scored, types.ScoredVariant{
			VariantRecord: types.VariantRecord{
				Chrom:       field(row, idx["chrom"]),
				Pos:         pos,
				Ref:         field(row, idx["ref"]),
				Alt:         field(row, idx["alt"]),
				Gene:        field(row, idx["gene"]),
				Consequence: types.ParseConsequence(field(row, idx["consequence"])),
				AF:          field(row, idx["af"]),
			},
			Score: score,
		})
	}

	return scored, nil
}

// newTSVReader returns a csv.Reader configured for tab-delimited text.
func newTSVReader(f io.Reader) *csv.Reader {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	return r
}

// readHeader reads the header row and maps the required column names to
// their field indexes. A missing header row counts as all columns missing.
func readHeader(r *csv.Reader, path string, required []string) (map[string]int, error) {
	header, err := r.Read()
	if err == io.EOF {
		return nil, &SchemaError{Path: path, Missing: required}
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

	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Path: path, Missing: missing}
	}
	return idx, nil
}

// field returns row[i] trimmed, or "" when the row is short.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
