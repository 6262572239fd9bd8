package variant

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/omics-reporter/pkg/types"
)

func TestWriteScoredRoundTrip(t *testing.T) {
	records := []types.VariantRecord{
		rec("LOW", types.ConsequenceIntron, "0.3"),
		rec("TOP", types.ConsequenceStopGained, "0.0001"),
		rec("MID", types.ConsequenceMissense, "0.004"),
	}
	scored, err := Score(records)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out", "scored_variants.tsv")
	if err := WriteScored(path, scored); err != nil {
		t.Fatalf("WriteScored: %v", err)
	}

	reloaded, err := LoadScored(path)
	if err != nil {
		t.Fatalf("LoadScored: %v", err)
	}
	if len(reloaded) != len(scored) {
		t.Fatalf("got %d rows, want %d", len(reloaded), len(scored))
	}
	for i := range scored {
		if reloaded[i] != scored[i] {
			t.Errorf("row %d: got %+v, want %+v", i, reloaded[i], scored[i])
		}
	}
}

func TestWriteScoredLayout(t *testing.T) {
	scored := []types.ScoredVariant{
		{VariantRecord: rec("BRCA1", types.ConsequenceMissense, "0.0001"), Score: 5.0},
	}

	path := filepath.Join(t.TempDir(), "scored.tsv")
	if err := WriteScored(path, scored); err != nil {
		t.Fatalf("WriteScored: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "chrom\tpos\tref\talt\tgene\tconsequence\taf\tscore" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "1\t100\tA\tG\tBRCA1\tmissense_variant\t0.0001\t5.0" {
		t.Errorf("row = %q", lines[1])
	}
}
