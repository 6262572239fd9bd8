// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package phenotype

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTermFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phenotypes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		file    func(t *testing.T) string
		want    string
		wantErr string
	}{
		{
			name: "free text wins",
			text: "  short stature, developmental delay ",
			file: func(t *testing.T) string { return writeTermFile(t, "- ignored\n") },
			want: "short stature, developmental delay",
		},
		{
			name: "bare sequence file",
			file: func(t *testing.T) string {
				return writeTermFile(t, "- short stature\n- developmental delay\n")
			},
			want: "short stature, developmental delay",
		},
		{
			name: "mapping with terms key",
			file: func(t *testing.T) string {
				return writeTermFile(t, "terms:\n  - seizures\n  - hypotonia\n")
			},
			want: "seizures, hypotonia",
		},
		{
			name: "blank terms dropped",
			file: func(t *testing.T) string {
				return writeTermFile(t, "- seizures\n- \"  \"\n- hypotonia\n")
			},
			want: "seizures, hypotonia",
		},
		{
			name:    "neither source",
			file:    func(t *testing.T) string { return "" },
			wantErr: "no phenotypes provided",
		},
		{
			name:    "empty file",
			file:    func(t *testing.T) string { return writeTermFile(t, "") },
			wantErr: "no terms",
		},
		{
			name: "missing file",
			file: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.yaml")
			},
			wantErr: "reading phenotype file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.text, tt.file(t))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
