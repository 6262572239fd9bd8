// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deseq invokes the external R analysis scripts. The scripts
// are opaque collaborators: this package only sequences them and hands
// back the path of the differential-expression results table.
package deseq

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdiddy/omics-reporter/pkg/types"
)

const (
	defaultRscriptBin = "Rscript"
	defaultScriptsDir = "R"

	deseqScript   = "01_deseq2_analysis.R"
	pathwayScript = "02_pathway_analysis.R"

	// ResultsFile is the table the DESeq2 script writes into the output
	// directory.
	ResultsFile = "deseq2_results.tsv"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// Runner runs the R analysis stage: DESeq2 followed by GO enrichment.
type Runner struct {
	cfg  types.DESeqConfig
	exec executor
}

// NewRunner creates a Runner and verifies the Rscript binary is on
// PATH before any script runs.
func NewRunner(cfg types.DESeqConfig) (*Runner, error) {
	return newRunner(cfg, defaultExec)
}

func newRunner(cfg types.DESeqConfig, exec executor) (*Runner, error) {
	if cfg.RscriptBin == "" {
		cfg.RscriptBin = defaultRscriptBin
	}
	if cfg.ScriptsDir == "" {
		cfg.ScriptsDir = defaultScriptsDir
	}
	if _, err := exec.LookPath(cfg.RscriptBin); err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", cfg.RscriptBin, err)
	}
	return &Runner{cfg: cfg, exec: exec}, nil
}

// Run executes the DESeq2 analysis on the counts matrix, then the GO
// enrichment on its results, and returns the path of the
// differential-expression results table. Script output goes to out.
func (r *Runner) Run(countsPath string, out io.Writer) (string, error) {
	if err := os.MkdirAll(r.cfg.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	if err := r.runScript(deseqScript, out, countsPath, r.cfg.OutDir); err != nil {
		return "", err
	}

	resultsPath := filepath.Join(r.cfg.OutDir, ResultsFile)

	if err := r.runScript(pathwayScript, out, resultsPath, r.cfg.OutDir); err != nil {
		return "", err
	}

	return resultsPath, nil
}

// runScript runs one analysis script, streaming stdout to out and
// labeling any stderr output the way the pipeline always has.
func (r *Runner) runScript(script string, out io.Writer, args ...string) error {
	scriptPath := filepath.Join(r.cfg.ScriptsDir, script)

	var stderr bytes.Buffer
	cmdArgs := append([]string{scriptPath}, args...)
	err := r.exec.Run(r.cfg.RscriptBin, cmdArgs, out, &stderr)

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		fmt.Fprintf(out, "[R stderr]\n%s\n", msg)
	}
	if err != nil {
		return fmt.Errorf("running %s: %w", script, err)
	}
	return nil
}
