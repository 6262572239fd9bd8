package deseq

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/omics-reporter/pkg/types"
)

// call records one executed command.
type call struct {
	name string
	args []string
}

// mockExecutor records Run calls and can fail a given script.
type mockExecutor struct {
	calls      []call
	missing    bool   // LookPath fails
	failScript string // script name whose run fails
	stderrText string // written to stderr on every run
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.missing {
		return "", fmt.Errorf("%s: executable file not found in $PATH", file)
	}
	return "/usr/bin/" + file, nil
}

func (m *mockExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	m.calls = append(m.calls, call{name: name, args: args})
	if m.stderrText != "" {
		fmt.Fprint(stderr, m.stderrText)
	}
	if m.failScript != "" && strings.Contains(args[0], m.failScript) {
		return fmt.Errorf("exit status 1")
	}
	fmt.Fprintln(stdout, "ok")
	return nil
}

func testRunner(t *testing.T, exec executor) *Runner {
	t.Helper()
	r, err := newRunner(types.DESeqConfig{OutDir: filepath.Join(t.TempDir(), "expression")}, exec)
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	return r
}

func TestRunnerRunsBothScripts(t *testing.T) {
	exec := &mockExecutor{}
	r := testRunner(t, exec)

	var out bytes.Buffer
	resultsPath, err := r.Run("counts.tsv", &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(exec.calls) != 2 {
		t.Fatalf("got %d script runs, want 2", len(exec.calls))
	}

	first := exec.calls[0]
	if first.name != "Rscript" {
		t.Errorf("first command = %q, want Rscript", first.name)
	}
	if first.args[0] != filepath.Join("R", deseqScript) || first.args[1] != "counts.tsv" {
		t.Errorf("deseq args = %v", first.args)
	}

	second := exec.calls[1]
	if second.args[0] != filepath.Join("R", pathwayScript) || second.args[1] != resultsPath {
		t.Errorf("pathway args = %v", second.args)
	}

	if filepath.Base(resultsPath) != ResultsFile {
		t.Errorf("resultsPath = %q", resultsPath)
	}
}

func TestRunnerLabelsStderr(t *testing.T) {
	exec := &mockExecutor{stderrText: "converting counts to integer mode\n"}
	r := testRunner(t, exec)

	var out bytes.Buffer
	if _, err := r.Run("counts.tsv", &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "[R stderr]\nconverting counts to integer mode") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunnerScriptFailure(t *testing.T) {
	exec := &mockExecutor{failScript: deseqScript}
	r := testRunner(t, exec)

	var out bytes.Buffer
	_, err := r.Run("counts.tsv", &out)
	if err == nil {
		t.Fatal("want error when DESeq2 script fails")
	}
	if !strings.Contains(err.Error(), deseqScript) {
		t.Errorf("error = %q, should name the script", err)
	}
	if len(exec.calls) != 1 {
		t.Errorf("enrichment ran after DESeq2 failure: %v", exec.calls)
	}
}

func TestNewRunnerMissingRscript(t *testing.T) {
	_, err := newRunner(types.DESeqConfig{}, &mockExecutor{missing: true})
	if err == nil || !strings.Contains(err.Error(), "Rscript") {
		t.Errorf("err = %v, want missing-Rscript error", err)
	}
}
