// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report turns scored variants and an expression digest into a
// markdown findings report, via a generative model when one is
// configured and a deterministic template otherwise.
package report

import (
	"context"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/pdiddy/omics-reporter/pkg/types"
)

const (
	defaultTopVariants = 5
	defaultMaxRetries  = 3
)

// Backend abstracts the generative model so tests can supply a mock.
// Generate returns the model's text for one prompt.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ServiceError wraps any failure of the generative backend: transport,
// auth, malformed response, or empty content. It is always recovered
// inside the Synthesizer and never reaches the caller.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string { return fmt.Sprintf("model service: %v", e.Err) }
func (e *ServiceError) Unwrap() error { return e.Err }

// outcome is the tagged result of the model stage: either synthesized
// text or a fallback with its reason. Both arms are handled explicitly
// rather than threading the failure through error returns.
type outcome struct {
	synthesized bool
	text        string
	reason      string // empty in offline mode
}

// Synthesizer builds findings reports. A nil backend means no model
// credential is configured; that is the default offline-safe mode, not
// an error, and the deterministic template is used.
type Synthesizer struct {
	backend     Backend
	topVariants int
	maxRetries  int
}

// NewSynthesizer creates a Synthesizer. Whether a model is available is
// decided here, by the backend the caller passes in, never read from
// ambient process state.
func NewSynthesizer(backend Backend, cfg types.ReportConfig) *Synthesizer {
	topVariants := cfg.TopVariants
	if topVariants <= 0 {
		topVariants = defaultTopVariants
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &Synthesizer{
		backend:     backend,
		topVariants: topVariants,
		maxRetries:  maxRetries,
	}
}

// Synthesize produces the report for one pipeline run. It never fails:
// every model problem degrades to the template path, which reconstructs
// the report from the same digests. Writing the report anywhere is the
// caller's responsibility.
func (s *Synthesizer) Synthesize(ctx context.Context, phenotypes string, variants []types.ScoredVariant, expressionDigest string) types.Report {
	variantDigest := VariantDigest(variants, s.topVariants)

	out := s.attemptModel(ctx, phenotypes, variantDigest, expressionDigest)
	if out.synthesized {
		return types.Report{
			Body:       modelBody(out.text),
			Provenance: types.ProvenanceModel,
		}
	}
	return types.Report{
		Body:           fallbackBody(phenotypes, variantDigest, expressionDigest, out.reason),
		Provenance:     types.ProvenanceFallback,
		FallbackReason: out.reason,
	}
}

// attemptModel drives the model branch: build the prompt, call the
// backend with retries, and fold every failure mode into a fallback
// outcome instead of an error.
func (s *Synthesizer) attemptModel(ctx context.Context, phenotypes, variantDigest, expressionDigest string) outcome {
	if s.backend == nil {
		return outcome{}
	}

	prompt, err := buildPrompt(phenotypes, variantDigest, expressionDigest)
	if err != nil {
		return outcome{reason: fmt.Sprintf("building prompt: %v", err)}
	}

	text, err := generateWithRetry(ctx, s.backend, prompt, s.maxRetries)
	if err != nil {
		return outcome{reason: err.Error()}
	}
	if strings.TrimSpace(text) == "" {
		return outcome{reason: "model returned empty text"}
	}
	return outcome{synthesized: true, text: strings.TrimSpace(text)}
}

// backoffBase controls the base duration for exponential backoff
// between model retries. Tests override this to avoid real sleeps.
var backoffBase = time.Second

// generateWithRetry calls the backend with exponential backoff.
func generateWithRetry(ctx context.Context, backend Backend, prompt string, maxRetries int) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := backend.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}

// VariantDigest formats the top scored variants as a bulleted summary.
// The allele frequency is reproduced verbatim from the input table.
func VariantDigest(variants []types.ScoredVariant, topN int) string {
	if len(variants) == 0 {
		return "No candidate variants were prioritized."
	}
	if topN <= 0 {
		topN = defaultTopVariants
	}
	if len(variants) > topN {
		variants = variants[:topN]
	}

	var b strings.Builder
	b.WriteString("Top candidate variants (sorted by score):\n")
	for _, v := range variants {
		fmt.Fprintf(&b, "- %s %s:%d %s>%s (%s, af=%s, score=%.1f)\n",
			v.Gene, v.Chrom, v.Pos, v.Ref, v.Alt, v.Consequence, v.AF, v.Score)
	}
	return strings.TrimRight(b.String(), "\n")
}

// modelBody wraps verbatim model output with a provenance header and a
// disclaimer.
func modelBody(text string) string {
	return "# Rare Disease Multi-Omics Report (model-generated)\n\n" +
		text +
		"\n\n> Note: this report was produced by a generative model from" +
		" synthetic research data. It is not a clinical document.\n"
}

// fallbackTmpl renders the deterministic report directly from the
// digests, with no model involvement. The four section headings are
// fixed.
var fallbackTmpl = template.Must(template.New("fallback").Parse(`# Rare Disease Multi-Omics Report

## Phenotypes
{{.Phenotypes}}

## Variant summary
{{.VariantDigest}}

## Expression summary
{{.ExpressionDigest}}

## Notes
- This report was generated without a generative model.
{{- if .Reason}}
- Model synthesis failed: {{.Reason}}
{{- end}}
- All data are synthetic and for research use only; this is not a clinical report.
`))

// fallbackBody renders the template path. reason is empty in offline
// mode and carries the failure cause after a model error.
func fallbackBody(phenotypes, variantDigest, expressionDigest, reason string) string {
	var b strings.Builder
	err := fallbackTmpl.Execute(&b, struct {
		Phenotypes       string
		VariantDigest    string
		ExpressionDigest string
		Reason           string
	}{
		Phenotypes:       phenotypes,
		VariantDigest:    variantDigest,
		ExpressionDigest: expressionDigest,
		Reason:           reason,
	})
	if err != nil {
		// The template has no failure modes with string inputs.
		panic(err)
	}
	return b.String()
}
