// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"text/template"
)

// reportPromptTmpl is the prompt sent to the generative model. It pins
// the section structure and the research-only framing so the returned
// body can be used verbatim.
var reportPromptTmpl = template.Must(template.New("report").Parse(`You are an expert clinical genomicist and rare disease specialist.

You will be given:
- Patient phenotypes
- A list of prioritized variants with simple rule-based scores
- A brief summary of differential expression results

Write a concise, structured research report that:
1. Summarizes the phenotype in clinical language.
2. Integrates the variant findings and highlights the most plausible causal gene(s).
3. Comments on whether the expression data supports or contradicts the variant findings.
4. Clearly states limitations (synthetic data, simplified scoring) and that this is research-only output, not a clinical report.

Use markdown headings (## Phenotype, ## Genomic findings, ## Expression findings, ## Interpretation / Limitations).

Patient phenotypes:
{{.Phenotypes}}

Variant summary:
{{.VariantSummary}}

Expression summary:
{{.ExpressionSummary}}
`))

// buildPrompt renders the report prompt with the run's digests.
func buildPrompt(phenotypes, variantSummary, expressionSummary string) (string, error) {
	var buf bytes.Buffer
	err := reportPromptTmpl.Execute(&buf, struct {
		Phenotypes        string
		VariantSummary    string
		ExpressionSummary string
	}{
		Phenotypes:        phenotypes,
		VariantSummary:    variantSummary,
		ExpressionSummary: expressionSummary,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
