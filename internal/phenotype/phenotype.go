// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package phenotype resolves the patient phenotype description for a
// run, from free text or from a YAML term file.
package phenotype

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// termFile is the mapping form of a phenotype file.
type termFile struct {
	Terms []string `yaml:"terms"`
}

// Load returns the phenotype description: the free-text value when
// given, otherwise the terms from the YAML file at path joined into one
// line. Exactly one source must yield something.
func Load(text, path string) (string, error) {
	if strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text), nil
	}
	if path == "" {
		return "", fmt.Errorf("no phenotypes provided: use --phenotypes or --phenotype-file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading phenotype file: %w", err)
	}

	terms, err := parseTerms(data)
	if err != nil {
		return "", fmt.Errorf("parsing phenotype file %s: %w", path, err)
	}
	if len(terms) == 0 {
		return "", fmt.Errorf("phenotype file %s contains no terms", path)
	}
	return strings.Join(terms, ", "), nil
}

// parseTerms accepts either a bare YAML sequence of term strings or a
// mapping with a "terms" key.
func parseTerms(data []byte) ([]string, error) {
	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil {
		return cleanTerms(list), nil
	}

	var file termFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return cleanTerms(file.Terms), nil
}

// cleanTerms trims terms and drops empty entries.
func cleanTerms(terms []string) []string {
	var out []string
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
