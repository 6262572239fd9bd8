// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package variant

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/omics-reporter/pkg/types"
)

// ScoreInputError reports a row whose value could not be interpreted
// for scoring. It aborts the whole scoring pass: a partially scored
// table would mislead the ranking.
type ScoreInputError struct {
	// Row is the 1-based position of the record in input order.
	Row    int
	Column string
	Value  string
}

func (e *ScoreInputError) Error() string {
	return fmt.Sprintf("scoring row %d: cannot interpret %s value %q", e.Row, e.Column, e.Value)
}

// consequenceScores maps each consequence class to its impact
// contribution. Consequences not listed contribute 0.
var consequenceScores = map[types.Consequence]float64{
	types.ConsequenceStopGained:     3.0,
	types.ConsequenceFrameshift:     3.0,
	types.ConsequenceSpliceAcceptor: 3.0,
	types.ConsequenceSpliceDonor:    3.0,
	types.ConsequenceMissense:       2.0,
	types.ConsequenceInframeDel:     2.0,
	types.ConsequenceInframeIns:     2.0,
}

// Score applies the rule-based suspicion score to each record and
// returns the records ordered most to least suspicious. Records with
// equal scores keep their input order.
func Score(records []types.VariantRecord) ([]types.ScoredVariant, error) {
	scored := make([]types.ScoredVariant, 0, len(records))
	for i, rec := range records {
		af, err := strconv.ParseFloat(strings.TrimSpace(rec.AF), 64)
		if err != nil {
			return nil, &ScoreInputError{Row: i + 1, Column: "af", Value: rec.AF}
		}
		scored = append(scored, types.ScoredVariant{
			VariantRecord: rec,
			Score:         scoreRow(rec.Consequence, af),
		})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})
	return scored, nil
}

// scoreRow computes the suspicion score for one variant. Higher is more
// suspicious. This is an illustrative heuristic, not a calibrated model.
//
// Impact: stop/frameshift/splice +3.0, missense/inframe +2.0, all other
// consequences +0.0. Rarity: af < 0.001 +3.0, af < 0.01 +2.0,
// af < 0.05 +1.0. The rarity comparisons are strict, so an af of
// exactly 0.001 lands in the 0.01 bucket.
func scoreRow(c types.Consequence, af float64) float64 {
	score := consequenceScores[c]
	switch {
	case af < 0.001:
		score += 3.0
	case af < 0.01:
		score += 2.0
	case af < 0.05:
		score += 1.0
	}
	return score
}
