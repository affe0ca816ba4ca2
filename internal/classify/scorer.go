package classify

import "strings"

// ScorePredictions accumulates a score vector from a ranked prediction list.
// Deterministic: categories are visited in enumeration order, there is no
// clock and no randomness, so identical inputs produce identical vectors.
//
// Per prediction at rank i the weight is 1 - i*RankDecay (floored). A label
// matching a category's boost terms contributes weight*multiplier; otherwise
// a generic keyword match contributes the plain weight. At most one
// contribution per (label, category) pair. Strong indicators then add a flat
// rank-independent bonus, once per category that had any hit.
func ScorePredictions(preds []Prediction, cfg Config) (ScoreVector, StrongHits) {
	sv := NewScoreVector()
	strong := make(StrongHits)

	if cfg.TopK > 0 && len(preds) > cfg.TopK {
		preds = preds[:cfg.TopK]
	}

	for i, p := range preds {
		label := strings.ToLower(strings.TrimSpace(p.Label))
		if label == "" {
			continue
		}
		w := 1 - float64(i)*cfg.RankDecay
		if w < cfg.RankWeightFloor {
			w = cfg.RankWeightFloor
		}
		for _, cat := range Categories {
			switch {
			case containsAny(label, cfg.BoostTerms[cat]):
				mult := cfg.BoostMultiplier[cat]
				if mult <= 0 {
					mult = 1
				}
				sv[cat] += w * mult
			case containsAny(label, cfg.Keywords[cat]):
				sv[cat] += w
			}
		}
	}

	for _, cat := range Categories {
		if anyPredictionContains(preds, cfg.StrongIndicators[cat]) {
			sv[cat] += cfg.StrongIndicatorBonus
			strong[cat] = true
		}
	}

	return sv, strong
}

func containsAny(label string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(label, term) {
			return true
		}
	}
	return false
}

func anyPredictionContains(preds []Prediction, terms []string) bool {
	for _, p := range preds {
		if containsAny(strings.ToLower(p.Label), terms) {
			return true
		}
	}
	return false
}
