package classify

import "strings"

// Decide selects the final category. Total by construction: a zero vector
// falls back to rescanning just the top label, and failing that returns
// CategoryOthers, which is a valid category with its own guidance rather
// than an error.
func Decide(sv ScoreVector, topLabel string, cfg Config) Category {
	best := CategoryOthers
	bestScore := 0.0
	for _, cat := range Categories {
		if sv[cat] > bestScore {
			best = cat
			bestScore = sv[cat]
		}
	}
	if bestScore > 0 {
		return best
	}

	top := strings.ToLower(strings.TrimSpace(topLabel))
	if top != "" {
		for _, cat := range Categories {
			if cat == CategoryOthers {
				continue
			}
			if containsAny(top, cfg.vocabulary(cat)) {
				return cat
			}
		}
	}
	return CategoryOthers
}
