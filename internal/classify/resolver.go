package classify

import (
	"math"
	"strings"
)

// ResolveConflicts post-processes a score vector for category pairs whose
// vocabularies legitimately overlap (wood/metal being the canonical pair:
// trunk, grain and finish language shows up in both). Pure: the input vector
// is not mutated.
//
// For a contested pair (both non-zero, gap under epsilon) the cascade is:
//  1. exactly one side has a strong indicator hit: zero the other side;
//  2. the single top-ranked label contains terms for exactly one side:
//     zero the other side;
//  3. leave both scores; the decision argmax then picks by enumeration
//     order. That residual ambiguity is accepted, not silently patched.
func ResolveConflicts(sv ScoreVector, strong StrongHits, topLabel string, cfg Config) ScoreVector {
	out := sv.Clone()
	top := strings.ToLower(strings.TrimSpace(topLabel))

	for _, pair := range cfg.ConflictPairs {
		a, b := pair[0], pair[1]
		if out[a] <= 0 || out[b] <= 0 {
			continue
		}
		if math.Abs(out[a]-out[b]) >= cfg.NearTieEpsilon {
			continue
		}

		if strong[a] != strong[b] {
			if strong[a] {
				out[b] = 0
			} else {
				out[a] = 0
			}
			continue
		}

		if top == "" {
			continue
		}
		aHit := containsAny(top, cfg.vocabulary(a))
		bHit := containsAny(top, cfg.vocabulary(b))
		if aHit != bHit {
			if aHit {
				out[b] = 0
			} else {
				out[a] = 0
			}
		}
	}
	return out
}
