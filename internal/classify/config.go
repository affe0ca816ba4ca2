package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the immutable scoring configuration. It is built once at startup
// and injected; scoring is a pure function of (predictions, config), so tests
// never touch package-level state. The numeric tunables were calibrated
// against classifier output and are deliberately data, not logic.
type Config struct {
	// Keywords are the generic per-category vocabularies, matched as
	// lowercase substrings against label text at plain rank weight.
	Keywords map[Category][]string

	// BoostTerms are category-specific vocabularies scored at
	// BoostMultiplier[cat] times the rank weight instead of the generic
	// weight. Generic vocabularies overlap ("bottle" is both plastic and
	// glass language); the boosts correct for that under-discrimination.
	BoostTerms      map[Category][]string
	BoostMultiplier map[Category]float64

	// StrongIndicators are decisive single-material terms. A hit anywhere
	// in the prediction list adds StrongIndicatorBonus regardless of rank.
	StrongIndicators     map[Category][]string
	StrongIndicatorBonus float64

	// RankDecay shrinks the weight of the i-th prediction: w = 1 - i*RankDecay,
	// never below RankWeightFloor.
	RankDecay       float64
	RankWeightFloor float64

	// NearTieEpsilon bounds the score gap at which two conflict-pair
	// categories are considered contested.
	NearTieEpsilon float64

	// ConflictPairs lists category pairs whose vocabularies legitimately
	// overlap and therefore get the tie-break cascade.
	ConflictPairs [][2]Category

	// TopK caps how many predictions are requested and scored.
	TopK int
}

func DefaultConfig() Config {
	return Config{
		Keywords: map[Category][]string{
			CategoryPlastic: {
				"plastic", "bottle", "container", "bag", "wrapper",
				"packaging", "cup", "straw", "lid", "foam", "styrofoam",
				"polymer", "toy",
			},
			CategoryPaper: {
				"paper", "cardboard", "newspaper", "magazine", "envelope",
				"carton", "book", "notebook", "card", "tissue", "receipt",
			},
			CategoryGlass: {
				"glass", "bottle", "jar", "mirror", "window", "vase",
				"tumbler", "goblet", "lens",
			},
			CategoryMetal: {
				"metal", "can", "tin", "foil", "iron", "cutlery",
				"silverware", "wire", "nail", "screw", "pipe",
			},
			CategoryOrganic: {
				"food", "fruit", "vegetable", "banana", "apple", "peel",
				"leaf", "plant", "flower", "grass", "bread", "egg",
				"coffee", "compost",
			},
			CategoryWood: {
				"wood", "wooden", "table", "chair", "furniture", "plank",
				"branch", "stick", "bark", "log", "trunk", "crate",
			},
			CategoryElectronic: {
				"electronic", "device", "computer", "laptop", "phone",
				"keyboard", "screen", "monitor", "charger", "cable",
				"battery", "remote", "camera", "television", "headphone",
				"speaker",
			},
			CategoryOthers: {},
		},
		BoostTerms: map[Category][]string{
			CategoryElectronic: {
				"laptop", "smartphone", "phone", "computer", "keyboard",
				"mouse", "monitor", "tablet", "circuit", "gadget",
			},
			CategoryPlastic: {
				"plastic", "polyethylene", "polypropylene", "pvc",
				"nylon", "acrylic", "vinyl",
			},
			CategoryGlass: {
				"glass", "glassware", "stemware", "crystal",
			},
			CategoryWood: {
				"oak", "pine", "mahogany", "birch", "plywood",
				"hardwood", "driftwood",
			},
			CategoryMetal: {
				"steel", "aluminum", "aluminium", "copper", "brass",
				"alloy", "chrome", "pewter",
			},
		},
		BoostMultiplier: map[Category]float64{
			CategoryElectronic: 2.0,
			CategoryPlastic:    1.5,
			CategoryGlass:      1.5,
			CategoryWood:       1.5,
			CategoryMetal:      1.5,
		},
		StrongIndicators: map[Category][]string{
			CategoryMetal: {"steel", "stainless steel", "aluminum", "aluminium", "wrought iron"},
			CategoryWood:  {"lumber", "timber", "oak", "mahogany", "plywood"},
		},
		StrongIndicatorBonus: 3.0,
		RankDecay:            0.05,
		RankWeightFloor:      0.05,
		NearTieEpsilon:       1.0,
		ConflictPairs: [][2]Category{
			{CategoryWood, CategoryMetal},
		},
		TopK: 15,
	}
}

// Overrides is the YAML shape for retuning the numeric knobs without a code
// change. Vocabulary edits ship as code; the empirically tuned constants are
// the ones operators actually touch.
type Overrides struct {
	StrongIndicatorBonus *float64 `yaml:"strong_indicator_bonus"`
	RankDecay            *float64 `yaml:"rank_decay"`
	RankWeightFloor      *float64 `yaml:"rank_weight_floor"`
	NearTieEpsilon       *float64 `yaml:"near_tie_epsilon"`
	TopK                 *int     `yaml:"top_k"`

	BoostMultiplier map[string]float64 `yaml:"boost_multiplier"`
}

// LoadConfig returns the defaults, applying overrides from the YAML file at
// path when path is non-empty.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scoring config %s: %w", path, err)
	}
	var ov Overrides
	if err := yaml.Unmarshal(raw, &ov); err != nil {
		return cfg, fmt.Errorf("parse scoring config %s: %w", path, err)
	}
	return cfg.apply(ov), nil
}

func (c Config) apply(ov Overrides) Config {
	if ov.StrongIndicatorBonus != nil {
		c.StrongIndicatorBonus = *ov.StrongIndicatorBonus
	}
	if ov.RankDecay != nil {
		c.RankDecay = *ov.RankDecay
	}
	if ov.RankWeightFloor != nil {
		c.RankWeightFloor = *ov.RankWeightFloor
	}
	if ov.NearTieEpsilon != nil {
		c.NearTieEpsilon = *ov.NearTieEpsilon
	}
	if ov.TopK != nil && *ov.TopK > 0 {
		c.TopK = *ov.TopK
	}
	if len(ov.BoostMultiplier) > 0 {
		merged := make(map[Category]float64, len(c.BoostMultiplier))
		for k, v := range c.BoostMultiplier {
			merged[k] = v
		}
		for k, v := range ov.BoostMultiplier {
			if v > 0 {
				merged[Category(k)] = v
			}
		}
		c.BoostMultiplier = merged
	}
	return c
}

// vocabulary is the union of every term that speaks for a category. Used by
// the resolver and the zero-score fallback, where "belongs to" means any of
// the three tables.
func (c Config) vocabulary(cat Category) []string {
	out := make([]string, 0, len(c.Keywords[cat])+len(c.BoostTerms[cat])+len(c.StrongIndicators[cat]))
	out = append(out, c.Keywords[cat]...)
	out = append(out, c.BoostTerms[cat]...)
	out = append(out, c.StrongIndicators[cat]...)
	return out
}
