package classify

// Category is the closed set of waste types every submission resolves to.
type Category string

const (
	CategoryPlastic    Category = "plastic"
	CategoryPaper      Category = "paper"
	CategoryGlass      Category = "glass"
	CategoryMetal      Category = "metal"
	CategoryOrganic    Category = "organic"
	CategoryWood       Category = "wood"
	CategoryElectronic Category = "electronic"
	CategoryOthers     Category = "others"
)

// Categories fixes the enumeration order. Scoring, conflict resolution and
// the final argmax all iterate in this order, which is what makes exact-tie
// selection deterministic.
var Categories = []Category{
	CategoryPlastic,
	CategoryPaper,
	CategoryGlass,
	CategoryMetal,
	CategoryOrganic,
	CategoryWood,
	CategoryElectronic,
	CategoryOthers,
}

// Prediction is one ranked guess from the label source, ordered descending by
// confidence within a result list.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ScoreVector always carries every category key; missing keys would make the
// argmax depend on which labels happened to match.
type ScoreVector map[Category]float64

func NewScoreVector() ScoreVector {
	sv := make(ScoreVector, len(Categories))
	for _, cat := range Categories {
		sv[cat] = 0
	}
	return sv
}

// Clone returns an independent copy so resolution can stay a pure function.
func (sv ScoreVector) Clone() ScoreVector {
	out := make(ScoreVector, len(sv))
	for k, v := range sv {
		out[k] = v
	}
	return out
}

// StrongHits records which categories had a strong indicator fire anywhere in
// the prediction list.
type StrongHits map[Category]bool
