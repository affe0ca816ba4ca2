package classify

// Guidance is the static disposal record attached to a decided category.
type Guidance struct {
	Instructions string `json:"instructions"`
	Recyclable   bool   `json:"recyclable"`
	Impact       string `json:"impact"`
	Tips         string `json:"tips"`
}

var guidanceByCategory = map[Category]Guidance{
	CategoryPlastic: {
		Instructions: "Rinse, remove caps and labels where possible, and place in the plastics recycling bin.",
		Recyclable:   true,
		Impact:       "Plastic persists for centuries and fragments into microplastics that enter waterways and food chains.",
		Tips:         "Prefer reusable bottles and bags; avoid single-use plastic packaging.",
	},
	CategoryPaper: {
		Instructions: "Keep dry and flatten before placing in the paper recycling bin. Soiled paper goes to general waste.",
		Recyclable:   true,
		Impact:       "Recycling paper saves trees, water and roughly two thirds of the energy of virgin production.",
		Tips:         "Print double-sided and reuse packaging cartons before recycling them.",
	},
	CategoryGlass: {
		Instructions: "Rinse and place in the glass bank; separate by color where your facility requires it. Do not include ceramics or mirrors.",
		Recyclable:   true,
		Impact:       "Glass is endlessly recyclable without quality loss, but landfilled glass never degrades.",
		Tips:         "Return deposit bottles and reuse jars for storage.",
	},
	CategoryMetal: {
		Instructions: "Empty and rinse cans and tins, then place in the metal recycling bin. Scrap larger items at a collection point.",
		Recyclable:   true,
		Impact:       "Recycling aluminum uses about 5% of the energy of smelting new metal.",
		Tips:         "Crush cans to save bin space and collect foil into a ball before recycling.",
	},
	CategoryOrganic: {
		Instructions: "Place in the organic/compost bin. Keep free of plastic bags and stickers.",
		Recyclable:   false,
		Impact:       "Organics in landfill decompose anaerobically and release methane; composted they rebuild soil instead.",
		Tips:         "Home-compost fruit and vegetable scraps where you can.",
	},
	CategoryWood: {
		Instructions: "Take untreated wood to a recycling yard or civic amenity site. Painted or treated wood needs special disposal.",
		Recyclable:   true,
		Impact:       "Reclaimed wood offsets logging; treated wood leaches preservatives if dumped.",
		Tips:         "Offer usable furniture for reuse before disposing of it.",
	},
	CategoryElectronic: {
		Instructions: "Never bin electronics. Hand in at an e-waste collection point or retailer take-back scheme.",
		Recyclable:   true,
		Impact:       "E-waste contains heavy metals that contaminate soil and water, alongside recoverable rare materials.",
		Tips:         "Repair or donate working devices; remove batteries before handing devices in.",
	},
	CategoryOthers: {
		Instructions: "Check your local waste guidelines for this item before disposal.",
		Recyclable:   false,
		Impact:       "Unsorted waste is typically landfilled or incinerated.",
		Tips:         "When unsure, ask your local waste authority rather than guessing a bin.",
	},
}

// GuidanceFor is a pure lookup; unknown categories get the catch-all record.
func GuidanceFor(cat Category) Guidance {
	if g, ok := guidanceByCategory[cat]; ok {
		return g
	}
	return guidanceByCategory[CategoryOthers]
}
