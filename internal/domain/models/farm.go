package models

// Crop captures the budget economics of one planted crop.
type Crop struct {
	ID          string   `bson:"id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Acres       float64  `bson:"acres" json:"acres"`
	BudgetYield float64  `bson:"budgetYield" json:"budgetYield"`
	ActualYield *float64 `bson:"actualYield" json:"actualYield"`
	BudgetPrice float64  `bson:"budgetPrice" json:"budgetPrice"`
	ActualPrice *float64 `bson:"actualPrice" json:"actualPrice"`
	Color       string   `bson:"color" json:"color"`
	SeedBag     float64  `bson:"seedBag" json:"seedBag"`
	SeedRate    float64  `bson:"seedRate" json:"seedRate"`
	SeedPrice   float64  `bson:"seedPrice" json:"seedPrice"`
	DryingPerBu float64  `bson:"dryingPerBu" json:"dryingPerBu"`
	IrrInches   float64  `bson:"irrInches" json:"irrInches"`
	MarketGroup string   `bson:"marketGroup" json:"marketGroup"`
}

// FertProduct is a priced fertilizer product applied at a per-crop rate.
// Rates are pounds per acre; PerLb products are priced per pound of
// active ingredient instead of per ton of product.
type FertProduct struct {
	ID          string     `bson:"id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	PricePerTon float64    `bson:"pricePerTon" json:"pricePerTon"`
	PricePerLb  float64    `bson:"pricePerLb" json:"pricePerLb"`
	PerLb       bool       `bson:"isPerLb" json:"isPerLb"`
	Unit        string     `bson:"unit" json:"unit"`
	Mult        float64    `bson:"mult" json:"mult"`
	Rates       CropValues `bson:"rates" json:"rates"`
}

// FlatPool is a single cost total shared across all planted acreage.
type FlatPool struct {
	ID    string  `bson:"id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	Total float64 `bson:"total" json:"total"`
}

// FieldPass is a herbicide pass or insecticide/fungicide product. Flags are
// real-valued applicability weights, so 0.5 means half the pass applies.
type FieldPass struct {
	ID        string     `bson:"id" json:"id"`
	Name      string     `bson:"name" json:"name"`
	CostPerAc float64    `bson:"costPerAc" json:"costPerAc"`
	Flags     CropValues `bson:"flags" json:"flags"`
}

// OverheadItem is a whole-farm cost allocated by group. Restricted items are
// carried only by the crop eligible for restricted overhead.
type OverheadItem struct {
	ID         string        `bson:"id" json:"id"`
	Name       string        `bson:"name" json:"name"`
	Total      float64       `bson:"total" json:"total"`
	Group      OverheadGroup `bson:"group" json:"group"`
	Restricted bool          `bson:"restricted" json:"restricted"`
}

// OverheadGroup enumerates the overhead buckets shown on the budget.
type OverheadGroup string

const (
	GroupMachinery  OverheadGroup = "Machinery"
	GroupInsurance  OverheadGroup = "Insurance"
	GroupConsulting OverheadGroup = "Consulting"
	GroupOther      OverheadGroup = "Other"
	GroupLabor      OverheadGroup = "Labor"
	GroupTaxesUtil  OverheadGroup = "Taxes/Util"
	GroupInterest   OverheadGroup = "Interest"
)

// OverheadGroups lists every valid group in display order.
var OverheadGroups = []OverheadGroup{
	GroupMachinery,
	GroupInsurance,
	GroupConsulting,
	GroupOther,
	GroupLabor,
	GroupTaxesUtil,
	GroupInterest,
}

// Valid reports whether g is one of the known groups.
func (g OverheadGroup) Valid() bool {
	for _, known := range OverheadGroups {
		if g == known {
			return true
		}
	}
	return false
}
