package models

// SeasonDocument is the root aggregate for one crop year. Everything the
// planner shows for a year is derived from a single document.
type SeasonDocument struct {
	Year               int                   `bson:"year" json:"year"`
	Crops              []Crop                `bson:"crops" json:"crops"`
	IncomeItems        []IncomeItem          `bson:"incomeItems" json:"incomeItems"`
	FertProducts       []FertProduct         `bson:"fertProducts" json:"fertProducts"`
	FertFlats          []FlatPool            `bson:"fertFlats" json:"fertFlats"`
	HerbPasses         []FieldPass           `bson:"herbPasses" json:"herbPasses"`
	HerbReconcile      float64               `bson:"herbReconcile" json:"herbReconcile"`
	InsectProducts     []FieldPass           `bson:"insectProducts" json:"insectProducts"`
	IrrCostPerInch     float64               `bson:"irrCostPerInch" json:"irrCostPerInch"`
	OverheadItems      []OverheadItem        `bson:"overheadItems" json:"overheadItems"`
	RestrictedGroup    string                `bson:"restrictedGroup" json:"restrictedGroup"`
	RentPerCrop        CropValues            `bson:"rentPerCrop" json:"rentPerCrop"`
	MarketingGroups    []MarketingGroup      `bson:"marketingGroups" json:"marketingGroups"`
	Contracts          map[string][]Contract `bson:"contracts" json:"contracts"`
	CashRents          []CashRent            `bson:"cashRents" json:"cashRents"`
	GrainTickets       []GrainTicket         `bson:"grainTickets" json:"grainTickets"`
	CapitalPlan        []CapitalItem         `bson:"capitalPlan" json:"capitalPlan"`
	WishList           []WishItem            `bson:"wishList" json:"wishList"`
	InventoryProducts  []InventoryProduct    `bson:"inventoryProducts" json:"inventoryProducts"`
	InventorySnapshots []InventorySnapshot   `bson:"inventorySnapshots" json:"inventorySnapshots"`
}

// DefaultRestrictedGroup is the marketing group whose crop carries the
// restricted overhead when a document does not name one.
const DefaultRestrictedGroup = "amylose"

// EligibleForRestricted reports whether the crop absorbs restricted overhead.
func (d *SeasonDocument) EligibleForRestricted(c *Crop) bool {
	if d == nil || c == nil {
		return false
	}
	group := d.RestrictedGroup
	if group == "" {
		group = DefaultRestrictedGroup
	}
	return c.MarketGroup == group
}

// FindCrop returns the crop with the given id, or nil.
func (d *SeasonDocument) FindCrop(id string) *Crop {
	if d == nil {
		return nil
	}
	for i := range d.Crops {
		if d.Crops[i].ID == id {
			return &d.Crops[i]
		}
	}
	return nil
}

// FindGroup returns the marketing group with the given id, or nil.
func (d *SeasonDocument) FindGroup(id string) *MarketingGroup {
	if d == nil {
		return nil
	}
	for i := range d.MarketingGroups {
		if d.MarketingGroups[i].ID == id {
			return &d.MarketingGroups[i]
		}
	}
	return nil
}

// CropValues maps a crop id to a per-crop number (rate, flag or rent).
type CropValues map[string]float64

// Of returns the value recorded for the crop, zero when absent.
func (v CropValues) Of(cropID string) float64 {
	if v == nil {
		return 0
	}
	return v[cropID]
}

func (v CropValues) clone() CropValues {
	if v == nil {
		return nil
	}
	out := make(CropValues, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// MarketingGroup clusters crops that share one contract pool.
type MarketingGroup struct {
	ID      string   `bson:"id" json:"id"`
	Name    string   `bson:"name" json:"name"`
	CropIDs []string `bson:"cropIds" json:"cropIds"`
	Color   string   `bson:"color" json:"color"`
}

// IncomeItem is a miscellaneous income line expressed per acre.
type IncomeItem struct {
	ID    string  `bson:"id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	PerAc float64 `bson:"perAc" json:"perAc"`
}

// CashRent is one lease line.
type CashRent struct {
	ID       int     `bson:"id" json:"id"`
	Owner    string  `bson:"owner" json:"owner"`
	Farm     string  `bson:"farm" json:"farm"`
	Acres    float64 `bson:"acres" json:"acres"`
	RentAc   float64 `bson:"rentAc" json:"rentAc"`
	Type     string  `bson:"type" json:"type"`
	Bonus    float64 `bson:"bonus" json:"bonus"`
	Category string  `bson:"cat" json:"cat"`
}

// Rent categories.
const (
	RentCash   = "cash"
	RentOwned  = "owned"
	RentShare  = "share"
	RentCustom = "custom"
)

// CapitalItem is a planned or actual capital purchase.
type CapitalItem struct {
	ID        int     `bson:"id" json:"id"`
	Year      int     `bson:"year" json:"year"`
	Item      string  `bson:"item" json:"item"`
	Estimated float64 `bson:"estimated" json:"estimated"`
	Actual    float64 `bson:"actual" json:"actual"`
}

// WishItem is a capital idea that is not on the plan yet.
type WishItem struct {
	ID      int     `bson:"id" json:"id"`
	Item    string  `bson:"item" json:"item"`
	EstCost float64 `bson:"estCost" json:"estCost"`
	Notes   string  `bson:"notes" json:"notes"`
}
