// Package allocation turns a season document into per-acre cost and income
// figures. Every function is pure and total: missing numbers count as zero
// and divisions by zero acreage short-circuit to zero.
package allocation

import "github.com/mamadbah2/cropbudget/internal/domain/models"

// LineItem is one row of the per-crop cost breakdown.
type LineItem struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Line item keys, in breakdown order.
const (
	KeySeed     = "seed"
	KeyHerb     = "herb"
	KeyInsect   = "insect"
	KeyFert     = "fert"
	KeyConsult  = "consult"
	KeyCropIns  = "cropIns"
	KeyDrying   = "drying"
	KeyMisc     = "misc"
	KeyTaxes    = "taxes"
	KeyMach     = "mach"
	KeyLabor    = "labor"
	KeyIrr      = "irr"
	KeyRent     = "rent"
	KeyInterest = "interest"
)

// TotalPlantedAcres sums the acreage of every crop.
func TotalPlantedAcres(doc *models.SeasonDocument) float64 {
	if doc == nil {
		return 0
	}
	var total float64
	for _, c := range doc.Crops {
		total += c.Acres
	}
	return total
}

// SeedCostPerAcre is seedPrice / bagSize * seedRate, or 0 unless both the
// bag size and rate are positive.
func SeedCostPerAcre(crop *models.Crop) float64 {
	if crop == nil || crop.SeedBag <= 0 || crop.SeedRate <= 0 {
		return 0
	}
	return crop.SeedPrice / crop.SeedBag * crop.SeedRate
}

// FertilizerCostPerAcre prices every product applied to the crop and adds
// the flat pools spread over total acreage.
func FertilizerCostPerAcre(doc *models.SeasonDocument, cropID string) float64 {
	if doc == nil {
		return 0
	}

	var total float64
	for _, p := range doc.FertProducts {
		rate := p.Rates.Of(cropID)
		if rate == 0 {
			continue
		}
		if p.PerLb {
			total += rate * p.PricePerLb
			continue
		}
		mult := p.Mult
		if mult == 0 {
			mult = 1
		}
		total += p.PricePerTon / 2000 * rate * mult
	}

	if acres := TotalPlantedAcres(doc); acres > 0 {
		for _, f := range doc.FertFlats {
			total += f.Total / acres
		}
	}
	return total
}

// HerbicideCostPerAcre is the flag-weighted sum of passes plus the
// reconciliation total spread over total acreage.
func HerbicideCostPerAcre(doc *models.SeasonDocument, cropID string) float64 {
	if doc == nil {
		return 0
	}
	total := flagWeighted(doc.HerbPasses, cropID)
	if acres := TotalPlantedAcres(doc); acres > 0 && doc.HerbReconcile != 0 {
		total += doc.HerbReconcile / acres
	}
	return total
}

// InsecticideCostPerAcre is the flag-weighted sum of insecticide and
// fungicide products.
func InsecticideCostPerAcre(doc *models.SeasonDocument, cropID string) float64 {
	if doc == nil {
		return 0
	}
	return flagWeighted(doc.InsectProducts, cropID)
}

func flagWeighted(passes []models.FieldPass, cropID string) float64 {
	var total float64
	for _, p := range passes {
		total += p.Flags.Of(cropID) * p.CostPerAc
	}
	return total
}

// OverheadCostPerAcre spreads the non-restricted items of a group over total
// acreage. The crop id is accepted for symmetry with the other line
// formulas; shared overhead is the same for every crop.
func OverheadCostPerAcre(doc *models.SeasonDocument, _ string, group models.OverheadGroup) float64 {
	acres := TotalPlantedAcres(doc)
	if acres <= 0 {
		return 0
	}
	var total float64
	for _, o := range doc.OverheadItems {
		if o.Group == group && !o.Restricted {
			total += o.Total
		}
	}
	return total / acres
}

// RestrictedOverheadExtra spreads every restricted item over the acreage of
// the target crop only. Unknown crops and crops with no acreage carry 0.
func RestrictedOverheadExtra(doc *models.SeasonDocument, cropID string) float64 {
	crop := doc.FindCrop(cropID)
	if crop == nil || crop.Acres <= 0 {
		return 0
	}
	var total float64
	for _, o := range doc.OverheadItems {
		if o.Restricted {
			total += o.Total
		}
	}
	return total / crop.Acres
}

// IrrigationCostPerAcre is irrigation inches times the document's cost per inch.
func IrrigationCostPerAcre(crop *models.Crop, doc *models.SeasonDocument) float64 {
	if crop == nil || doc == nil {
		return 0
	}
	return crop.IrrInches * doc.IrrCostPerInch
}

// DryingCostPerAcre is budget yield times the drying cost per bushel.
func DryingCostPerAcre(crop *models.Crop) float64 {
	if crop == nil {
		return 0
	}
	return crop.BudgetYield * crop.DryingPerBu
}

// CostLineItems assembles the canonical cost breakdown for a crop. The
// order of the returned items is fixed.
func CostLineItems(doc *models.SeasonDocument, cropID string) []LineItem {
	crop := doc.FindCrop(cropID)

	mach := OverheadCostPerAcre(doc, cropID, models.GroupMachinery)
	if doc.EligibleForRestricted(crop) {
		mach += RestrictedOverheadExtra(doc, cropID)
	}

	var rent float64
	if crop != nil {
		rent = doc.RentPerCrop.Of(cropID)
	}

	return []LineItem{
		{Key: KeySeed, Label: "Seed", Value: SeedCostPerAcre(crop)},
		{Key: KeyHerb, Label: "Herbicide", Value: HerbicideCostPerAcre(doc, cropID)},
		{Key: KeyInsect, Label: "Insecticide/Fungicide", Value: InsecticideCostPerAcre(doc, cropID)},
		{Key: KeyFert, Label: "Fertilizer & Lime", Value: FertilizerCostPerAcre(doc, cropID)},
		{Key: KeyConsult, Label: "Consulting/Sampling", Value: OverheadCostPerAcre(doc, cropID, models.GroupConsulting)},
		{Key: KeyCropIns, Label: "Crop/Gen Insurance", Value: OverheadCostPerAcre(doc, cropID, models.GroupInsurance)},
		{Key: KeyDrying, Label: "Drying", Value: DryingCostPerAcre(crop)},
		{Key: KeyMisc, Label: "Miscellaneous", Value: OverheadCostPerAcre(doc, cropID, models.GroupOther)},
		{Key: KeyTaxes, Label: "Taxes/Utilities", Value: OverheadCostPerAcre(doc, cropID, models.GroupTaxesUtil)},
		{Key: KeyMach, Label: "Machinery Expense", Value: mach},
		{Key: KeyLabor, Label: "Labor", Value: OverheadCostPerAcre(doc, cropID, models.GroupLabor)},
		{Key: KeyIrr, Label: "Irrigation", Value: IrrigationCostPerAcre(crop, doc)},
		{Key: KeyRent, Label: "Land Charge / Rent", Value: rent},
		{Key: KeyInterest, Label: "Interest on ½ Nonland", Value: OverheadCostPerAcre(doc, cropID, models.GroupInterest)},
	}
}

// CropCostPerAcre sums the cost breakdown.
func CropCostPerAcre(doc *models.SeasonDocument, cropID string) float64 {
	var total float64
	for _, l := range CostLineItems(doc, cropID) {
		total += l.Value
	}
	return total
}

// CropIncomePerAcre is budget yield times budget price plus every
// miscellaneous income item.
func CropIncomePerAcre(doc *models.SeasonDocument, crop *models.Crop) float64 {
	var total float64
	if crop != nil {
		total = crop.BudgetYield * crop.BudgetPrice
	}
	if doc != nil {
		for _, i := range doc.IncomeItems {
			total += i.PerAc
		}
	}
	return total
}

// Value returns the value of the line with the given key, 0 when absent.
func Value(items []LineItem, key string) float64 {
	for _, l := range items {
		if l.Key == key {
			return l.Value
		}
	}
	return 0
}
