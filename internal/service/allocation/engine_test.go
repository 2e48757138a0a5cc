package allocation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
)

func sampleDoc() *models.SeasonDocument {
	return &models.SeasonDocument{
		Year: 2025,
		Crops: []models.Crop{
			{ID: "a", Name: "Corn", Acres: 300, BudgetYield: 200, BudgetPrice: 4.5, SeedBag: 80000, SeedRate: 32000, SeedPrice: 310, DryingPerBu: 0.05, IrrInches: 2, MarketGroup: "corn"},
			{ID: "b", Name: "Amylose", Acres: 200, BudgetYield: 150, BudgetPrice: 6, MarketGroup: "amylose"},
		},
		IncomeItems: []models.IncomeItem{{ID: "i1", PerAc: 20}, {ID: "i2", PerAc: 5}},
		FertProducts: []models.FertProduct{
			{ID: "f1", PricePerTon: 600, Rates: models.CropValues{"a": 100}},
			{ID: "f2", PerLb: true, PricePerLb: 0.5, Rates: models.CropValues{"b": 60}},
		},
		FertFlats:      []models.FlatPool{{ID: "ff1", Total: 1000}},
		HerbPasses:     []models.FieldPass{{ID: "h1", CostPerAc: 20, Flags: models.CropValues{"a": 1, "b": 0.5}}},
		HerbReconcile:  -500,
		InsectProducts: []models.FieldPass{{ID: "ip1", CostPerAc: 12, Flags: models.CropValues{"b": 1}}},
		IrrCostPerInch: 9,
		OverheadItems: []models.OverheadItem{
			{ID: "o1", Total: 5000, Group: models.GroupMachinery},
			{ID: "o2", Total: 1000, Group: models.GroupMachinery, Restricted: true},
			{ID: "o3", Total: 2500, Group: models.GroupLabor},
		},
		RestrictedGroup: "amylose",
		RentPerCrop:     models.CropValues{"a": 250, "b": 200},
	}
}

func TestPerCropFormulas(t *testing.T) {
	doc := sampleDoc()
	a, b := doc.FindCrop("a"), doc.FindCrop("b")

	assert.Equal(t, 500.0, TotalPlantedAcres(doc))
	assert.InDelta(t, 124, SeedCostPerAcre(a), 1e-9)
	assert.Zero(t, SeedCostPerAcre(b))

	// f1 uses an implicit multiplier of 1, f2 is priced per pound.
	assert.InDelta(t, 32, FertilizerCostPerAcre(doc, "a"), 1e-9)
	assert.InDelta(t, 32, FertilizerCostPerAcre(doc, "b"), 1e-9)

	assert.InDelta(t, 19, HerbicideCostPerAcre(doc, "a"), 1e-9)
	assert.InDelta(t, 9, HerbicideCostPerAcre(doc, "b"), 1e-9)
	assert.InDelta(t, 12, InsecticideCostPerAcre(doc, "b"), 1e-9)

	assert.InDelta(t, 10, OverheadCostPerAcre(doc, "a", models.GroupMachinery), 1e-9)
	assert.InDelta(t, 5, RestrictedOverheadExtra(doc, "b"), 1e-9)
	assert.InDelta(t, 18, IrrigationCostPerAcre(a, doc), 1e-9)
	assert.InDelta(t, 10, DryingCostPerAcre(a), 1e-9)

	assert.InDelta(t, 925, CropIncomePerAcre(doc, a), 1e-9)
	assert.InDelta(t, 925, CropIncomePerAcre(doc, b), 1e-9)
}

func TestCostLineItems(t *testing.T) {
	doc := sampleDoc()

	t.Run("fixed key order", func(t *testing.T) {
		items := CostLineItems(doc, "a")
		keys := make([]string, 0, len(items))
		for _, l := range items {
			keys = append(keys, l.Key)
		}
		assert.Equal(t, []string{
			KeySeed, KeyHerb, KeyInsect, KeyFert, KeyConsult, KeyCropIns, KeyDrying,
			KeyMisc, KeyTaxes, KeyMach, KeyLabor, KeyIrr, KeyRent, KeyInterest,
		}, keys)
	})

	t.Run("restricted overhead only lands on the eligible crop", func(t *testing.T) {
		assert.InDelta(t, 10, Value(CostLineItems(doc, "a"), KeyMach), 1e-9)
		assert.InDelta(t, 15, Value(CostLineItems(doc, "b"), KeyMach), 1e-9)
	})

	t.Run("total equals the sum of its lines", func(t *testing.T) {
		for _, c := range doc.Crops {
			var sum float64
			for _, l := range CostLineItems(doc, c.ID) {
				sum += l.Value
			}
			assert.InDelta(t, sum, CropCostPerAcre(doc, c.ID), 1e-9)
		}
		// 124 + 19 + 0 + 32 + 0 + 0 + 10 + 0 + 0 + 10 + 5 + 18 + 250 + 0
		assert.InDelta(t, 468, CropCostPerAcre(doc, "a"), 1e-9)
	})

	t.Run("unknown crop never dereferences nil", func(t *testing.T) {
		items := CostLineItems(doc, "ghost")
		require.Len(t, items, 14)
		assert.Zero(t, Value(items, KeySeed))
		assert.Zero(t, Value(items, KeyDrying))
		assert.Zero(t, Value(items, KeyIrr))
		assert.Zero(t, Value(items, KeyRent))
		assert.InDelta(t, 10, Value(items, KeyMach), 1e-9)
	})

	t.Run("pure across repeated calls", func(t *testing.T) {
		before := doc.Clone()
		first := CostLineItems(doc, "b")
		second := CostLineItems(doc, "b")
		assert.Equal(t, first, second)
		assert.Equal(t, before, doc)
	})
}

func TestFlatPoolIgnoresCropAcreage(t *testing.T) {
	doc := &models.SeasonDocument{
		Crops: []models.Crop{
			{ID: "small", Acres: 10},
			{ID: "large", Acres: 490},
		},
		FertFlats: []models.FlatPool{{ID: "lime", Total: 1000}},
	}
	assert.Equal(t, 2.0, FertilizerCostPerAcre(doc, "small"))
	assert.Equal(t, 2.0, FertilizerCostPerAcre(doc, "large"))
}

func TestZeroAcreageShortCircuits(t *testing.T) {
	doc := sampleDoc()
	for i := range doc.Crops {
		doc.Crops[i].Acres = 0
	}

	assert.Zero(t, TotalPlantedAcres(doc))
	for _, g := range models.OverheadGroups {
		assert.Zero(t, OverheadCostPerAcre(doc, "a", g))
	}
	assert.Zero(t, RestrictedOverheadExtra(doc, "b"))
	assert.InDelta(t, 30, FertilizerCostPerAcre(doc, "a"), 1e-9)
	assert.InDelta(t, 20, HerbicideCostPerAcre(doc, "a"), 1e-9)

	for _, c := range doc.Crops {
		cost := CropCostPerAcre(doc, c.ID)
		assert.False(t, math.IsNaN(cost))
	}
}

func TestNilDocument(t *testing.T) {
	assert.Zero(t, TotalPlantedAcres(nil))
	assert.Zero(t, FertilizerCostPerAcre(nil, "a"))
	assert.Zero(t, HerbicideCostPerAcre(nil, "a"))
	assert.Zero(t, InsecticideCostPerAcre(nil, "a"))
	assert.Zero(t, OverheadCostPerAcre(nil, "a", models.GroupLabor))
	assert.Zero(t, RestrictedOverheadExtra(nil, "a"))
	assert.Zero(t, CropCostPerAcre(nil, "a"))
	assert.Zero(t, CropIncomePerAcre(nil, nil))
}
