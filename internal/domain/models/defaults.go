package models

// DefaultDocument returns the built-in starting document for a year with no
// stored data.
func DefaultDocument(year int) *SeasonDocument {
	return &SeasonDocument{
		Year: year,
		Crops: []Crop{
			{ID: "c1", Name: "Corn", Acres: 491, BudgetYield: 212, BudgetPrice: 4.404, Color: "#D97706", SeedBag: 80000, SeedRate: 32000, SeedPrice: 310, MarketGroup: "corn", DryingPerBu: 0.06},
			{ID: "c2", Name: "IRR Corn", Acres: 808, BudgetYield: 229, BudgetPrice: 4.404, Color: "#B45309", SeedBag: 80000, SeedRate: 33500, SeedPrice: 310, MarketGroup: "corn", DryingPerBu: 0.06, IrrInches: 3.15},
			{ID: "c3", Name: "Non-GMO Beans", Acres: 115, BudgetYield: 70, BudgetPrice: 14.00, Color: "#059669", SeedBag: 140000, SeedRate: 165000, SeedPrice: 80, MarketGroup: "beans", DryingPerBu: 0.06},
			{ID: "c4", Name: "Beans", Acres: 862, BudgetYield: 70, BudgetPrice: 10.40, Color: "#10B981", SeedBag: 140000, SeedRate: 135000, SeedPrice: 80, MarketGroup: "beans"},
			{ID: "c5", Name: "IRR Beans", Acres: 1167, BudgetYield: 74, BudgetPrice: 10.40, Color: "#047857", SeedBag: 140000, SeedRate: 130000, SeedPrice: 80, MarketGroup: "beans", IrrInches: 3.15},
			{ID: "c6", Name: "Amylose", Acres: 761, BudgetYield: 158, BudgetPrice: 6.643, Color: "#7C3AED", SeedBag: 80000, MarketGroup: "amylose", DryingPerBu: 0.06},
		},
		IncomeItems: []IncomeItem{
			{ID: "i1", Name: "Government Payments", PerAc: 33.10},
			{ID: "i2", Name: "Indemnity Payments", PerAc: 0},
			{ID: "i3", Name: "Miscellaneous Income", PerAc: 28.36},
		},
		FertProducts: []FertProduct{
			{ID: "f1", Name: "11-52-0", PricePerTon: 750, Unit: "/Ton", Mult: 1, Rates: CropValues{"c1": 35, "c2": 35, "c3": 0, "c4": 35, "c5": 0, "c6": 35}},
			{ID: "f2", Name: "NH3", PricePerTon: 610, Unit: "/Ton", Mult: 1.18, Rates: CropValues{"c1": 170, "c2": 170, "c3": 0, "c4": 0, "c5": 0, "c6": 130}},
			{ID: "f3", Name: "0-0-60", PricePerTon: 380, Unit: "/Ton", Mult: 1, Rates: CropValues{"c1": 50, "c2": 50, "c3": 120, "c4": 120, "c5": 150, "c6": 50}},
			{ID: "f4", Name: "Gypsum", PricePerTon: 240, Unit: "/Ton", Mult: 1, Rates: CropValues{"c1": 75, "c2": 75, "c3": 75, "c4": 75, "c5": 75, "c6": 75}},
			{ID: "f5", Name: "Micro Nutrients", PricePerTon: 2800, Unit: "/Ton", Mult: 1, Rates: CropValues{"c1": 1, "c2": 1, "c3": 0, "c4": 0, "c5": 0, "c6": 1}},
			{ID: "f6", Name: "UAN", PricePerLb: 0.50, Unit: "/Lb N", PerLb: true, Mult: 1, Rates: CropValues{"c1": 0, "c2": 60, "c3": 0, "c4": 0, "c5": 0, "c6": 0}},
			{ID: "f7", Name: "Urea", PricePerTon: 415, Unit: "/Ton", Mult: 1, Rates: CropValues{"c1": 0, "c2": 20, "c3": 0, "c4": 0, "c5": 0, "c6": 0}},
			{ID: "f8", Name: "Manure", PricePerTon: 105, Unit: "/Ton", Mult: 1, Rates: CropValues{}},
		},
		FertFlats: []FlatPool{
			{ID: "ff1", Name: "Lime", Total: 250},
			{ID: "ff2", Name: "Foliar Fert", Total: 10003},
			{ID: "ff3", Name: "Fert Reconcile", Total: 39000},
		},
		HerbPasses: []FieldPass{
			{ID: "h1", Name: "Fall Pass Corn", CostPerAc: 4, Flags: CropValues{"c1": 1, "c2": 1, "c6": 1}},
			{ID: "h2", Name: "Pre Pass Corn", CostPerAc: 26, Flags: CropValues{"c6": 1}},
			{ID: "h3", Name: "Post Pass Corn", CostPerAc: 24, Flags: CropValues{"c1": 1, "c2": 1, "c6": 0.5}},
			{ID: "h4", Name: "Fall Pass Beans", CostPerAc: 4, Flags: CropValues{}},
			{ID: "h5", Name: "Pre Pass Beans", CostPerAc: 35, Flags: CropValues{"c3": 1, "c4": 1, "c5": 1}},
			{ID: "h6", Name: "Post Pass Beans", CostPerAc: 21, Flags: CropValues{"c3": 1, "c4": 1, "c5": 1}},
			{ID: "h7", Name: "2nd Post Beans", CostPerAc: 10, Flags: CropValues{"c3": 1, "c4": 1, "c5": 1}},
			{ID: "h8", Name: "Post Grass", CostPerAc: 27, Flags: CropValues{}},
		},
		HerbReconcile: -45000,
		InsectProducts: []FieldPass{
			{ID: "ip1", Name: "HeadLine", CostPerAc: 28, Flags: CropValues{"c1": 1, "c2": 1, "c6": 1}},
			{ID: "ip2", Name: "Priaxore + Hero", CostPerAc: 18, Flags: CropValues{"c3": 1, "c4": 1, "c5": 1}},
			{ID: "ip3", Name: "Alfa Guard", CostPerAc: 12, Flags: CropValues{"c6": 1}},
		},
		IrrCostPerInch: 9,
		OverheadItems: []OverheadItem{
			{ID: "o1", Name: "Repairs", Total: 298000, Group: GroupMachinery},
			{ID: "o2", Name: "Gas/Fuel/Oil", Total: 134500, Group: GroupMachinery},
			{ID: "o3", Name: "Equipment Payments", Total: 252992, Group: GroupMachinery},
			{ID: "o4", Name: "Capital Purchase", Total: 210000, Group: GroupMachinery},
			{ID: "o5", Name: "Machine Hire", Total: 35000, Group: GroupMachinery},
			{ID: "o6", Name: "Fertilizer Application", Total: 25000, Group: GroupMachinery},
			{ID: "o7", Name: "Hauling (Amylose)", Total: 10000, Group: GroupMachinery, Restricted: true},
			{ID: "o8", Name: "Crop Insurance", Total: 95000, Group: GroupInsurance},
			{ID: "o9", Name: "General Farm Insurance", Total: 49000, Group: GroupInsurance},
			{ID: "o10", Name: "Crop Consulting", Total: 25000, Group: GroupConsulting},
			{ID: "o11", Name: "Grid Sampling", Total: 7500, Group: GroupConsulting},
			{ID: "o12", Name: "Miscellaneous", Total: 63075, Group: GroupOther},
			{ID: "o13", Name: "Cover Crops", Total: 15404, Group: GroupOther},
			{ID: "o14", Name: "Vehicle Expense", Total: 14000, Group: GroupOther},
			{ID: "o15", Name: "Classes/Meetings", Total: 5001, Group: GroupOther},
			{ID: "o16", Name: "Labor", Total: 350000, Group: GroupLabor},
			{ID: "o17", Name: "Farm Utilities", Total: 16000, Group: GroupTaxesUtil},
			{ID: "o18", Name: "Property Taxes", Total: 9500, Group: GroupTaxesUtil},
			{ID: "o19", Name: "Interest on Op Note", Total: 155860, Group: GroupInterest},
		},
		RestrictedGroup: DefaultRestrictedGroup,
		RentPerCrop:     CropValues{"c1": 252.89, "c2": 267.47, "c3": 252.89, "c4": 252.89, "c5": 267.47, "c6": 252.89},
		MarketingGroups: []MarketingGroup{
			{ID: "corn", Name: "Corn", CropIDs: []string{"c1", "c2"}, Color: "#D97706"},
			{ID: "beans", Name: "Soybeans", CropIDs: []string{"c3", "c4", "c5"}, Color: "#10B981"},
			{ID: "amylose", Name: "Amylose", CropIDs: []string{"c6"}, Color: "#7C3AED"},
		},
		Contracts: map[string][]Contract{
			"corn":    {},
			"beans":   {},
			"amylose": {},
		},
		CashRents:    []CashRent{},
		GrainTickets: []GrainTicket{},
		CapitalPlan:  []CapitalItem{},
		WishList:     []WishItem{},
		InventoryProducts: []InventoryProduct{
			{ID: "p1", Name: "Soybeans", Unit: "bu"},
			{ID: "p8", Name: "Non-GMO Soybeans", Unit: "bu"},
			{ID: "p2", Name: "Amylose", Unit: "bu"},
			{ID: "p3", Name: "Reg Corn", Unit: "bu"},
			{ID: "p4", Name: "Dyed Diesel", Unit: "gal"},
			{ID: "p5", Name: "Clear Diesel", Unit: "gal"},
			{ID: "p6", Name: "Propane", Unit: "gal"},
			{ID: "p7", Name: "NH3", Unit: "ton"},
		},
		InventorySnapshots: []InventorySnapshot{},
	}
}
