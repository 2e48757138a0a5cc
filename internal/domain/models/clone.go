package models

// Clone returns a deep copy of the document. Mutating the copy never
// affects the receiver.
func (d *SeasonDocument) Clone() *SeasonDocument {
	if d == nil {
		return nil
	}

	out := *d

	out.Crops = cloneCrops(d.Crops)
	out.IncomeItems = cloneSlice(d.IncomeItems)
	out.FertFlats = cloneSlice(d.FertFlats)
	out.OverheadItems = cloneSlice(d.OverheadItems)
	out.CashRents = cloneSlice(d.CashRents)
	out.GrainTickets = cloneSlice(d.GrainTickets)
	out.CapitalPlan = cloneSlice(d.CapitalPlan)
	out.WishList = cloneSlice(d.WishList)
	out.InventoryProducts = cloneSlice(d.InventoryProducts)
	out.RentPerCrop = d.RentPerCrop.clone()

	if d.FertProducts != nil {
		out.FertProducts = make([]FertProduct, len(d.FertProducts))
		for i, p := range d.FertProducts {
			p.Rates = p.Rates.clone()
			out.FertProducts[i] = p
		}
	}
	out.HerbPasses = clonePasses(d.HerbPasses)
	out.InsectProducts = clonePasses(d.InsectProducts)

	if d.MarketingGroups != nil {
		out.MarketingGroups = make([]MarketingGroup, len(d.MarketingGroups))
		for i, g := range d.MarketingGroups {
			g.CropIDs = cloneSlice(g.CropIDs)
			out.MarketingGroups[i] = g
		}
	}

	if d.Contracts != nil {
		out.Contracts = make(map[string][]Contract, len(d.Contracts))
		for group, list := range d.Contracts {
			out.Contracts[group] = cloneSlice(list)
		}
	}

	if d.InventorySnapshots != nil {
		out.InventorySnapshots = make([]InventorySnapshot, len(d.InventorySnapshots))
		for i, s := range d.InventorySnapshots {
			if s.Items != nil {
				items := make(map[string]InventoryLine, len(s.Items))
				for k, v := range s.Items {
					items[k] = v
				}
				s.Items = items
			}
			out.InventorySnapshots[i] = s
		}
	}

	return &out
}

func cloneCrops(in []Crop) []Crop {
	if in == nil {
		return nil
	}
	out := make([]Crop, len(in))
	for i, c := range in {
		c.ActualYield = clonePtr(c.ActualYield)
		c.ActualPrice = clonePtr(c.ActualPrice)
		out[i] = c
	}
	return out
}

func clonePasses(in []FieldPass) []FieldPass {
	if in == nil {
		return nil
	}
	out := make([]FieldPass, len(in))
	for i, p := range in {
		p.Flags = p.Flags.clone()
		out[i] = p
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
