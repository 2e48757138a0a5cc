package models

import (
	"fmt"
	"slices"
	"time"
)

// AddCrop appends a blank crop and gives it a zero rent entry.
func (d *SeasonDocument) AddCrop(name string, now time.Time) Crop {
	n := now.UnixMilli() % 100000
	id := fmt.Sprintf("c%d", n)
	for d.FindCrop(id) != nil {
		n++
		id = fmt.Sprintf("c%d", n)
	}
	if name == "" {
		name = "New Crop"
	}

	crop := Crop{ID: id, Name: name, Color: "#6B7280", SeedBag: 80000}
	d.Crops = append(d.Crops, crop)
	if d.RentPerCrop == nil {
		d.RentPerCrop = CropValues{}
	}
	d.RentPerCrop[id] = 0
	return crop
}

// RemoveCrop deletes the crop and every mapping entry that references it.
func (d *SeasonDocument) RemoveCrop(id string) bool {
	idx := slices.IndexFunc(d.Crops, func(c Crop) bool { return c.ID == id })
	if idx < 0 {
		return false
	}
	d.Crops = slices.Delete(d.Crops, idx, idx+1)
	d.Repair()
	return true
}

// NextContractID returns max-existing-id + 1 within the group.
func (d *SeasonDocument) NextContractID(group string) int {
	maxID := 0
	for _, c := range d.Contracts[group] {
		maxID = max(maxID, c.ID)
	}
	return maxID + 1
}

// AddContract appends the contract to its group with a fresh id.
func (d *SeasonDocument) AddContract(group string, c Contract) Contract {
	if d.Contracts == nil {
		d.Contracts = map[string][]Contract{}
	}
	c.ID = d.NextContractID(group)
	d.Contracts[group] = append(d.Contracts[group], c)
	return c
}

// RemoveContract splices the contract out of its group.
func (d *SeasonDocument) RemoveContract(group string, id int) bool {
	list := d.Contracts[group]
	idx := slices.IndexFunc(list, func(c Contract) bool { return c.ID == id })
	if idx < 0 {
		return false
	}
	d.Contracts[group] = slices.Delete(list, idx, idx+1)
	return true
}

// AddOverhead appends an overhead item with the next "o" id.
func (d *SeasonDocument) AddOverhead(item OverheadItem) (OverheadItem, error) {
	if !item.Group.Valid() {
		return OverheadItem{}, fmt.Errorf("%w: unknown overhead group %q", ErrInvalidDocument, item.Group)
	}
	maxID := 0
	for _, o := range d.OverheadItems {
		var n int
		if _, err := fmt.Sscanf(o.ID, "o%d", &n); err == nil {
			maxID = max(maxID, n)
		}
	}
	item.ID = fmt.Sprintf("o%d", maxID+1)
	d.OverheadItems = append(d.OverheadItems, item)
	return item, nil
}

// RemoveOverhead splices the overhead item out.
func (d *SeasonDocument) RemoveOverhead(id string) bool {
	idx := slices.IndexFunc(d.OverheadItems, func(o OverheadItem) bool { return o.ID == id })
	if idx < 0 {
		return false
	}
	d.OverheadItems = slices.Delete(d.OverheadItems, idx, idx+1)
	return true
}

// AddCashRent appends a lease line with max-existing-id + 1.
func (d *SeasonDocument) AddCashRent(r CashRent) CashRent {
	maxID := 0
	for _, existing := range d.CashRents {
		maxID = max(maxID, existing.ID)
	}
	r.ID = maxID + 1
	if r.Category == "" {
		r.Category = RentCash
	}
	d.CashRents = append(d.CashRents, r)
	return r
}

// AddCapitalItem appends a capital plan line with max-existing-id + 1.
func (d *SeasonDocument) AddCapitalItem(item CapitalItem) CapitalItem {
	maxID := 0
	for _, existing := range d.CapitalPlan {
		maxID = max(maxID, existing.ID)
	}
	item.ID = maxID + 1
	d.CapitalPlan = append(d.CapitalPlan, item)
	return item
}

// MoveWishToPlan moves a wish list entry onto the capital plan for year.
func (d *SeasonDocument) MoveWishToPlan(wishID, year int) (CapitalItem, bool) {
	idx := slices.IndexFunc(d.WishList, func(w WishItem) bool { return w.ID == wishID })
	if idx < 0 {
		return CapitalItem{}, false
	}
	wish := d.WishList[idx]
	item := d.AddCapitalItem(CapitalItem{Year: year, Item: wish.Item, Estimated: wish.EstCost})
	d.WishList = slices.Delete(d.WishList, idx, idx+1)
	return item, true
}

// AppendTickets adds tickets after recomputing their dry bushels.
func (d *SeasonDocument) AppendTickets(tickets ...GrainTicket) {
	for _, t := range tickets {
		t.RecalcDry()
		d.GrainTickets = append(d.GrainTickets, t)
	}
}

// FindTicket returns the index of the ticket with the given id, or -1.
func (d *SeasonDocument) FindTicket(id string) int {
	return slices.IndexFunc(d.GrainTickets, func(t GrainTicket) bool { return t.ID == id })
}

// RemoveTicket splices the ticket out.
func (d *SeasonDocument) RemoveTicket(id string) bool {
	idx := d.FindTicket(id)
	if idx < 0 {
		return false
	}
	d.GrainTickets = slices.Delete(d.GrainTickets, idx, idx+1)
	return true
}

// CopyForYear derives next year's document: budgets carry over, actuals
// are cleared and the per-season logs start empty.
func (d *SeasonDocument) CopyForYear(year int) *SeasonDocument {
	cp := d.Clone()
	cp.Year = year
	for i := range cp.Crops {
		cp.Crops[i].ActualYield = nil
		cp.Crops[i].ActualPrice = nil
	}
	cp.Contracts = make(map[string][]Contract, len(cp.MarketingGroups))
	for _, g := range cp.MarketingGroups {
		cp.Contracts[g.ID] = []Contract{}
	}
	cp.GrainTickets = []GrainTicket{}
	cp.CapitalPlan = []CapitalItem{}
	cp.WishList = []WishItem{}
	cp.InventorySnapshots = []InventorySnapshot{}
	return cp
}
