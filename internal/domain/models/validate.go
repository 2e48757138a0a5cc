package models

import (
	"errors"
	"fmt"
)

// ErrInvalidDocument wraps every document validation failure.
var ErrInvalidDocument = errors.New("invalid season document")

// Validate checks structural invariants that Repair cannot fix on its own.
func (d *SeasonDocument) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	var problems []error

	seen := make(map[string]struct{}, len(d.Crops))
	for _, c := range d.Crops {
		if c.ID == "" {
			problems = append(problems, fmt.Errorf("%w: crop %q has no id", ErrInvalidDocument, c.Name))
			continue
		}
		if _, dup := seen[c.ID]; dup {
			problems = append(problems, fmt.Errorf("%w: duplicate crop id %s", ErrInvalidDocument, c.ID))
		}
		seen[c.ID] = struct{}{}
	}

	for _, o := range d.OverheadItems {
		if !o.Group.Valid() {
			problems = append(problems, fmt.Errorf("%w: overhead %q has unknown group %q", ErrInvalidDocument, o.Name, o.Group))
		}
	}

	for _, g := range d.MarketingGroups {
		for _, id := range g.CropIDs {
			if _, ok := seen[id]; !ok {
				problems = append(problems, fmt.Errorf("%w: marketing group %s references unknown crop %s", ErrInvalidDocument, g.ID, id))
			}
		}
	}

	return errors.Join(problems...)
}

// Repair drops every reference to a crop id that is not among the crops and
// returns how many references were removed.
func (d *SeasonDocument) Repair() int {
	if d == nil {
		return 0
	}

	known := make(map[string]struct{}, len(d.Crops))
	for _, c := range d.Crops {
		known[c.ID] = struct{}{}
	}

	removed := pruneValues(d.RentPerCrop, known)
	for i := range d.FertProducts {
		removed += pruneValues(d.FertProducts[i].Rates, known)
	}
	for i := range d.HerbPasses {
		removed += pruneValues(d.HerbPasses[i].Flags, known)
	}
	for i := range d.InsectProducts {
		removed += pruneValues(d.InsectProducts[i].Flags, known)
	}
	for i := range d.MarketingGroups {
		ids := d.MarketingGroups[i].CropIDs[:0]
		for _, id := range d.MarketingGroups[i].CropIDs {
			if _, ok := known[id]; ok {
				ids = append(ids, id)
			} else {
				removed++
			}
		}
		d.MarketingGroups[i].CropIDs = ids
	}

	return removed
}

func pruneValues(values CropValues, known map[string]struct{}) int {
	removed := 0
	for id := range values {
		if _, ok := known[id]; !ok {
			delete(values, id)
			removed++
		}
	}
	return removed
}
