package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	// ShrinkThreshold is the reference moisture above which bushels shrink.
	ShrinkThreshold = 15.5
	// ShrinkFactor is the fraction of bushels lost per moisture point above the threshold.
	ShrinkFactor = 0.012
)

// GrainTicket is one scale ticket. DryBushels is derived and must only be
// changed through RecalcDry.
type GrainTicket struct {
	ID                 string  `bson:"id" json:"id"`
	Date               string  `bson:"date" json:"date"`
	Crop               string  `bson:"crop" json:"crop"`
	Bushels            float64 `bson:"bushels" json:"bushels"`
	WetWeight          float64 `bson:"wetWeight" json:"wetWeight"`
	Moisture           float64 `bson:"moisture" json:"moisture"`
	TestWeight         float64 `bson:"testWeight" json:"testWeight"`
	ForeignMaterialPct float64 `bson:"fm" json:"fm"`
	DryBushels         float64 `bson:"dryBushels" json:"dryBushels"`
	Farm               string  `bson:"farm" json:"farm"`
	Destination        string  `bson:"destination" json:"destination"`
	Notes              string  `bson:"notes" json:"notes"`
}

// NewTicketID mints a time-ordered ticket id.
func NewTicketID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// DryBushels applies the moisture shrink to wet bushels.
func DryBushels(bushels, moisture float64) float64 {
	if moisture > ShrinkThreshold && bushels > 0 {
		return bushels * (1 - (moisture-ShrinkThreshold)*ShrinkFactor)
	}
	return bushels
}

// RecalcDry recomputes the derived dry bushels from bushels and moisture.
func (t *GrainTicket) RecalcDry() {
	t.DryBushels = DryBushels(t.Bushels, t.Moisture)
}

// EffectiveDry returns dry bushels, falling back to wet bushels for tickets
// stored before the derived field existed.
func (t GrainTicket) EffectiveDry() float64 {
	if t.DryBushels != 0 {
		return t.DryBushels
	}
	return t.Bushels
}

// TicketField names an editable ticket attribute.
type TicketField string

const (
	FieldDate        TicketField = "date"
	FieldCrop        TicketField = "crop"
	FieldFarm        TicketField = "farm"
	FieldBushels     TicketField = "bushels"
	FieldWetWeight   TicketField = "wetWeight"
	FieldMoisture    TicketField = "moisture"
	FieldTestWeight  TicketField = "testWeight"
	FieldFM          TicketField = "fm"
	FieldDestination TicketField = "destination"
	FieldNotes       TicketField = "notes"
	// FieldDryBushels is sortable but never editable.
	FieldDryBushels TicketField = "dryBushels"
)

// TicketFields lists the editable fields in grid column order.
var TicketFields = []TicketField{
	FieldDate,
	FieldCrop,
	FieldFarm,
	FieldBushels,
	FieldWetWeight,
	FieldMoisture,
	FieldTestWeight,
	FieldFM,
	FieldDestination,
	FieldNotes,
}

// ParseTicketField resolves a field name.
func ParseTicketField(name string) (TicketField, bool) {
	f := TicketField(name)
	if f == FieldDryBushels {
		return f, true
	}
	for _, known := range TicketFields {
		if known == f {
			return f, true
		}
	}
	return "", false
}

// Numeric reports whether the field holds a number.
func (f TicketField) Numeric() bool {
	switch f {
	case FieldBushels, FieldWetWeight, FieldMoisture, FieldTestWeight, FieldFM, FieldDryBushels:
		return true
	}
	return false
}

// ParseNumber coerces operator input to a number; anything unparsable or
// non-finite ("NaN", "Inf") is 0.
func ParseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Set writes a raw value into the field and recomputes dry bushels.
// Unknown and derived fields are ignored.
func (t *GrainTicket) Set(field TicketField, raw string) bool {
	switch field {
	case FieldDate:
		t.Date = raw
	case FieldCrop:
		t.Crop = raw
	case FieldFarm:
		t.Farm = raw
	case FieldDestination:
		t.Destination = raw
	case FieldNotes:
		t.Notes = raw
	case FieldBushels:
		t.Bushels = ParseNumber(raw)
	case FieldWetWeight:
		t.WetWeight = ParseNumber(raw)
	case FieldMoisture:
		t.Moisture = ParseNumber(raw)
	case FieldTestWeight:
		t.TestWeight = ParseNumber(raw)
	case FieldFM:
		t.ForeignMaterialPct = ParseNumber(raw)
	default:
		return false
	}
	t.RecalcDry()
	return true
}

// Number returns the numeric value of a field, 0 for text fields.
func (t GrainTicket) Number(field TicketField) float64 {
	switch field {
	case FieldBushels:
		return t.Bushels
	case FieldWetWeight:
		return t.WetWeight
	case FieldMoisture:
		return t.Moisture
	case FieldTestWeight:
		return t.TestWeight
	case FieldFM:
		return t.ForeignMaterialPct
	case FieldDryBushels:
		return t.EffectiveDry()
	}
	return 0
}

// Text returns the display value of a field.
func (t GrainTicket) Text(field TicketField) string {
	switch field {
	case FieldDate:
		return t.Date
	case FieldCrop:
		return t.Crop
	case FieldFarm:
		return t.Farm
	case FieldDestination:
		return t.Destination
	case FieldNotes:
		return t.Notes
	}
	if field.Numeric() {
		return strconv.FormatFloat(t.Number(field), 'f', -1, 64)
	}
	return ""
}
