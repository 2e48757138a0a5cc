package ingest

import (
	"strings"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
)

// FieldDef describes one import target and the header aliases that
// identify it, highest priority first.
type FieldDef struct {
	Field   models.TicketField
	Label   string
	Aliases []string
}

// FieldDefs lists every import target in preview order.
var FieldDefs = []FieldDef{
	{Field: models.FieldDate, Label: "Date", Aliases: []string{"date"}},
	{Field: models.FieldCrop, Label: "Crop", Aliases: []string{"commodity", "crop"}},
	{Field: models.FieldBushels, Label: "Bushels", Aliases: []string{"net amount", "gross amount", "bushels", "bu"}},
	{Field: models.FieldWetWeight, Label: "Wet Weight", Aliases: []string{"gross weight", "wet weight"}},
	{Field: models.FieldMoisture, Label: "Moisture %", Aliases: []string{"moisture corn", "moisture"}},
	{Field: models.FieldTestWeight, Label: "Test Weight", Aliases: []string{"test weight"}},
	{Field: models.FieldFM, Label: "FM %", Aliases: []string{"bcfm", "foreign material", "fm"}},
	{Field: models.FieldFarm, Label: "Farm", Aliases: []string{"applied field names", "farm", "field"}},
	{Field: models.FieldDestination, Label: "Destination", Aliases: []string{"location", "destination"}},
	{Field: models.FieldNotes, Label: "Notes", Aliases: []string{"reference", "notes", "truck name"}},
}

// LookupField returns the definition for an import target.
func LookupField(field models.TicketField) (FieldDef, bool) {
	for _, fd := range FieldDefs {
		if fd.Field == field {
			return fd, true
		}
	}
	return FieldDef{}, false
}

// Mapping assigns a source column index to each mapped import target.
// Absent fields are unmapped.
type Mapping map[models.TicketField]int

// Column returns the source column of a field.
func (m Mapping) Column(field models.TicketField) (int, bool) {
	col, ok := m[field]
	return col, ok
}

// Clone copies the mapping.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// AutoMap suggests a mapping from the header row. Exact case-insensitive
// alias matches are tried first across all aliases, then substring
// matches, each in alias priority order.
func AutoMap(headers []string) Mapping {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(h)
	}

	mapping := Mapping{}
	for _, fd := range FieldDefs {
		if col, ok := matchHeader(lower, fd.Aliases, func(h, alias string) bool { return h == alias }); ok {
			mapping[fd.Field] = col
			continue
		}
		if col, ok := matchHeader(lower, fd.Aliases, strings.Contains); ok {
			mapping[fd.Field] = col
		}
	}
	return mapping
}

func matchHeader(headers, aliases []string, match func(header, alias string) bool) (int, bool) {
	for _, alias := range aliases {
		for i, h := range headers {
			if match(h, alias) {
				return i, true
			}
		}
	}
	return 0, false
}
