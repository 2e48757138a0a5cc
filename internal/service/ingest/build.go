package ingest

import (
	"github.com/mamadbah2/cropbudget/internal/domain/models"
)

// IDFunc mints ticket ids.
type IDFunc func() string

const dateWidth = 10

// BuildTickets converts every data row into a ticket using the mapping.
// Unmapped fields stay blank.
func BuildTickets(rows [][]string, mapping Mapping, newID IDFunc) []models.GrainTicket {
	if newID == nil {
		newID = models.NewTicketID
	}

	tickets := make([]models.GrainTicket, 0, len(rows))
	for _, row := range rows {
		get := func(field models.TicketField) string {
			return cell(row, mapping, field)
		}

		t := models.GrainTicket{
			ID:                 newID(),
			Date:               truncateDate(get(models.FieldDate)),
			Crop:               models.NormalizeCropTag(get(models.FieldCrop)),
			Bushels:            models.ParseNumber(get(models.FieldBushels)),
			WetWeight:          models.ParseNumber(get(models.FieldWetWeight)),
			Moisture:           models.ParseNumber(get(models.FieldMoisture)),
			TestWeight:         models.ParseNumber(get(models.FieldTestWeight)),
			ForeignMaterialPct: models.ParseNumber(get(models.FieldFM)),
			Farm:               get(models.FieldFarm),
			Destination:        get(models.FieldDestination),
			Notes:              get(models.FieldNotes),
		}
		t.RecalcDry()
		tickets = append(tickets, t)
	}
	return tickets
}

// cell reads the mapped column, or "" when unmapped or past the row end.
func cell(row []string, mapping Mapping, field models.TicketField) string {
	col, ok := mapping.Column(field)
	if !ok || col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func truncateDate(raw string) string {
	if len(raw) > dateWidth {
		return raw[:dateWidth]
	}
	return raw
}
