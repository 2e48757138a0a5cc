// Package export writes season data to spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
)

// TicketSheet is the worksheet name of a ticket export.
const TicketSheet = "Tickets"

// ContentTypeXLSX is the MIME type of the written workbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var ticketHeaders = []interface{}{
	"Date", "Crop", "Farm", "Bushels", "Wet Weight", "Moisture",
	"Test Weight", "FM %", "Dry Bushels", "Destination", "Notes",
}

// Tickets writes the tickets matching crop ("all" or "" for every ticket)
// as an xlsx workbook with a header row and a dry bushel total.
func Tickets(w io.Writer, tickets []models.GrainTicket, crop string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TicketSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := f.SetSheetRow(TicketSheet, "A1", &ticketHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if err := f.SetCellStyle(TicketSheet, "A1", "K1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	row := 2
	var dry float64
	for _, t := range tickets {
		if crop != "" && crop != "all" && t.Crop != crop {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []interface{}{
			t.Date, t.Crop, t.Farm, t.Bushels, t.WetWeight, t.Moisture,
			t.TestWeight, t.ForeignMaterialPct, t.EffectiveDry(), t.Destination, t.Notes,
		}
		if err := f.SetSheetRow(TicketSheet, cell, &values); err != nil {
			return fmt.Errorf("write ticket %s: %w", t.ID, err)
		}
		dry += t.EffectiveDry()
		row++
	}

	totalCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	total := []interface{}{"Total", "", "", "", "", "", "", "", dry}
	if err := f.SetSheetRow(TicketSheet, totalCell, &total); err != nil {
		return fmt.Errorf("write total: %w", err)
	}
	if err := f.SetCellStyle(TicketSheet, totalCell, fmt.Sprintf("K%d", row), bold); err != nil {
		return fmt.Errorf("style total: %w", err)
	}
	if err := f.SetColWidth(TicketSheet, "A", "K", 14); err != nil {
		return fmt.Errorf("size columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
