package sheets

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/cropbudget/internal/config"
	"github.com/mamadbah2/cropbudget/internal/domain/models"
)

// Mirror copies grain tickets into an external spreadsheet.
type Mirror interface {
	AppendTickets(ctx context.Context, owner string, year int, tickets []models.GrainTicket) error
}

// TicketMirror implements Mirror using the official Google Sheets API.
type TicketMirror struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

var _ Mirror = (*TicketMirror)(nil)

// NewTicketMirror builds a Google Sheets backed ticket mirror. Extra client
// options are appended after the credentials from cfg.
func NewTicketMirror(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger, opts ...option.ClientOption) (*TicketMirror, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TicketRange == "" {
		return nil, fmt.Errorf("ticket sheet range must not be empty")
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	if cfg.CredentialsPath != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsPath))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &TicketMirror{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.TicketRange,
		logger:        logger,
	}, nil
}

// TicketRow lays a ticket out as one spreadsheet row.
func TicketRow(owner string, year int, t models.GrainTicket) []interface{} {
	return []interface{}{
		owner,
		strconv.Itoa(year),
		t.ID,
		t.Date,
		t.Crop,
		t.Farm,
		t.Bushels,
		t.Moisture,
		t.EffectiveDry(),
		t.TestWeight,
		t.Destination,
		t.Notes,
	}
}

// AppendTickets appends every ticket in a single call.
func (m *TicketMirror) AppendTickets(ctx context.Context, owner string, year int, tickets []models.GrainTicket) error {
	if len(tickets) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, TicketRow(owner, year, t))
	}
	payload := &sheetsapi.ValueRange{Values: rows}

	call := m.service.Spreadsheets.Values.Append(m.spreadsheetID, m.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append tickets into range %s: %w", m.sheetRange, err)
	}

	m.logger.Debug("tickets mirrored to sheet", zap.String("range", m.sheetRange), zap.Int("rows", len(rows)))
	return nil
}
