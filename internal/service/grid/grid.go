// Package grid drives keyboard entry over the grain ticket table: a focus
// cell over a filtered and optionally sorted view, Tab/Enter navigation
// that appends rows at the edge, and cell edits written through the season
// update gate.
package grid

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
)

// FilterAll shows every ticket.
const FilterAll = "all"

// Document is the update gate the grid reads from and writes through.
type Document interface {
	Current() *models.SeasonDocument
	Update(transform func(doc *models.SeasonDocument) error) (*models.SeasonDocument, error)
}

// Columns are the grid columns in navigation order.
var Columns = models.TicketFields

// Focus is the focused cell, as a row of the current view and a column index.
type Focus struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Key is a navigation key.
type Key string

const (
	KeyTab   Key = "Tab"
	KeyEnter Key = "Enter"
)

// State is a read-only snapshot of the grid for rendering.
type State struct {
	Focus           *Focus               `json:"focus"`
	Filter          string               `json:"filter"`
	SortColumn      models.TicketField   `json:"sortColumn,omitempty"`
	SortAscending   bool                 `json:"sortAscending"`
	Columns         []models.TicketField `json:"columns"`
	Rows            []models.GrainTicket `json:"rows"`
	TotalDryBushels float64              `json:"totalDryBushels"`
}

// Grid is the navigation state machine for one operator view.
type Grid struct {
	mu      sync.Mutex
	doc     Document
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
	focus   *Focus
	filter  string
	sortCol models.TicketField
	sortAsc bool
}

// New constructs a grid over the document with no focus, no sort and no filter.
func New(doc Document, logger *zap.Logger) *Grid {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Grid{
		doc:     doc,
		logger:  logger,
		now:     time.Now,
		newID:   models.NewTicketID,
		filter:  FilterAll,
		sortAsc: true,
	}
}

// State returns the current view and focus.
func (g *Grid) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows := g.view()
	g.normalize(rows)

	var total float64
	for _, t := range rows {
		total += t.EffectiveDry()
	}

	state := State{
		Filter:          g.filter,
		SortColumn:      g.sortCol,
		SortAscending:   g.sortAsc,
		Columns:         Columns,
		Rows:            rows,
		TotalDryBushels: total,
	}
	if g.focus != nil {
		f := *g.focus
		state.Focus = &f
	}
	return state
}

// FocusAt moves focus to a cell. Out-of-range cells clear focus.
func (g *Grid) FocusAt(row, col int) *Focus {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.focus = &Focus{Row: row, Col: col}
	g.normalize(g.view())
	return g.focusCopy()
}

// Blur clears focus.
func (g *Grid) Blur() {
	g.mu.Lock()
	g.focus = nil
	g.mu.Unlock()
}

// Press interprets a navigation key. Keys other than Tab and Enter are ignored.
func (g *Grid) Press(key Key, shift bool) *Focus {
	switch {
	case key == KeyTab && shift:
		return g.ShiftTab()
	case key == KeyTab:
		return g.Tab()
	case key == KeyEnter:
		return g.Enter()
	}
	return g.State().Focus
}

// Tab advances one column, wrapping to the next row. From the last cell of
// the view it appends a ticket and focuses its first column.
func (g *Grid) Tab() *Focus {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows := g.view()
	g.normalize(rows)
	if g.focus == nil {
		return nil
	}

	f := g.focus
	switch {
	case f.Col < len(Columns)-1:
		f.Col++
	case f.Row < len(rows)-1:
		f.Row++
		f.Col = 0
	default:
		g.appendAndFocus(0)
	}
	return g.focusCopy()
}

// ShiftTab retreats one column, wrapping to the last column of the previous
// row. It does nothing at the first cell.
func (g *Grid) ShiftTab() *Focus {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.normalize(g.view())
	if g.focus == nil {
		return nil
	}

	f := g.focus
	switch {
	case f.Col > 0:
		f.Col--
	case f.Row > 0:
		f.Row--
		f.Col = len(Columns) - 1
	}
	return g.focusCopy()
}

// Enter moves down one row in the same column, appending a ticket first
// when focus is on the last row.
func (g *Grid) Enter() *Focus {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows := g.view()
	g.normalize(rows)
	if g.focus == nil {
		return nil
	}

	if g.focus.Row < len(rows)-1 {
		g.focus.Row++
	} else {
		g.appendAndFocus(g.focus.Col)
	}
	return g.focusCopy()
}

// AddRow appends a ticket and focuses its first column.
func (g *Grid) AddRow() *Focus {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.appendAndFocus(0)
	return g.focusCopy()
}

// Edit writes a value into the focused cell. Without focus it does nothing.
func (g *Grid) Edit(value string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.normalize(g.view())
	if g.focus == nil {
		return false
	}
	return g.editAt(g.focus.Row, g.focus.Col, value)
}

// EditAt writes a value into a cell of the current view. Numeric columns
// coerce unparsable input to 0 and every edit recomputes dry bushels.
func (g *Grid) EditAt(row, col int, value string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.editAt(row, col, value)
}

func (g *Grid) editAt(row, col int, value string) bool {
	rows := g.view()
	if row < 0 || row >= len(rows) || col < 0 || col >= len(Columns) {
		return false
	}

	id := rows[row].ID
	field := Columns[col]
	_, err := g.doc.Update(func(doc *models.SeasonDocument) error {
		if idx := doc.FindTicket(id); idx >= 0 {
			doc.GrainTickets[idx].Set(field, value)
		}
		return nil
	})
	if err != nil {
		g.logger.Warn("ticket edit rejected", zap.String("ticket_id", id), zap.String("field", string(field)), zap.Error(err))
		return false
	}
	return true
}

// Sort orders the view by a column. Choosing the current column flips the
// direction; choosing another column sorts it ascending.
func (g *Grid) Sort(column models.TicketField) bool {
	if _, ok := models.ParseTicketField(string(column)); !ok {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sortCol == column {
		g.sortAsc = !g.sortAsc
	} else {
		g.sortCol = column
		g.sortAsc = true
	}
	g.normalize(g.view())
	return true
}

// ClearSort restores the underlying ticket order.
func (g *Grid) ClearSort() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.sortCol = ""
	g.sortAsc = true
	g.normalize(g.view())
}

// Filter narrows the view to one crop tag, or every ticket for "all".
func (g *Grid) Filter(crop string) {
	crop = strings.TrimSpace(crop)
	if crop == "" {
		crop = FilterAll
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.filter = crop
	g.normalize(g.view())
}

// view is the filtered then sorted ticket list.
func (g *Grid) view() []models.GrainTicket {
	doc := g.doc.Current()
	if doc == nil {
		return nil
	}

	rows := make([]models.GrainTicket, 0, len(doc.GrainTickets))
	for _, t := range doc.GrainTickets {
		if g.filter == FilterAll || t.Crop == g.filter {
			rows = append(rows, t)
		}
	}

	if g.sortCol != "" {
		field := g.sortCol
		slices.SortStableFunc(rows, func(a, b models.GrainTicket) int {
			var c int
			if field.Numeric() {
				c = cmp.Compare(a.Number(field), b.Number(field))
			} else {
				c = cmp.Compare(strings.ToLower(a.Text(field)), strings.ToLower(b.Text(field)))
			}
			if !g.sortAsc {
				c = -c
			}
			return c
		})
	}
	return rows
}

// normalize clears focus that no longer points at a cell of rows.
func (g *Grid) normalize(rows []models.GrainTicket) {
	if g.focus == nil {
		return
	}
	if g.focus.Row < 0 || g.focus.Row >= len(rows) || g.focus.Col < 0 || g.focus.Col >= len(Columns) {
		g.focus = nil
	}
}

func (g *Grid) focusCopy() *Focus {
	if g.focus == nil {
		return nil
	}
	f := *g.focus
	return &f
}

// appendAndFocus appends an empty ticket to the underlying collection and
// focuses it in the view.
func (g *Grid) appendAndFocus(col int) {
	ticket := g.emptyTicket()
	_, err := g.doc.Update(func(doc *models.SeasonDocument) error {
		doc.AppendTickets(ticket)
		return nil
	})
	if err != nil {
		g.logger.Warn("ticket append rejected", zap.Error(err))
		return
	}

	rows := g.view()
	for i, t := range rows {
		if t.ID == ticket.ID {
			g.focus = &Focus{Row: i, Col: col}
			return
		}
	}
	g.focus = nil
}

func (g *Grid) emptyTicket() models.GrainTicket {
	crop := g.filter
	if crop == FilterAll {
		crop = string(models.TagCorn)
	}
	return models.GrainTicket{
		ID:   g.newID(),
		Date: g.now().Format(time.DateOnly),
		Crop: crop,
	}
}
