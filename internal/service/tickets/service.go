// Package tickets handles grain ticket entry: quick add, field edits,
// deletion and the CSV import flow.
package tickets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/internal/repository/sheets"
	"github.com/mamadbah2/cropbudget/internal/service/ingest"
	"github.com/mamadbah2/cropbudget/internal/service/season"
)

var (
	// ErrTicketNotFound is returned for ticket ids that are not in the season.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrInvalidField indicates the field name is not an editable ticket field.
	ErrInvalidField = errors.New("invalid ticket field")
)

const dateFormat = "2006-01-02"

// Form is the quick-add input, raw strings keyed by ticket field.
type Form map[models.TicketField]string

// Fields kept from one quick-add form to the next.
var stickyFields = []models.TicketField{
	models.FieldDate,
	models.FieldCrop,
	models.FieldDestination,
	models.FieldFarm,
}

// Seasons opens editable seasons.
type Seasons interface {
	Open(ctx context.Context, owner string, year int) (*season.Season, error)
}

// Service implements ticket operations on top of the season update gate.
type Service struct {
	seasons Seasons
	imports *ingest.Sessions
	mirror  sheets.Mirror
	logger  *zap.Logger
	now     func() time.Time
	newID   ingest.IDFunc
}

// NewService constructs a ticket service. A nil mirror disables the sheet copy.
func NewService(seasons Seasons, imports *ingest.Sessions, mirror sheets.Mirror, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		seasons: seasons,
		imports: imports,
		mirror:  mirror,
		logger:  logger,
		now:     time.Now,
		newID:   models.NewTicketID,
	}
}

// QuickAdd coerces the form into a ticket, appends it and returns the next
// form with date, crop, destination and farm carried over.
func (s *Service) QuickAdd(ctx context.Context, owner string, year int, form Form) (models.GrainTicket, Form, error) {
	ticket := models.GrainTicket{ID: s.newID()}
	for field, raw := range form {
		if f, ok := models.ParseTicketField(string(field)); !ok || f == models.FieldDryBushels {
			return models.GrainTicket{}, nil, fmt.Errorf("%w: %s", ErrInvalidField, field)
		}
		ticket.Set(field, raw)
	}
	if ticket.Date == "" {
		ticket.Date = s.now().Format(dateFormat)
	}
	ticket.Crop = models.NormalizeCropTag(ticket.Crop)

	sess, err := s.seasons.Open(ctx, owner, year)
	if err != nil {
		return models.GrainTicket{}, nil, err
	}
	if _, err := sess.Update(func(doc *models.SeasonDocument) error {
		doc.AppendTickets(ticket)
		return nil
	}); err != nil {
		return models.GrainTicket{}, nil, fmt.Errorf("add ticket: %w", err)
	}

	s.logger.Debug("ticket added", zap.String("owner", owner), zap.Int("year", year), zap.String("id", ticket.ID))

	next := make(Form, len(stickyFields))
	for _, f := range stickyFields {
		next[f] = ticket.Text(f)
	}
	return ticket, next, nil
}

// Edit sets one field of a ticket. Numeric input that does not parse is 0.
func (s *Service) Edit(ctx context.Context, owner string, year int, id, field, value string) (models.GrainTicket, error) {
	f, ok := models.ParseTicketField(field)
	if !ok || f == models.FieldDryBushels {
		return models.GrainTicket{}, fmt.Errorf("%w: %s", ErrInvalidField, field)
	}

	sess, err := s.seasons.Open(ctx, owner, year)
	if err != nil {
		return models.GrainTicket{}, err
	}

	var edited models.GrainTicket
	_, err = sess.Update(func(doc *models.SeasonDocument) error {
		idx := doc.FindTicket(id)
		if idx < 0 {
			return ErrTicketNotFound
		}
		doc.GrainTickets[idx].Set(f, value)
		edited = doc.GrainTickets[idx]
		return nil
	})
	if err != nil {
		return models.GrainTicket{}, fmt.Errorf("edit ticket %s: %w", id, err)
	}
	return edited, nil
}

// Delete removes a ticket.
func (s *Service) Delete(ctx context.Context, owner string, year int, id string) error {
	sess, err := s.seasons.Open(ctx, owner, year)
	if err != nil {
		return err
	}
	_, err = sess.Update(func(doc *models.SeasonDocument) error {
		if !doc.RemoveTicket(id) {
			return ErrTicketNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete ticket %s: %w", id, err)
	}
	return nil
}

// List returns the season's tickets.
func (s *Service) List(ctx context.Context, owner string, year int) ([]models.GrainTicket, error) {
	sess, err := s.seasons.Open(ctx, owner, year)
	if err != nil {
		return nil, err
	}
	return sess.Current().GrainTickets, nil
}

// StartImport parses an uploaded CSV into a new import session.
func (s *Service) StartImport(owner string, year int, text string) (*ingest.Session, error) {
	return s.imports.Open(owner, year, text)
}

// Import returns an open import session.
func (s *Service) Import(owner, id string) (*ingest.Session, error) {
	return s.imports.Get(owner, id)
}

// DiscardImport drops an import session without writing tickets.
func (s *Service) DiscardImport(owner, id string) bool {
	return s.imports.Remove(owner, id)
}

// CommitImport builds tickets with the session's mapping, appends them to
// the session's season and closes the import. The sheet mirror is best
// effort; its failure is logged and does not undo the import.
func (s *Service) CommitImport(ctx context.Context, owner, id string) ([]models.GrainTicket, error) {
	imp, err := s.imports.Get(owner, id)
	if err != nil {
		return nil, err
	}

	built := imp.Build(s.newID)
	sess, err := s.seasons.Open(ctx, owner, imp.Year)
	if err != nil {
		return nil, err
	}
	if _, err := sess.Update(func(doc *models.SeasonDocument) error {
		doc.AppendTickets(built...)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("commit import %s: %w", id, err)
	}
	s.imports.Remove(owner, id)

	s.logger.Info("tickets imported",
		zap.String("owner", owner),
		zap.Int("year", imp.Year),
		zap.Int("tickets", len(built)),
		zap.Int("rows", len(imp.Rows)),
	)

	if s.mirror != nil && len(built) > 0 {
		if err := s.mirror.AppendTickets(ctx, owner, imp.Year, built); err != nil {
			s.logger.Warn("ticket mirror failed", zap.String("import", id), zap.Error(err))
		}
	}
	return built, nil
}
