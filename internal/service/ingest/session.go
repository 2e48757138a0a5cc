package ingest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
)

const previewRows = 5

var (
	// ErrNoDataRows is returned for input without a header and at least one data row.
	ErrNoDataRows = errors.New("csv has no data rows")
	// ErrUnknownField is returned when a mapping names a field that is not an import target.
	ErrUnknownField = errors.New("unknown import field")
	// ErrColumnOutOfRange is returned when a mapping points past the header row.
	ErrColumnOutOfRange = errors.New("column out of range")
	// ErrSessionNotFound is returned for unknown or expired import sessions.
	ErrSessionNotFound = errors.New("import session not found")
)

// PreviewRow is one previewed ticket keyed by import field. Only mapped
// fields are present.
type PreviewRow map[models.TicketField]string

// Session holds one uploaded file between upload and commit.
type Session struct {
	ID        string
	Owner     string
	Year      int
	Headers   []string
	Rows      [][]string
	CreatedAt time.Time

	mu       sync.Mutex
	mapping  Mapping
	lastSeen time.Time
}

// NewSession parses the text and seeds the mapping from the headers.
func NewSession(owner string, year int, text string, now time.Time) (*Session, error) {
	rows := ParseRows(text)
	if len(rows) < 2 {
		return nil, ErrNoDataRows
	}

	return &Session{
		ID:        uuid.NewString(),
		Owner:     owner,
		Year:      year,
		Headers:   rows[0],
		Rows:      rows[1:],
		CreatedAt: now,
		mapping:   AutoMap(rows[0]),
		lastSeen:  now,
	}, nil
}

// Mapping returns a copy of the current mapping.
func (s *Session) Mapping() Mapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapping.Clone()
}

// Assign points an import field at a source column.
func (s *Session) Assign(field models.TicketField, col int) error {
	if _, ok := LookupField(field); !ok {
		return fmt.Errorf("assign %q: %w", field, ErrUnknownField)
	}
	if col < 0 || col >= len(s.Headers) {
		return fmt.Errorf("assign %q to column %d: %w", field, col, ErrColumnOutOfRange)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapping[field] = col
	return nil
}

// Skip leaves an import field unmapped.
func (s *Session) Skip(field models.TicketField) error {
	if _, ok := LookupField(field); !ok {
		return fmt.Errorf("skip %q: %w", field, ErrUnknownField)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mapping, field)
	return nil
}

// Preview renders the first rows under the current mapping the way they
// will be imported.
func (s *Session) Preview() []PreviewRow {
	mapping := s.Mapping()

	limit := min(previewRows, len(s.Rows))
	out := make([]PreviewRow, 0, limit)
	for _, row := range s.Rows[:limit] {
		pr := PreviewRow{}
		for _, fd := range FieldDefs {
			if _, ok := mapping.Column(fd.Field); !ok {
				continue
			}
			val := cell(row, mapping, fd.Field)
			switch fd.Field {
			case models.FieldCrop:
				val = models.NormalizeCropTag(val)
			case models.FieldDate:
				val = truncateDate(val)
			}
			pr[fd.Field] = val
		}
		out = append(out, pr)
	}
	return out
}

// Build produces the tickets for every data row under the current mapping.
func (s *Session) Build(newID IDFunc) []models.GrainTicket {
	return BuildTickets(s.Rows, s.Mapping(), newID)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Sessions is the in-memory registry of pending imports.
type Sessions struct {
	mu     sync.Mutex
	items  map[string]*Session
	logger *zap.Logger
	now    func() time.Time
}

// NewSessions constructs an empty registry.
func NewSessions(logger *zap.Logger) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sessions{
		items:  make(map[string]*Session),
		logger: logger,
		now:    time.Now,
	}
}

// Open parses an upload and registers a session for it.
func (r *Sessions) Open(owner string, year int, text string) (*Session, error) {
	s, err := NewSession(owner, year, text, r.now())
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.items[s.ID] = s
	r.mu.Unlock()

	r.logger.Info("import session opened",
		zap.String("session_id", s.ID),
		zap.String("owner", owner),
		zap.Int("year", year),
		zap.Int("rows", len(s.Rows)),
		zap.Int("mapped_fields", len(s.mapping)),
	)
	return s, nil
}

// Get returns the owner's session and marks it active.
func (r *Sessions) Get(owner, id string) (*Session, error) {
	r.mu.Lock()
	s, ok := r.items[id]
	r.mu.Unlock()
	if !ok || s.Owner != owner {
		return nil, ErrSessionNotFound
	}
	s.touch(r.now())
	return s, nil
}

// Remove discards a session. It reports whether the session existed.
func (r *Sessions) Remove(owner, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok || s.Owner != owner {
		return false
	}
	delete(r.items, id)
	return true
}

// Sweep drops sessions idle for longer than maxAge and returns how many
// were dropped.
func (r *Sessions) Sweep(maxAge time.Duration) int {
	cutoff := r.now().Add(-maxAge)

	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, s := range r.items {
		if s.idleSince().Before(cutoff) {
			delete(r.items, id)
			dropped++
		}
	}
	if dropped > 0 {
		r.logger.Debug("import sessions expired", zap.Int("count", dropped))
	}
	return dropped
}

// Len reports how many sessions are pending.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
