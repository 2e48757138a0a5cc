package season

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/internal/repository"
)

var (
	// ErrYearExists is returned when copying into a year that already has a document.
	ErrYearExists = errors.New("season year already exists")
	// ErrNotOpen is returned for seasons that were never opened.
	ErrNotOpen = errors.New("season is not open")
)

// Season is an open document together with its persistence state.
type Season struct {
	*Session
	syncer *Syncer
}

// Status returns the persistence state of the season.
func (s *Season) Status() StatusReport { return s.syncer.Status() }

// Flush saves the season now.
func (s *Season) Flush(ctx context.Context) error { return s.syncer.Flush(ctx) }

type seasonKey struct {
	owner string
	year  int
}

// Manager keeps one open Season per owner and year.
type Manager struct {
	repo   repository.SeasonRepository
	delay  time.Duration
	logger *zap.Logger

	mu   sync.Mutex
	open map[seasonKey]*Season
}

// NewManager constructs a manager saving through repo after delay of quiet.
func NewManager(repo repository.SeasonRepository, delay time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		repo:   repo,
		delay:  delay,
		logger: logger,
		open:   make(map[seasonKey]*Season),
	}
}

// Open returns the open season, loading it on first use. A year with no
// stored document starts from the built-in default. Loaded documents are
// repaired and validated before they are adopted.
func (m *Manager) Open(ctx context.Context, owner string, year int) (*Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := seasonKey{owner: owner, year: year}
	if s, ok := m.open[key]; ok {
		return s, nil
	}

	doc, err := m.repo.FetchDocument(ctx, owner, year)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		m.logger.Info("no stored season, using default", zap.String("owner", owner), zap.Int("year", year))
		doc = models.DefaultDocument(year)
	case err != nil:
		return nil, fmt.Errorf("load season %d: %w", year, err)
	}

	doc.Year = year
	if removed := doc.Repair(); removed > 0 {
		m.logger.Warn("dropped orphaned crop references",
			zap.String("owner", owner),
			zap.Int("year", year),
			zap.Int("removed", removed),
		)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("load season %d: %w", year, err)
	}

	s := m.register(key, doc)
	return s, nil
}

func (m *Manager) register(key seasonKey, doc *models.SeasonDocument) *Season {
	session := NewSession(key.owner, key.year, doc)
	s := &Season{
		Session: session,
		syncer:  NewSyncer(session, m.repo, m.delay, m.logger.Named("sync")),
	}
	m.open[key] = s
	return s
}

// Document opens the season and returns its current snapshot.
func (m *Manager) Document(ctx context.Context, owner string, year int) (*models.SeasonDocument, error) {
	s, err := m.Open(ctx, owner, year)
	if err != nil {
		return nil, err
	}
	return s.Current(), nil
}

// Lookup returns an already open season.
func (m *Manager) Lookup(owner string, year int) (*Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.open[seasonKey{owner: owner, year: year}]
	if !ok {
		return nil, ErrNotOpen
	}
	return s, nil
}

// Years lists the owner's stored and open years, newest first.
func (m *Manager) Years(ctx context.Context, owner string) ([]int, error) {
	stored, err := m.repo.FetchYears(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list years: %w", err)
	}

	years := slices.Clone(stored)
	m.mu.Lock()
	for key := range m.open {
		if key.owner == owner {
			years = append(years, key.year)
		}
	}
	m.mu.Unlock()

	slices.Sort(years)
	years = slices.Compact(years)
	slices.Reverse(years)
	return years, nil
}

// CopyYear starts year to from the budget of year from and stores it
// immediately. Actuals and the per-season logs start empty.
func (m *Manager) CopyYear(ctx context.Context, owner string, from, to int) (*Season, error) {
	if from == to {
		return nil, fmt.Errorf("copy season %d onto itself: %w", from, ErrYearExists)
	}

	src, err := m.Open(ctx, owner, from)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	key := seasonKey{owner: owner, year: to}
	if _, ok := m.open[key]; ok {
		m.mu.Unlock()
		return nil, fmt.Errorf("copy season to %d: %w", to, ErrYearExists)
	}
	if _, err := m.repo.FetchDocument(ctx, owner, to); err == nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("copy season to %d: %w", to, ErrYearExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		m.mu.Unlock()
		return nil, fmt.Errorf("copy season to %d: %w", to, err)
	}
	dst := m.register(key, src.Current().CopyForYear(to))
	m.mu.Unlock()

	if err := dst.Flush(ctx); err != nil {
		return dst, err
	}
	m.logger.Info("season copied", zap.String("owner", owner), zap.Int("from", from), zap.Int("to", to))
	return dst, nil
}

// Flush saves one open season now.
func (m *Manager) Flush(ctx context.Context, owner string, year int) error {
	s, err := m.Lookup(owner, year)
	if err != nil {
		return err
	}
	return s.Flush(ctx)
}

// Close saves every season with unsaved changes.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	seasons := make([]*Season, 0, len(m.open))
	for _, s := range m.open {
		seasons = append(seasons, s)
	}
	m.mu.Unlock()

	var errs []error
	for _, s := range seasons {
		if !s.syncer.Dirty() {
			s.syncer.debounce.Cancel()
			continue
		}
		if err := s.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
