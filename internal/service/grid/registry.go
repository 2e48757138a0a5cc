package grid

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrGridNotFound is returned for unknown or expired grid sessions.
var ErrGridNotFound = errors.New("grid session not found")

type entry struct {
	owner    string
	year     int
	grid     *Grid
	lastSeen time.Time
}

// Registry holds the open grid views keyed by session id.
type Registry struct {
	mu     sync.Mutex
	items  map[string]*entry
	logger *zap.Logger
	now    func() time.Time
}

// NewRegistry constructs an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		items:  make(map[string]*entry),
		logger: logger,
		now:    time.Now,
	}
}

// Open starts a grid over the owner's season document and returns its id.
func (r *Registry) Open(owner string, year int, doc Document) (string, *Grid) {
	id := uuid.NewString()
	g := New(doc, r.logger)

	r.mu.Lock()
	r.items[id] = &entry{owner: owner, year: year, grid: g, lastSeen: r.now()}
	r.mu.Unlock()

	r.logger.Debug("grid session opened", zap.String("grid_id", id), zap.String("owner", owner), zap.Int("year", year))
	return id, g
}

// Get returns the owner's grid and marks it active.
func (r *Registry) Get(owner, id string) (*Grid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok || e.owner != owner {
		return nil, ErrGridNotFound
	}
	e.lastSeen = r.now()
	return e.grid, nil
}

// Close discards a grid session.
func (r *Registry) Close(owner, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok || e.owner != owner {
		return false
	}
	delete(r.items, id)
	return true
}

// Sweep drops grids idle for longer than maxAge.
func (r *Registry) Sweep(maxAge time.Duration) int {
	cutoff := r.now().Add(-maxAge)

	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, e := range r.items {
		if e.lastSeen.Before(cutoff) {
			delete(r.items, id)
			dropped++
		}
	}
	return dropped
}
