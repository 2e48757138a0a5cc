// Package season owns the live season documents: the single update gate per
// owner and year, debounced persistence and the registry of open seasons.
package season

import (
	"sync"
	"sync/atomic"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
)

// Listener is notified with the newly adopted document after every update.
type Listener func(doc *models.SeasonDocument)

// Session is the update gate for one document. Readers get the adopted
// snapshot and must treat it as immutable; writers go through Update.
type Session struct {
	owner string
	year  int

	mu        sync.Mutex
	current   atomic.Pointer[models.SeasonDocument]
	listeners []Listener
}

// NewSession adopts doc as the starting snapshot.
func NewSession(owner string, year int, doc *models.SeasonDocument) *Session {
	s := &Session{owner: owner, year: year}
	s.current.Store(doc)
	return s
}

// Owner returns the owning user id.
func (s *Session) Owner() string { return s.owner }

// Year returns the crop year.
func (s *Session) Year() int { return s.year }

// Current returns the adopted snapshot.
func (s *Session) Current() *models.SeasonDocument {
	return s.current.Load()
}

// Update deep-clones the current document, applies transform to the clone
// and adopts it. When transform fails the clone is discarded and the
// current document is returned with the error.
func (s *Session) Update(transform func(doc *models.SeasonDocument) error) (*models.SeasonDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	next := prev.Clone()
	if err := transform(next); err != nil {
		return prev, err
	}
	s.current.Store(next)

	for _, l := range s.listeners {
		l(next)
	}
	return next, nil
}

// Subscribe registers a listener for adopted documents.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}
