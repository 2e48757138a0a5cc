package season

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/internal/repository"
)

// Status is the persistence state shown next to the document.
type Status string

const (
	StatusSaved   Status = "saved"
	StatusSaving  Status = "saving"
	StatusUnsaved Status = "unsaved"
	StatusError   Status = "error"
)

// DefaultSaveDelay is the debounce window between the last edit and the save.
const DefaultSaveDelay = 1200 * time.Millisecond

const saveTimeout = 15 * time.Second

// StatusReport describes the latest persistence outcome.
type StatusReport struct {
	Status  Status    `json:"status"`
	Error   string    `json:"error,omitempty"`
	SavedAt time.Time `json:"savedAt,omitempty"`
}

// Syncer persists a session's documents with debounced, coalesced upserts.
// A failed save sets the error status and is not retried; the next edit or
// an explicit Flush saves again.
type Syncer struct {
	session  *Session
	repo     repository.SeasonRepository
	debounce *Debouncer
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	status   Status
	lastErr  error
	savedAt  time.Time
	revision uint64

	// saveMu keeps an older snapshot from landing after a newer one.
	saveMu sync.Mutex
}

// NewSyncer subscribes to the session. The session's current document is
// treated as already saved.
func NewSyncer(session *Session, repo repository.SeasonRepository, delay time.Duration, logger *zap.Logger) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if delay <= 0 {
		delay = DefaultSaveDelay
	}

	s := &Syncer{
		session:  session,
		repo:     repo,
		debounce: NewDebouncer(delay),
		logger:   logger.With(zap.String("owner", session.Owner()), zap.Int("year", session.Year())),
		now:      time.Now,
		status:   StatusSaved,
	}
	session.Subscribe(s.onChange)
	return s
}

// Status returns the latest persistence state.
func (s *Syncer) Status() StatusReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := StatusReport{Status: s.status, SavedAt: s.savedAt}
	if s.status == StatusError && s.lastErr != nil {
		report.Error = s.lastErr.Error()
	}
	return report
}

// Dirty reports whether the session holds changes that are not stored.
func (s *Syncer) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status != StatusSaved
}

func (s *Syncer) onChange(doc *models.SeasonDocument) {
	s.mu.Lock()
	s.revision++
	rev := s.revision
	s.status = StatusUnsaved
	s.mu.Unlock()

	s.debounce.Schedule(func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		_ = s.save(ctx, doc, rev)
	})
}

// Flush cancels any pending debounced save and stores the current document now.
func (s *Syncer) Flush(ctx context.Context) error {
	s.debounce.Cancel()

	s.mu.Lock()
	rev := s.revision
	s.mu.Unlock()

	return s.save(ctx, s.session.Current(), rev)
}

func (s *Syncer) save(ctx context.Context, doc *models.SeasonDocument, rev uint64) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if rev < s.revision {
		// a newer edit has its own save scheduled
		s.mu.Unlock()
		return nil
	}
	s.status = StatusSaving
	s.mu.Unlock()

	started := s.now()
	err := s.repo.Upsert(ctx, repository.SeasonRecord{
		Owner:     s.session.Owner(),
		Year:      s.session.Year(),
		Data:      doc,
		UpdatedAt: started.UTC(),
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastErr = err
		if rev == s.revision {
			s.status = StatusError
		}
		s.logger.Error("season save failed", zap.Uint64("revision", rev), zap.Error(err))
		return fmt.Errorf("save season %d: %w", s.session.Year(), err)
	}

	s.lastErr = nil
	s.savedAt = started
	if rev == s.revision {
		s.status = StatusSaved
	}
	s.logger.Debug("season saved", zap.Uint64("revision", rev), zap.Duration("took", s.now().Sub(started)))
	return nil
}
