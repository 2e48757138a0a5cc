// Package memory is a process-local season store used by tests and by
// STORAGE_DRIVER=memory for throwaway demo runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/internal/repository"
)

type key struct {
	owner string
	year  int
}

// SeasonRepository keeps deep copies of upserted documents in a map.
type SeasonRepository struct {
	mu      sync.Mutex
	records map[key]repository.SeasonRecord
	upserts int
	failErr error
}

var _ repository.SeasonRepository = (*SeasonRepository)(nil)

// NewSeasonRepository constructs an empty store.
func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{records: make(map[key]repository.SeasonRecord)}
}

// FailWith makes every following Upsert return err; nil restores success.
func (r *SeasonRepository) FailWith(err error) {
	r.mu.Lock()
	r.failErr = err
	r.mu.Unlock()
}

// Upserts reports how many Upsert calls succeeded.
func (r *SeasonRepository) Upserts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.upserts
}

// Upsert stores a copy of the record.
func (r *SeasonRepository) Upsert(_ context.Context, record repository.SeasonRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failErr != nil {
		return r.failErr
	}
	record.Data = record.Data.Clone()
	r.records[key{owner: record.Owner, year: record.Year}] = record
	r.upserts++
	return nil
}

// FetchYears lists the owner's stored years, newest first.
func (r *SeasonRepository) FetchYears(_ context.Context, owner string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var years []int
	for k := range r.records {
		if k.owner == owner {
			years = append(years, k.year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

// FetchDocument returns a copy of the stored document.
func (r *SeasonRepository) FetchDocument(_ context.Context, owner string, year int) (*models.SeasonDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[key{owner: owner, year: year}]
	if !ok || rec.Data == nil {
		return nil, repository.ErrNotFound
	}
	return rec.Data.Clone(), nil
}

// Close is a no-op.
func (r *SeasonRepository) Close(context.Context) error { return nil }
