// Package repository declares the season store contract shared by the
// mongodb and sqlite adapters.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
)

// ErrNotFound is returned when no document is stored for an owner and year.
var ErrNotFound = errors.New("season document not found")

// SeasonRecord is one stored season, keyed uniquely by owner and year.
type SeasonRecord struct {
	Owner     string                 `bson:"user_id" json:"userId"`
	Year      int                    `bson:"year" json:"year"`
	Data      *models.SeasonDocument `bson:"data" json:"data"`
	UpdatedAt time.Time              `bson:"updated_at" json:"updatedAt"`
}

// SeasonRepository persists whole season documents. Upsert is idempotent
// for a given owner and year.
type SeasonRepository interface {
	Upsert(ctx context.Context, record SeasonRecord) error
	FetchYears(ctx context.Context, owner string) ([]int, error)
	FetchDocument(ctx context.Context, owner string, year int) (*models.SeasonDocument, error)
	Close(ctx context.Context) error
}
