// Package sqlite is a file-backed season store for single-machine installs.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	sqlitedriver "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/internal/repository"
)

type seasonRow struct {
	ID        uint                   `gorm:"primaryKey"`
	Owner     string                 `gorm:"column:user_id;not null;uniqueIndex:idx_user_year"`
	Year      int                    `gorm:"not null;uniqueIndex:idx_user_year"`
	Data      *models.SeasonDocument `gorm:"serializer:json"`
	UpdatedAt time.Time
}

func (seasonRow) TableName() string { return "farm_data" }

// SeasonRepository stores season documents as JSON in SQLite.
type SeasonRepository struct {
	db *gorm.DB
}

var _ repository.SeasonRepository = (*SeasonRepository)(nil)

// NewSeasonRepository opens (or creates) the database at path and migrates
// the schema. Use ":memory:" for a throwaway store.
func NewSeasonRepository(path string) (*SeasonRepository, error) {
	db, err := gorm.Open(sqlitedriver.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// one connection keeps ":memory:" databases shared and serialises writers
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&seasonRow{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return &SeasonRepository{db: db}, nil
}

// Upsert inserts the record or replaces the stored document for its owner and year.
func (r *SeasonRepository) Upsert(ctx context.Context, record repository.SeasonRecord) error {
	row := seasonRow{
		Owner:     record.Owner,
		Year:      record.Year,
		Data:      record.Data,
		UpdatedAt: record.UpdatedAt,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert season %d: %w", record.Year, err)
	}
	return nil
}

// FetchYears lists the owner's stored years, newest first.
func (r *SeasonRepository) FetchYears(ctx context.Context, owner string) ([]int, error) {
	var years []int
	err := r.db.WithContext(ctx).Model(&seasonRow{}).
		Where("user_id = ?", owner).
		Order("year DESC").
		Pluck("year", &years).Error
	if err != nil {
		return nil, fmt.Errorf("list season years: %w", err)
	}
	return years, nil
}

// FetchDocument loads the owner's document for a year.
func (r *SeasonRepository) FetchDocument(ctx context.Context, owner string, year int) (*models.SeasonDocument, error) {
	var row seasonRow
	err := r.db.WithContext(ctx).Where("user_id = ? AND year = ?", owner, year).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch season %d: %w", year, err)
	}
	if row.Data == nil {
		return nil, repository.ErrNotFound
	}
	return row.Data, nil
}

// Close releases the database handle.
func (r *SeasonRepository) Close(context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
