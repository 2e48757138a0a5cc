package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/internal/repository"
)

func newRepo(t *testing.T) *SeasonRepository {
	t.Helper()
	repo, err := NewSeasonRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close(context.Background()) })
	return repo
}

func TestUpsertIsKeyedByOwnerAndYear(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	doc := models.DefaultDocument(2025)
	require.NoError(t, repo.Upsert(ctx, repository.SeasonRecord{Owner: "u1", Year: 2025, Data: doc, UpdatedAt: time.Now()}))

	doc.Crops[0].Acres = 10
	require.NoError(t, repo.Upsert(ctx, repository.SeasonRecord{Owner: "u1", Year: 2025, Data: doc, UpdatedAt: time.Now()}))

	var count int64
	require.NoError(t, repo.db.Model(&seasonRow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.FetchDocument(ctx, "u1", 2025)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Crops[0].Acres)
	assert.Equal(t, doc.RentPerCrop, got.RentPerCrop)
}

func TestFetchDocumentNotFound(t *testing.T) {
	repo := newRepo(t)
	_, err := repo.FetchDocument(context.Background(), "u1", 1999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFetchYearsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	for _, y := range []int{2023, 2025, 2024} {
		require.NoError(t, repo.Upsert(ctx, repository.SeasonRecord{Owner: "u1", Year: y, Data: models.DefaultDocument(y)}))
	}
	require.NoError(t, repo.Upsert(ctx, repository.SeasonRecord{Owner: "u2", Year: 2020, Data: models.DefaultDocument(2020)}))

	years, err := repo.FetchYears(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []int{2025, 2024, 2023}, years)

	years, err = repo.FetchYears(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, years)
}
