package tickets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/internal/repository/memory"
	"github.com/mamadbah2/cropbudget/internal/service/ingest"
	"github.com/mamadbah2/cropbudget/internal/service/season"
)

type fakeMirror struct {
	mu      sync.Mutex
	err     error
	written []models.GrainTicket
}

func (m *fakeMirror) AppendTickets(_ context.Context, _ string, _ int, tickets []models.GrainTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.written = append(m.written, tickets...)
	return nil
}

func newTestService(t *testing.T, mirror *fakeMirror) (*Service, *season.Manager) {
	t.Helper()
	manager := season.NewManager(memory.NewSeasonRepository(), time.Hour, nil)
	svc := NewService(manager, ingest.NewSessions(nil), mirror, nil)
	svc.now = func() time.Time { return time.Date(2025, 10, 3, 9, 0, 0, 0, time.UTC) }
	var n int
	svc.newID = func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
	return svc, manager
}

func TestQuickAdd(t *testing.T) {
	ctx := context.Background()
	svc, manager := newTestService(t, nil)

	ticket, next, err := svc.QuickAdd(ctx, "u1", 2025, Form{
		models.FieldCrop:        "Soybeans",
		models.FieldFarm:        "North",
		models.FieldBushels:     "1000",
		models.FieldMoisture:    "17.5",
		models.FieldDestination: "Elevator",
		models.FieldNotes:       "truck 4",
	})
	require.NoError(t, err)

	assert.Equal(t, "t1", ticket.ID)
	assert.Equal(t, "2025-10-03", ticket.Date)
	assert.Equal(t, "beans", ticket.Crop)
	assert.InDelta(t, 976.0, ticket.DryBushels, 1e-9)
	assert.Equal(t, Form{
		models.FieldDate:        "2025-10-03",
		models.FieldCrop:        "beans",
		models.FieldDestination: "Elevator",
		models.FieldFarm:        "North",
	}, next)

	doc, err := manager.Document(ctx, "u1", 2025)
	require.NoError(t, err)
	require.Len(t, doc.GrainTickets, 1)
	assert.Equal(t, "truck 4", doc.GrainTickets[0].Notes)

	_, _, err = svc.QuickAdd(ctx, "u1", 2025, Form{"weight": "1"})
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestQuickAddDefaultsCrop(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ticket, _, err := svc.QuickAdd(context.Background(), "u1", 2025, Form{models.FieldBushels: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "corn", ticket.Crop)
	assert.Zero(t, ticket.Bushels)
}

func TestEditAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	added, _, err := svc.QuickAdd(ctx, "u1", 2025, Form{models.FieldBushels: "500"})
	require.NoError(t, err)

	edited, err := svc.Edit(ctx, "u1", 2025, added.ID, "moisture", "25.5")
	require.NoError(t, err)
	assert.InDelta(t, 440.0, edited.DryBushels, 1e-9)

	edited, err = svc.Edit(ctx, "u1", 2025, added.ID, "bushels", "lots")
	require.NoError(t, err)
	assert.Zero(t, edited.Bushels)
	assert.Zero(t, edited.DryBushels)

	_, err = svc.Edit(ctx, "u1", 2025, added.ID, "dryBushels", "1")
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = svc.Edit(ctx, "u1", 2025, "missing", "notes", "x")
	assert.ErrorIs(t, err, ErrTicketNotFound)

	require.NoError(t, svc.Delete(ctx, "u1", 2025, added.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "u1", 2025, added.ID), ErrTicketNotFound)

	list, err := svc.List(ctx, "u1", 2025)
	require.NoError(t, err)
	assert.Empty(t, list)
}

const importCSV = "Date,Commodity,Net Amount,Moisture,Applied Field Names\n" +
	"2025-10-01 08:00,Corn,1000,15,North\n" +
	",,,,\n" +
	"2025-10-02,Amylose Corn,800,18.5,East\n"

func TestImportFlow(t *testing.T) {
	ctx := context.Background()
	mirror := &fakeMirror{}
	svc, manager := newTestService(t, mirror)

	imp, err := svc.StartImport("u1", 2025, importCSV)
	require.NoError(t, err)
	col, ok := imp.Mapping().Column(models.FieldFarm)
	require.True(t, ok)
	assert.Equal(t, 4, col)

	got, err := svc.Import("u1", imp.ID)
	require.NoError(t, err)
	assert.Same(t, imp, got)
	_, err = svc.Import("u2", imp.ID)
	assert.ErrorIs(t, err, ingest.ErrSessionNotFound)

	built, err := svc.CommitImport(ctx, "u1", imp.ID)
	require.NoError(t, err)
	require.Len(t, built, 2)
	assert.Equal(t, "2025-10-01", built[0].Date)
	assert.Equal(t, "amylose", built[1].Crop)

	doc, err := manager.Document(ctx, "u1", 2025)
	require.NoError(t, err)
	assert.Len(t, doc.GrainTickets, 2)
	assert.Len(t, mirror.written, 2)

	_, err = svc.CommitImport(ctx, "u1", imp.ID)
	assert.ErrorIs(t, err, ingest.ErrSessionNotFound)
}

func TestCommitImportSurvivesMirrorFailure(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, &fakeMirror{err: errors.New("quota exceeded")})

	imp, err := svc.StartImport("u1", 2025, importCSV)
	require.NoError(t, err)
	built, err := svc.CommitImport(ctx, "u1", imp.ID)
	require.NoError(t, err)
	assert.Len(t, built, 2)
}

func TestDiscardImport(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.StartImport("u1", 2025, "Date,Crop\n")
	assert.ErrorIs(t, err, ingest.ErrNoDataRows)

	imp, err := svc.StartImport("u1", 2025, importCSV)
	require.NoError(t, err)
	assert.True(t, svc.DiscardImport("u1", imp.ID))
	assert.False(t, svc.DiscardImport("u1", imp.ID))
}
