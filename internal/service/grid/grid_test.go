package grid

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
)

type memDoc struct {
	doc     *models.SeasonDocument
	updates int
	fail    error
}

func (m *memDoc) Current() *models.SeasonDocument { return m.doc }

func (m *memDoc) Update(transform func(*models.SeasonDocument) error) (*models.SeasonDocument, error) {
	if m.fail != nil {
		return m.doc, m.fail
	}
	next := m.doc.Clone()
	if err := transform(next); err != nil {
		return m.doc, err
	}
	m.doc = next
	m.updates++
	return next, nil
}

func newTestGrid(tickets ...models.GrainTicket) (*Grid, *memDoc) {
	doc := &memDoc{doc: &models.SeasonDocument{Year: 2024}}
	doc.doc.AppendTickets(tickets...)

	g := New(doc, nil)
	g.now = func() time.Time { return time.Date(2024, 10, 5, 9, 0, 0, 0, time.UTC) }
	n := 0
	g.newID = func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
	return g, doc
}

func threeTickets() []models.GrainTicket {
	return []models.GrainTicket{
		{ID: "a", Crop: "corn", Farm: "north", Bushels: 300},
		{ID: "b", Crop: "beans", Farm: "South", Bushels: 100},
		{ID: "c", Crop: "corn", Farm: "east", Bushels: 200},
	}
}

var lastCol = len(Columns) - 1

func TestTab(t *testing.T) {
	t.Run("advances and wraps", func(t *testing.T) {
		g, _ := newTestGrid(threeTickets()...)
		g.FocusAt(0, 0)
		assert.Equal(t, &Focus{Row: 0, Col: 1}, g.Tab())

		g.FocusAt(0, lastCol)
		assert.Equal(t, &Focus{Row: 1, Col: 0}, g.Tab())
	})

	t.Run("appends from the last cell of the filtered view", func(t *testing.T) {
		g, doc := newTestGrid(threeTickets()...)
		g.Filter("corn")
		before := len(g.State().Rows)
		require.Equal(t, 2, before)

		g.FocusAt(before-1, lastCol)
		f := g.Tab()

		state := g.State()
		assert.Len(t, state.Rows, before+1)
		assert.Equal(t, &Focus{Row: before, Col: 0}, f)
		assert.Len(t, doc.doc.GrainTickets, 4)

		added := doc.doc.GrainTickets[3]
		assert.Equal(t, "new-1", added.ID)
		assert.Equal(t, "corn", added.Crop)
		assert.Equal(t, "2024-10-05", added.Date)
	})

	t.Run("unfiltered append defaults crop to corn", func(t *testing.T) {
		g, doc := newTestGrid(models.GrainTicket{ID: "b", Crop: "beans"})
		g.FocusAt(0, lastCol)
		g.Tab()
		assert.Equal(t, "corn", doc.doc.GrainTickets[1].Crop)
	})

	t.Run("without focus is a no-op", func(t *testing.T) {
		g, doc := newTestGrid(threeTickets()...)
		assert.Nil(t, g.Tab())
		assert.Zero(t, doc.updates)
	})
}

func TestShiftTab(t *testing.T) {
	g, _ := newTestGrid(threeTickets()...)

	g.FocusAt(1, 3)
	assert.Equal(t, &Focus{Row: 1, Col: 2}, g.ShiftTab())

	g.FocusAt(1, 0)
	assert.Equal(t, &Focus{Row: 0, Col: lastCol}, g.ShiftTab())

	g.FocusAt(0, 0)
	assert.Equal(t, &Focus{Row: 0, Col: 0}, g.ShiftTab())

	assert.Equal(t, &Focus{Row: 0, Col: 0}, g.Press(KeyTab, true))
}

func TestEnter(t *testing.T) {
	g, doc := newTestGrid(threeTickets()...)

	g.FocusAt(0, 5)
	assert.Equal(t, &Focus{Row: 1, Col: 5}, g.Enter())

	g.FocusAt(2, 5)
	assert.Equal(t, &Focus{Row: 3, Col: 5}, g.Press(KeyEnter, false))
	assert.Len(t, doc.doc.GrainTickets, 4)

	assert.Equal(t, &Focus{Row: 3, Col: 5}, g.Press(Key("Escape"), false))
}

func TestEdit(t *testing.T) {
	t.Run("writes through and recomputes dry bushels", func(t *testing.T) {
		g, doc := newTestGrid(models.GrainTicket{ID: "a", Bushels: 1000})
		moisture := 5
		require.Equal(t, models.FieldMoisture, Columns[moisture])

		assert.True(t, g.EditAt(0, moisture, "20"))
		assert.InDelta(t, 946, doc.doc.GrainTickets[0].DryBushels, 1e-9)

		g.FocusAt(0, 3)
		assert.True(t, g.Edit("oops"))
		assert.Zero(t, doc.doc.GrainTickets[0].Bushels)
		assert.Zero(t, doc.doc.GrainTickets[0].DryBushels)
	})

	t.Run("edits the ticket under a sorted row", func(t *testing.T) {
		g, doc := newTestGrid(threeTickets()...)
		require.True(t, g.Sort(models.FieldBushels))

		assert.True(t, g.EditAt(0, 9, "smallest"))
		assert.Equal(t, "smallest", doc.doc.GrainTickets[1].Notes)
	})

	t.Run("out of range edits are ignored", func(t *testing.T) {
		g, doc := newTestGrid(threeTickets()...)
		assert.False(t, g.EditAt(7, 0, "x"))
		assert.False(t, g.EditAt(0, len(Columns), "x"))
		assert.False(t, g.Edit("x"))
		assert.Zero(t, doc.updates)
	})

	t.Run("rejected updates leave focus in place", func(t *testing.T) {
		g, doc := newTestGrid(threeTickets()...)
		doc.fail = errors.New("closed")
		g.FocusAt(2, lastCol)
		assert.False(t, g.EditAt(0, 0, "x"))
		assert.Equal(t, &Focus{Row: 2, Col: lastCol}, g.Tab())
	})
}

func TestSort(t *testing.T) {
	g, _ := newTestGrid(threeTickets()...)

	ids := func() []string {
		var out []string
		for _, r := range g.State().Rows {
			out = append(out, r.ID)
		}
		return out
	}

	require.True(t, g.Sort(models.FieldBushels))
	assert.Equal(t, []string{"b", "c", "a"}, ids())

	require.True(t, g.Sort(models.FieldBushels))
	assert.Equal(t, []string{"a", "c", "b"}, ids())

	require.True(t, g.Sort(models.FieldFarm))
	assert.True(t, g.State().SortAscending)
	assert.Equal(t, []string{"c", "a", "b"}, ids())

	require.True(t, g.Sort(models.FieldDryBushels))
	assert.Equal(t, []string{"b", "c", "a"}, ids())

	assert.False(t, g.Sort(models.TicketField("truck")))

	g.ClearSort()
	assert.Equal(t, []string{"a", "b", "c"}, ids())
}

func TestFocusDegrades(t *testing.T) {
	g, _ := newTestGrid(threeTickets()...)

	assert.Nil(t, g.FocusAt(5, 0))
	assert.Nil(t, g.FocusAt(0, -1))

	g.FocusAt(2, 4)
	g.Filter("beans")
	assert.Nil(t, g.State().Focus)
	assert.Nil(t, g.Enter())

	g.Filter("")
	assert.Equal(t, FilterAll, g.State().Filter)

	g.FocusAt(0, 0)
	g.Blur()
	assert.Nil(t, g.State().Focus)
}

func TestAddRow(t *testing.T) {
	g, _ := newTestGrid(threeTickets()...)
	g.Filter("beans")
	f := g.AddRow()
	assert.Equal(t, &Focus{Row: 1, Col: 0}, f)

	state := g.State()
	require.Len(t, state.Rows, 2)
	assert.Equal(t, "beans", state.Rows[1].Crop)
	assert.InDelta(t, 100, state.TotalDryBushels, 1e-9)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(nil)
	clock := time.Date(2024, 10, 5, 9, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return clock }

	id, g := reg.Open("owner-1", 2024, &memDoc{doc: &models.SeasonDocument{}})
	got, err := reg.Get("owner-1", id)
	require.NoError(t, err)
	assert.Same(t, g, got)

	_, err = reg.Get("owner-2", id)
	assert.ErrorIs(t, err, ErrGridNotFound)

	clock = clock.Add(time.Hour)
	assert.Equal(t, 1, reg.Sweep(30*time.Minute))
	assert.False(t, reg.Close("owner-1", id))
}
