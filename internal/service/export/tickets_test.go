package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
)

func TestTickets(t *testing.T) {
	tickets := []models.GrainTicket{
		{ID: "t1", Date: "2025-10-01", Crop: "corn", Farm: "North", Bushels: 1000, DryBushels: 1000},
		{ID: "t2", Date: "2025-10-02", Crop: "beans", Farm: "East", Bushels: 200, DryBushels: 200},
		{ID: "t3", Date: "2025-10-03", Crop: "corn", Farm: "East", Bushels: 500, DryBushels: 450},
	}

	var buf bytes.Buffer
	require.NoError(t, Tickets(&buf, tickets, "corn"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(TicketSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "Dry Bushels", rows[0][8])
	assert.Equal(t, "North", rows[1][2])
	assert.Equal(t, "2025-10-03", rows[2][0])
	assert.Equal(t, "Total", rows[3][0])
	assert.Equal(t, "1450", rows[3][8])
}

func TestTicketsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Tickets(&buf, nil, "all"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(TicketSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Total", rows[1][0])
}
