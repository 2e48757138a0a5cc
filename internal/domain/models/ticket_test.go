package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDryBushels(t *testing.T) {
	t.Run("at or below threshold keeps bushels", func(t *testing.T) {
		for _, moisture := range []float64{0, 11.9, 15.5} {
			assert.Equal(t, 981.0, DryBushels(981, moisture))
		}
	})

	t.Run("above threshold shrinks", func(t *testing.T) {
		cases := []struct{ bushels, moisture float64 }{
			{1000, 20},
			{500.5, 15.6},
			{1, 30},
		}
		for _, tc := range cases {
			want := tc.bushels * (1 - (tc.moisture-15.5)*0.012)
			assert.InDelta(t, want, DryBushels(tc.bushels, tc.moisture), 1e-9)
		}
	})

	t.Run("zero bushels stay zero", func(t *testing.T) {
		assert.Equal(t, 0.0, DryBushels(0, 25))
	})
}

func TestGrainTicketSet(t *testing.T) {
	t.Run("numeric fields coerce and recompute dry", func(t *testing.T) {
		ticket := GrainTicket{Bushels: 1000}
		assert.True(t, ticket.Set(FieldMoisture, "20"))
		assert.InDelta(t, 946.0, ticket.DryBushels, 1e-9)

		assert.True(t, ticket.Set(FieldBushels, "not a number"))
		assert.Equal(t, 0.0, ticket.Bushels)
		assert.Equal(t, 0.0, ticket.DryBushels)
	})

	t.Run("non-finite input becomes zero", func(t *testing.T) {
		for _, raw := range []string{"NaN", "nan", "Inf", "-inf", "+Infinity", "1e999"} {
			ticket := GrainTicket{Bushels: 1000, Moisture: 20}
			assert.True(t, ticket.Set(FieldMoisture, raw), raw)
			assert.Equal(t, 0.0, ticket.Moisture, raw)
			assert.Equal(t, 1000.0, ticket.DryBushels, raw)

			assert.True(t, ticket.Set(FieldBushels, raw), raw)
			assert.Equal(t, 0.0, ticket.Bushels, raw)
			assert.Equal(t, 0.0, ticket.DryBushels, raw)
		}
	})

	t.Run("text edits still recompute dry", func(t *testing.T) {
		ticket := GrainTicket{Bushels: 1000, Moisture: 20}
		assert.True(t, ticket.Set(FieldFarm, "Meyer"))
		assert.Equal(t, "Meyer", ticket.Farm)
		assert.InDelta(t, 946.0, ticket.DryBushels, 1e-9)
	})

	t.Run("derived and unknown fields are rejected", func(t *testing.T) {
		ticket := GrainTicket{Bushels: 10}
		assert.False(t, ticket.Set(FieldDryBushels, "99"))
		assert.False(t, ticket.Set(TicketField("weight"), "99"))
		assert.Equal(t, 0.0, ticket.DryBushels)
	})
}

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"12.5":  12.5,
		" 3 ":   3,
		"":      0,
		"n/a":   0,
		"NaN":   0,
		"Inf":   0,
		"-inf":  0,
		"1e999": 0,
		"-0.25": -0.25,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseNumber(raw), raw)
	}
}

func TestGrainTicketText(t *testing.T) {
	ticket := GrainTicket{Date: "2024-10-05", Bushels: 981, Moisture: 11.9}
	assert.Equal(t, "2024-10-05", ticket.Text(FieldDate))
	assert.Equal(t, "981", ticket.Text(FieldBushels))
	assert.Equal(t, "11.9", ticket.Text(FieldMoisture))
	assert.Equal(t, 981.0, ticket.Number(FieldDryBushels))
}

func TestParseTicketField(t *testing.T) {
	f, ok := ParseTicketField("fm")
	assert.True(t, ok)
	assert.True(t, f.Numeric())

	f, ok = ParseTicketField("destination")
	assert.True(t, ok)
	assert.False(t, f.Numeric())

	_, ok = ParseTicketField("truck")
	assert.False(t, ok)
}
