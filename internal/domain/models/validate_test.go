package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDocumentIsValid(t *testing.T) {
	doc := DefaultDocument(2025)
	assert.Equal(t, 2025, doc.Year)
	assert.Zero(t, doc.Repair())
	require.NoError(t, doc.Validate())
}

func TestRepairDropsOrphans(t *testing.T) {
	doc := DefaultDocument(2025)
	doc.RentPerCrop["ghost"] = 100
	doc.FertProducts[0].Rates["ghost"] = 10
	doc.HerbPasses[0].Flags["ghost"] = 1
	doc.InsectProducts[0].Flags["ghost"] = 1
	doc.MarketingGroups[0].CropIDs = append(doc.MarketingGroups[0].CropIDs, "ghost")

	require.Error(t, doc.Validate())
	assert.Equal(t, 5, doc.Repair())
	require.NoError(t, doc.Validate())
	_, ok := doc.RentPerCrop["ghost"]
	assert.False(t, ok)
}

func TestValidateRejectsUnknownGroupAndDuplicates(t *testing.T) {
	doc := DefaultDocument(2025)
	doc.OverheadItems = append(doc.OverheadItems, OverheadItem{ID: "o99", Name: "Mystery", Group: "Fees"})
	doc.Crops = append(doc.Crops, doc.Crops[0])

	err := doc.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDocument))
	assert.Contains(t, err.Error(), "unknown group")
	assert.Contains(t, err.Error(), "duplicate crop id c1")
}

func TestCloneIsDeep(t *testing.T) {
	doc := DefaultDocument(2025)
	doc.GrainTickets = append(doc.GrainTickets, GrainTicket{ID: "t1", Bushels: 10})
	doc.Contracts["corn"] = append(doc.Contracts["corn"], Contract{ID: 1, Units: 100})

	cp := doc.Clone()
	cp.Crops[0].Acres = 1
	cp.RentPerCrop["c1"] = 1
	cp.FertProducts[0].Rates["c1"] = 1
	cp.HerbPasses[0].Flags["c1"] = 0
	cp.GrainTickets[0].Bushels = 1
	cp.Contracts["corn"][0].Units = 1
	cp.MarketingGroups[0].CropIDs[0] = "x"

	assert.Equal(t, 491.0, doc.Crops[0].Acres)
	assert.Equal(t, 252.89, doc.RentPerCrop["c1"])
	assert.Equal(t, 35.0, doc.FertProducts[0].Rates["c1"])
	assert.Equal(t, 1.0, doc.HerbPasses[0].Flags["c1"])
	assert.Equal(t, 10.0, doc.GrainTickets[0].Bushels)
	assert.Equal(t, 100.0, doc.Contracts["corn"][0].Units)
	assert.Equal(t, "c1", doc.MarketingGroups[0].CropIDs[0])
}

func TestLifecycle(t *testing.T) {
	t.Run("crop add and remove keeps mappings clean", func(t *testing.T) {
		doc := DefaultDocument(2025)
		crop := doc.AddCrop("", time.UnixMilli(1_700_000_012_345))
		assert.Equal(t, "c12345", crop.ID)
		assert.Equal(t, "New Crop", crop.Name)
		_, ok := doc.RentPerCrop[crop.ID]
		assert.True(t, ok)

		assert.True(t, doc.RemoveCrop("c1"))
		_, ok = doc.RentPerCrop["c1"]
		assert.False(t, ok)
		_, ok = doc.FertProducts[0].Rates["c1"]
		assert.False(t, ok)
		assert.NotContains(t, doc.MarketingGroups[0].CropIDs, "c1")
		assert.False(t, doc.RemoveCrop("c1"))
	})

	t.Run("contract ids are max plus one within the group", func(t *testing.T) {
		doc := DefaultDocument(2025)
		first := doc.AddContract("corn", Contract{Desc: "Harvest"})
		second := doc.AddContract("corn", Contract{Desc: "Spot"})
		other := doc.AddContract("beans", Contract{Desc: "Spot"})
		assert.Equal(t, 1, first.ID)
		assert.Equal(t, 2, second.ID)
		assert.Equal(t, 1, other.ID)

		assert.True(t, doc.RemoveContract("corn", 1))
		assert.Equal(t, 3, doc.NextContractID("corn"))
	})

	t.Run("overhead rejects unknown group", func(t *testing.T) {
		doc := DefaultDocument(2025)
		_, err := doc.AddOverhead(OverheadItem{Name: "Fees", Group: "Fees"})
		require.Error(t, err)

		item, err := doc.AddOverhead(OverheadItem{Name: "Drone", Total: 100, Group: GroupMachinery})
		require.NoError(t, err)
		assert.Equal(t, "o20", item.ID)
	})

	t.Run("wish moves to plan", func(t *testing.T) {
		doc := DefaultDocument(2025)
		doc.WishList = []WishItem{{ID: 1, Item: "Grain cart", EstCost: 60000}}
		item, ok := doc.MoveWishToPlan(1, 2026)
		require.True(t, ok)
		assert.Equal(t, 1, item.ID)
		assert.Equal(t, 2026, item.Year)
		assert.Empty(t, doc.WishList)
	})

	t.Run("copy for year resets season logs", func(t *testing.T) {
		doc := DefaultDocument(2025)
		y := 200.0
		doc.Crops[0].ActualYield = &y
		doc.AppendTickets(GrainTicket{ID: "t1", Bushels: 10})
		doc.AddContract("corn", Contract{Units: 5})

		next := doc.CopyForYear(2026)
		assert.Equal(t, 2026, next.Year)
		assert.Nil(t, next.Crops[0].ActualYield)
		assert.Empty(t, next.GrainTickets)
		assert.Empty(t, next.Contracts["corn"])
		assert.Len(t, next.Contracts, 3)
		assert.Len(t, doc.GrainTickets, 1)
	})
}
