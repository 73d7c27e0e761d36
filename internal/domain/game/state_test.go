package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oil(v float64) *float64 { return &v }

func sampleFarm() *FarmState {
	state := NewFarmState()
	state.Coins = decimal.NewFromInt(100)
	state.Inventory["Potato"] = decimal.NewFromInt(10)
	state.Buildings["Bakery"] = []*Building{{
		ID:  "1",
		Oil: oil(20),
		Crafting: []BuildingProduct{
			{Name: "Carrot Cake", ReadyAt: 1000, Amount: 1, Boost: map[string]float64{"Oil": 13}},
		},
		Cancelled: map[string]CancelledRecord{"Cornbread": {Count: 1, CancelledAt: 5}},
	}}
	state.Faction = &Faction{
		Name:    FactionGoblins,
		Kitchen: &Kitchen{Requests: []ResourceRequest{{Item: "Potato", Amount: 5, DailyFulfilled: map[int]int{1: 2}}}},
		History: map[string]FactionHistory{"2025-01-06": {CollectivePet: &CollectivePet{Sleeping: true}}},
	}
	return state
}

func TestClone_IsDeep(t *testing.T) {
	original := sampleFarm()
	copied := original.Clone()

	copied.Inventory["Potato"] = decimal.NewFromInt(1)
	b := copied.FindBuilding("Bakery", "1")
	require.NotNil(t, b)
	*b.Oil = 0
	b.Crafting[0].ReadyAt = 1
	b.Crafting[0].Boost["Oil"] = 0
	b.Cancelled["Cornbread"] = CancelledRecord{Count: 9}
	copied.Faction.Kitchen.Requests[0].DailyFulfilled[1] = 7
	copied.Faction.History["2025-01-06"].CollectivePet.Sleeping = false
	copied.Bumpkin.Activity["Coins Spent"] = 3

	ob := original.FindBuilding("Bakery", "1")
	assert.True(t, original.Inventory.Amount("Potato").Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 20.0, *ob.Oil)
	assert.Equal(t, int64(1000), ob.Crafting[0].ReadyAt)
	assert.Equal(t, 13.0, ob.Crafting[0].Boost["Oil"])
	assert.Equal(t, 1, ob.Cancelled["Cornbread"].Count)
	assert.Equal(t, 2, original.Faction.Kitchen.Requests[0].DailyFulfilled[1])
	assert.True(t, original.Faction.History["2025-01-06"].CollectivePet.Sleeping)
	assert.NotContains(t, original.Bumpkin.Activity, "Coins Spent")
}

func TestFarmState_JSONRoundTripKeepsQueue(t *testing.T) {
	original := sampleFarm()

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"crafting":[{"name":"Carrot Cake","readyAt":1000,"amount":1,"boost":{"Oil":13}}]`)

	var decoded FarmState
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original.FindBuilding("Bakery", "1").Crafting, decoded.FindBuilding("Bakery", "1").Crafting)
	assert.True(t, decoded.Coins.Equal(decimal.NewFromInt(100)))
}

func TestFindBuilding_Missing(t *testing.T) {
	state := sampleFarm()
	assert.Nil(t, state.FindBuilding("Bakery", "2"))
	assert.Nil(t, state.FindBuilding("Kitchen", "1"))
}

func TestInventory_AmountAndHas(t *testing.T) {
	inv := Inventory{"Egg": decimal.NewFromInt(3)}
	assert.True(t, inv.Amount("Wheat").IsZero())
	assert.True(t, inv.Has("Egg", decimal.NewFromInt(3)))
	assert.False(t, inv.Has("Egg", decimal.NewFromInt(4)))

	inv.Add("Wheat", decimal.NewFromInt(2))
	inv.Sub("Egg", decimal.NewFromInt(1))
	assert.True(t, inv.Amount("Wheat").Equal(decimal.NewFromInt(2)))
	assert.True(t, inv.Amount("Egg").Equal(decimal.NewFromInt(2)))
}

func TestTrackActivity(t *testing.T) {
	activity := TrackActivity(nil, "Coins Spent", decimal.RequireFromString("2.5"))
	activity = TrackActivity(activity, "Coins Spent", decimal.NewFromInt(1))
	assert.Equal(t, 3.5, activity["Coins Spent"])
}

func TestIsWearableActiveAndCollectibleBuilt(t *testing.T) {
	state := NewFarmState()
	state.Bumpkin.Equipped.SecondaryTool = "Sunflower Shield"
	state.Collectibles["Kuebiko"] = []*PlacedItem{{ID: "1"}}

	assert.True(t, IsWearableActive(state, "Sunflower Shield"))
	assert.False(t, IsWearableActive(state, "Goblin Crown"))
	assert.True(t, IsCollectibleBuilt(state, "Kuebiko"))
	assert.False(t, IsCollectibleBuilt(state, "Hungry Caterpillar"))
}

func TestHasVipAccess(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	state := NewFarmState()
	assert.False(t, HasVipAccess(state, now))

	state.VIP = &VIP{ExpiresAt: now.Add(time.Hour).UnixMilli()}
	assert.True(t, HasVipAccess(state, now))

	state.VIP.ExpiresAt = now.Add(-time.Hour).UnixMilli()
	assert.False(t, HasVipAccess(state, now))

	state.Inventory["Bull Run Banner"] = decimal.NewFromInt(1)
	assert.True(t, HasVipAccess(state, now))
	assert.False(t, HasVipAccess(state, now.AddDate(0, 3, 0)))

	state.Inventory["Lifetime Farmer Banner"] = decimal.NewFromInt(1)
	assert.True(t, HasVipAccess(state, now.AddDate(0, 3, 0)))
}
