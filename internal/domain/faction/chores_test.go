package faction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/domain/game"
)

// Wednesday of the week starting 2024-12-30
var now = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func factionFarm(week string) *game.FarmState {
	state := game.NewFarmState()
	state.Faction = &game.Faction{
		Name: game.FactionSunflorians,
		Kitchen: &game.Kitchen{
			Week: week,
			Requests: []game.ResourceRequest{
				{Item: "Potato", Amount: 10, DailyFulfilled: map[int]int{3: 2}},
				{Item: "Egg", Amount: 5, DailyFulfilled: map[int]int{}},
			},
		},
		Pet: &game.Pet{
			Week: week,
			Requests: []game.PetRequest{
				{Food: "Mashed Potato", Quantity: 1, DailyFulfilled: map[int]int{}},
				{Food: "Pumpkin Soup", Quantity: 2, DailyFulfilled: map[int]int{3: 1}},
				{Food: "Carrot Cake", Quantity: 3, DailyFulfilled: map[int]int{}},
			},
		},
		History: map[string]game.FactionHistory{
			week: {CollectivePet: &game.CollectivePet{GoalReached: true}},
		},
	}
	return state
}

func TestRefreshKingdomChores_RequiresFaction(t *testing.T) {
	_, err := RefreshKingdomChores(game.NewFarmState(), KingdomChoresRefreshed{}, now)

	assert.EqualError(t, err, "You are not part of a faction")
}

func TestRefreshKingdomChores_RollsToNewWeek(t *testing.T) {
	state := factionFarm("2024-12-23")
	require.True(t, ChoresStale(state, now))

	next, err := RefreshKingdomChores(state, KingdomChoresRefreshed{}, now)

	require.NoError(t, err)
	assert.Equal(t, "2024-12-30", next.Faction.Kitchen.Week)
	assert.Equal(t, "2024-12-30", next.Faction.Pet.Week)
	assert.Empty(t, next.Faction.Kitchen.Requests[0].DailyFulfilled)
	assert.Empty(t, next.Faction.Pet.Requests[1].DailyFulfilled)
	assert.Contains(t, next.Faction.History, "2024-12-30")
	assert.False(t, ChoresStale(next, now))

	// input snapshot untouched
	assert.Equal(t, "2024-12-23", state.Faction.Kitchen.Week)
	assert.Equal(t, 2, state.Faction.Kitchen.Requests[0].DailyFulfilled[3])
}

func TestRefreshKingdomChores_SameWeekIsNoOp(t *testing.T) {
	state := factionFarm("2024-12-30")
	require.False(t, ChoresStale(state, now))

	next, err := RefreshKingdomChores(state, KingdomChoresRefreshed{}, now)

	require.NoError(t, err)
	assert.Equal(t, state, next)
}

func TestKitchenRequests(t *testing.T) {
	state := factionFarm("2024-12-30")
	state.Inventory["Potato"] = decimal.NewFromInt(12)
	state.Inventory["Egg"] = decimal.NewFromInt(1)
	state.Bumpkin.Equipped.Hat = "Sunflorian Crown"

	view := KitchenRequests(state, now)

	assert.Equal(t, "chef lumen", view.Chef)
	require.Len(t, view.Requests, 2)

	potato := view.Requests[0]
	assert.True(t, potato.RequirementMet)
	assert.Equal(t, 16, potato.Points)
	assert.InDelta(t, 17.6, potato.BoostedMarks, 1e-9)
	assert.Equal(t, []string{"Sunflorian Crown"}, potato.BoostSources)

	egg := view.Requests[1]
	assert.False(t, egg.RequirementMet)
	assert.True(t, egg.Balance.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, 20, egg.Points)
}

func TestPetRequests(t *testing.T) {
	state := factionFarm("2024-12-30")

	view := PetRequests(state, now)

	assert.Equal(t, PetHappy, view.State)
	require.Len(t, view.Requests, 3)
	assert.Equal(t, 5, view.Requests[0].Points)
	assert.Equal(t, 8, view.Requests[1].Points)
	assert.Equal(t, 20, view.Requests[2].Points)
	assert.False(t, view.Timer.ShouldReset())
}

func TestPetRequests_WithoutFaction(t *testing.T) {
	view := PetRequests(game.NewFarmState(), now)

	assert.Equal(t, PetHungry, view.State)
	assert.Empty(t, view.Requests)
}
