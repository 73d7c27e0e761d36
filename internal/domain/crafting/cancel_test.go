package crafting

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/domain/game"
)

var now = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func ms(d time.Duration) int64 {
	return now.Add(d).UnixMilli()
}

func farmWithBuilding(name string, building *game.Building) *game.FarmState {
	state := game.NewFarmState()
	state.Buildings[name] = []*game.Building{building}
	return state
}

func cancelAction(building string, item game.BuildingProduct) RecipeCancelled {
	return RecipeCancelled{BuildingName: building, BuildingID: "1", QueueItem: item}
}

func TestCancelQueuedRecipe_BuildingDoesNotExist(t *testing.T) {
	_, err := CancelQueuedRecipe(game.NewFarmState(), cancelAction("Bakery", game.BuildingProduct{
		Name: "Carrot Cake", ReadyAt: 0, Amount: 1,
	}), now)

	require.Error(t, err)
	assert.EqualError(t, err, "Building does not exist")
}

func TestCancelQueuedRecipe_NoQueue(t *testing.T) {
	state := farmWithBuilding("Bakery", &game.Building{ID: "1"})

	_, err := CancelQueuedRecipe(state, cancelAction("Bakery", game.BuildingProduct{
		Name: "Carrot Cake", ReadyAt: 0, Amount: 1,
	}), now)

	assert.EqualError(t, err, "No queue exists")
}

func TestCancelQueuedRecipe_RecipeDoesNotExist(t *testing.T) {
	state := farmWithBuilding("Bakery", &game.Building{
		ID:       "1",
		Crafting: []game.BuildingProduct{{Name: "Carrot Cake", ReadyAt: 0, Amount: 1}},
	})

	_, err := CancelQueuedRecipe(state, cancelAction("Bakery", game.BuildingProduct{
		Name: "Sunflower Cake", ReadyAt: 1000, Amount: 1,
	}), now)

	assert.EqualError(t, err, "Recipe does not exist")
}

func TestCancelQueuedRecipe_MatchesOnNameAndReadyAt(t *testing.T) {
	state := farmWithBuilding("Bakery", &game.Building{
		ID:       "1",
		Crafting: []game.BuildingProduct{{Name: "Carrot Cake", ReadyAt: ms(time.Minute), Amount: 1}},
	})

	_, err := CancelQueuedRecipe(state, cancelAction("Bakery", game.BuildingProduct{
		Name: "Carrot Cake", ReadyAt: ms(2 * time.Minute), Amount: 1,
	}), now)

	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestCancelQueuedRecipe_CurrentlyBeingCooked(t *testing.T) {
	carrotCake := game.BuildingProduct{Name: "Carrot Cake", ReadyAt: ms(time.Minute), Amount: 1}
	state := farmWithBuilding("Bakery", &game.Building{
		ID: "1",
		Crafting: []game.BuildingProduct{
			{Name: "Cornbread", ReadyAt: ms(-time.Second), Amount: 1},
			carrotCake,
		},
	})

	_, err := CancelQueuedRecipe(state, cancelAction("Bakery", carrotCake), now)

	require.Error(t, err)
	var inProgress *RecipeInProgressError
	require.ErrorAs(t, err, &inProgress)
	assert.Equal(t, "Carrot Cake", inProgress.Name)
	assert.EqualError(t, err, fmt.Sprintf("Recipe Carrot Cake with readyAt %d is currently being cooked", carrotCake.ReadyAt))
}

func TestCancelQueuedRecipe_CancelsTheRecipe(t *testing.T) {
	state := farmWithBuilding("Bakery", &game.Building{
		ID: "1",
		Crafting: []game.BuildingProduct{
			{Name: "Honey Cake", ReadyAt: ms(-time.Second), Amount: 1},
			{Name: "Cornbread", ReadyAt: ms(time.Second), Amount: 1},
			{Name: "Carrot Cake", ReadyAt: ms(time.Minute), Amount: 1},
		},
	})

	next, err := CancelQueuedRecipe(state, cancelAction("Bakery", game.BuildingProduct{
		Name: "Carrot Cake", ReadyAt: ms(time.Minute), Amount: 1,
	}), now)

	require.NoError(t, err)
	assert.Equal(t, []game.BuildingProduct{
		{Name: "Honey Cake", ReadyAt: ms(-time.Second), Amount: 1},
		{Name: "Cornbread", ReadyAt: ms(time.Second), Amount: 1},
	}, next.FindBuilding("Bakery", "1").Crafting)

	// input snapshot untouched
	assert.Len(t, state.FindBuilding("Bakery", "1").Crafting, 3)
}

func TestCancelQueuedRecipe_ReturnsOil(t *testing.T) {
	oilConsumed := OilConsumption("Bakery", "Carrot Cake")
	require.Greater(t, oilConsumed, 0.0)

	startingOil := 1000.0
	item := game.BuildingProduct{
		Name:    "Carrot Cake",
		ReadyAt: ms(2 * time.Minute),
		Amount:  1,
		Boost:   map[string]float64{"Oil": oilConsumed},
	}
	state := farmWithBuilding("Bakery", &game.Building{
		ID:  "1",
		Oil: &startingOil,
		Crafting: []game.BuildingProduct{
			{Name: "Sunflower Cake", ReadyAt: ms(time.Minute), Amount: 1},
			item,
		},
	})
	state.VIP = &game.VIP{
		Bundles:   []game.VIPBundle{{Name: "1_MONTH", BoughtAt: now.UnixMilli()}},
		ExpiresAt: now.Add(31 * 24 * time.Hour).UnixMilli(),
	}

	next, err := CancelQueuedRecipe(state, cancelAction("Bakery", item), now)

	require.NoError(t, err)
	assert.Equal(t, startingOil+oilConsumed, *next.FindBuilding("Bakery", "1").Oil)
	assert.Equal(t, startingOil, *state.FindBuilding("Bakery", "1").Oil)
}

func TestCancelQueuedRecipe_RecordsCancellation(t *testing.T) {
	queueItem := game.BuildingProduct{Name: "Carrot Cake", ReadyAt: ms(time.Minute), Amount: 1}
	state := farmWithBuilding("Bakery", &game.Building{
		ID: "1",
		Crafting: []game.BuildingProduct{
			{Name: "Cornbread", ReadyAt: ms(time.Second), Amount: 1},
			queueItem,
		},
	})

	next, err := CancelQueuedRecipe(state, cancelAction("Bakery", queueItem), now)

	require.NoError(t, err)
	assert.Equal(t, map[string]game.CancelledRecord{
		"Carrot Cake": {Count: 1, CancelledAt: now.UnixMilli()},
	}, next.FindBuilding("Bakery", "1").Cancelled)
}

func TestCancelQueuedRecipe_AccumulatesCancellations(t *testing.T) {
	state := farmWithBuilding("Bakery", &game.Building{
		ID: "1",
		Crafting: []game.BuildingProduct{
			{Name: "Cornbread", ReadyAt: ms(time.Second), Amount: 1},
			{Name: "Carrot Cake", ReadyAt: ms(time.Minute), Amount: 1},
			{Name: "Carrot Cake", ReadyAt: ms(2 * time.Minute), Amount: 1},
		},
	})

	first, err := CancelQueuedRecipe(state, cancelAction("Bakery", game.BuildingProduct{
		Name: "Carrot Cake", ReadyAt: ms(time.Minute),
	}), now)
	require.NoError(t, err)

	later := now.Add(5 * time.Second)
	remaining := first.FindBuilding("Bakery", "1").Crafting[1]
	second, err := CancelQueuedRecipe(first, cancelAction("Bakery", remaining), later)
	require.NoError(t, err)

	assert.Equal(t, game.CancelledRecord{Count: 2, CancelledAt: later.UnixMilli()},
		second.FindBuilding("Bakery", "1").Cancelled["Carrot Cake"])
	assert.Len(t, second.FindBuilding("Bakery", "1").Crafting, 1)
}

func TestCancelQueuedRecipe_AdjustsReadyAtTimes(t *testing.T) {
	const potatoTime = time.Minute
	const eggTime = 30 * time.Second

	state := farmWithBuilding("Fire Pit", &game.Building{
		ID: "1",
		Crafting: []game.BuildingProduct{
			{Name: "Mashed Potato", ReadyAt: ms(potatoTime), Amount: 1},
			{Name: "Boiled Eggs", ReadyAt: ms(potatoTime + eggTime), Amount: 1},
			{Name: "Mashed Potato", ReadyAt: ms(potatoTime + eggTime + potatoTime), Amount: 1},
		},
	})

	next, err := CancelQueuedRecipe(state, cancelAction("Fire Pit", game.BuildingProduct{
		Name: "Boiled Eggs", ReadyAt: ms(potatoTime + eggTime), Amount: 1,
	}), now)
	require.NoError(t, err)

	queue := next.FindBuilding("Fire Pit", "1").Crafting
	require.Len(t, queue, 2)
	assert.Equal(t, ms(potatoTime), queue[0].ReadyAt)
	assert.Equal(t, ms(potatoTime+potatoTime), queue[1].ReadyAt)
}

func TestCancelQueuedRecipe_FinishedEntryDoesNotShiftQueue(t *testing.T) {
	state := farmWithBuilding("Fire Pit", &game.Building{
		ID: "1",
		Crafting: []game.BuildingProduct{
			{Name: "Mashed Potato", ReadyAt: ms(-2 * time.Minute), Amount: 1},
			{Name: "Boiled Eggs", ReadyAt: ms(-time.Minute), Amount: 1},
			{Name: "Pumpkin Soup", ReadyAt: ms(time.Minute), Amount: 1},
			{Name: "Mashed Potato", ReadyAt: ms(2 * time.Minute), Amount: 1},
		},
	})

	next, err := CancelQueuedRecipe(state, cancelAction("Fire Pit", game.BuildingProduct{
		Name: "Boiled Eggs", ReadyAt: ms(-time.Minute),
	}), now)
	require.NoError(t, err)

	queue := next.FindBuilding("Fire Pit", "1").Crafting
	assert.Equal(t, []int64{ms(-2 * time.Minute), ms(time.Minute), ms(2 * time.Minute)},
		[]int64{queue[0].ReadyAt, queue[1].ReadyAt, queue[2].ReadyAt})
}

func TestCurrentCookingItem(t *testing.T) {
	building := &game.Building{
		ID: "1",
		Crafting: []game.BuildingProduct{
			{Name: "Cornbread", ReadyAt: ms(-time.Second), Amount: 1},
			{Name: "Carrot Cake", ReadyAt: ms(time.Minute), Amount: 1},
			{Name: "Carrot Cake", ReadyAt: ms(2 * time.Minute), Amount: 1},
		},
	}

	item := CurrentCookingItem(building, now)

	require.NotNil(t, item)
	assert.Equal(t, game.BuildingProduct{Name: "Carrot Cake", ReadyAt: ms(time.Minute), Amount: 1}, *item)
}

func TestCurrentCookingItem_NothingCooking(t *testing.T) {
	building := &game.Building{
		ID:       "1",
		Crafting: []game.BuildingProduct{{Name: "Cornbread", ReadyAt: ms(-time.Second), Amount: 1}},
	}

	assert.Nil(t, CurrentCookingItem(building, now))
	assert.Nil(t, CurrentCookingItem(nil, now))
}
