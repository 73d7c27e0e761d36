package queries

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/application/farm"
	"github.com/andrescamacho/homestead-go/internal/domain/crafting"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
	"github.com/andrescamacho/homestead-go/internal/domain/seeds"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

var now = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newStore(state *game.FarmState) *farm.Store {
	repo := helpers.NewMockFarmRepository()
	repo.Put(1, state)
	return farm.NewStore(repo, shared.NewMockClock(now), nil)
}

func TestGetFarm(t *testing.T) {
	state := game.NewFarmState()
	state.Coins = decimal.NewFromInt(42)
	handler := NewGetFarmHandler(newStore(state))

	resp, err := handler.Handle(context.Background(), &GetFarmQuery{FarmID: 1})

	require.NoError(t, err)
	assert.True(t, resp.(*GetFarmResponse).State.Coins.Equal(decimal.NewFromInt(42)))
}

func TestGetFarm_Unknown(t *testing.T) {
	handler := NewGetFarmHandler(newStore(game.NewFarmState()))

	_, err := handler.Handle(context.Background(), &GetFarmQuery{FarmID: 2})

	assert.ErrorIs(t, err, farm.ErrFarmNotFound)
}

func TestGetCraftingQueue(t *testing.T) {
	oil := 12.5
	state := game.NewFarmState()
	state.Buildings["Bakery"] = []*game.Building{{
		ID:  "1",
		Oil: &oil,
		Crafting: []game.BuildingProduct{
			{Name: "Cornbread", ReadyAt: now.Add(-time.Minute).UnixMilli(), Amount: 1},
			{Name: "Carrot Cake", ReadyAt: now.Add(time.Hour).UnixMilli(), Amount: 1},
		},
	}}
	handler := NewGetCraftingQueueHandler(newStore(state))

	resp, err := handler.Handle(context.Background(), &GetCraftingQueueQuery{FarmID: 1, BuildingName: "Bakery", BuildingID: "1"})

	require.NoError(t, err)
	result := resp.(*GetCraftingQueueResponse)
	assert.Len(t, result.Queue, 2)
	require.NotNil(t, result.Cooking)
	assert.Equal(t, "Carrot Cake", result.Cooking.Name)
	assert.Equal(t, 12.5, result.Oil)
	assert.Equal(t, now, result.At)
}

func TestGetCraftingQueue_MissingBuilding(t *testing.T) {
	handler := NewGetCraftingQueueHandler(newStore(game.NewFarmState()))

	_, err := handler.Handle(context.Background(), &GetCraftingQueueQuery{FarmID: 1, BuildingName: "Bakery", BuildingID: "1"})

	assert.ErrorIs(t, err, crafting.ErrBuildingNotFound)
}

func TestGetSeedPrice(t *testing.T) {
	state := game.NewFarmState()
	state.Stock["Carrot Seed"] = decimal.NewFromInt(80)
	state.Inventory["Artist"] = decimal.NewFromInt(1)
	handler := NewGetSeedPriceHandler(newStore(state))

	resp, err := handler.Handle(context.Background(), &GetSeedPriceQuery{FarmID: 1, Seed: "Carrot Seed", Amount: decimal.NewFromInt(10)})

	require.NoError(t, err)
	result := resp.(*GetSeedPriceResponse)
	assert.True(t, result.BasePrice.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, result.UnitPrice.Equal(decimal.RequireFromString("0.45")), result.UnitPrice.String())
	assert.True(t, result.Total.Equal(decimal.RequireFromString("4.5")), result.Total.String())
	assert.True(t, result.Stock.Equal(decimal.NewFromInt(80)))
}

func TestGetSeedPrice_NotASeed(t *testing.T) {
	handler := NewGetSeedPriceHandler(newStore(game.NewFarmState()))

	_, err := handler.Handle(context.Background(), &GetSeedPriceQuery{FarmID: 1, Seed: "Goblin Key"})

	assert.ErrorIs(t, err, seeds.ErrNotASeed)
}
