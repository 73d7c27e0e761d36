package farm_test

import (
	"context"
	"encoding/json"
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

type recorder struct {
	calls map[string][]bool
}

func (r *recorder) RecordAction(action string, success bool) {
	if r.calls == nil {
		r.calls = map[string][]bool{}
	}
	r.calls[action] = append(r.calls[action], success)
}

func bakeryFarm() *game.FarmState {
	state := game.NewFarmState()
	state.Coins = decimal.NewFromInt(10)
	state.Stock["Carrot Seed"] = decimal.NewFromInt(50)
	state.Bumpkin.Experience = 100
	state.Buildings["Bakery"] = []*game.Building{{
		ID: "1",
		Crafting: []game.BuildingProduct{
			{Name: "Cornbread", ReadyAt: now.Add(time.Minute).UnixMilli(), Amount: 1},
			{Name: "Carrot Cake", ReadyAt: now.Add(2 * time.Minute).UnixMilli(), Amount: 1},
		},
	}}
	return state
}

func newStore(t *testing.T) (*farm.Store, *helpers.MockFarmRepository, *recorder) {
	t.Helper()
	repo := helpers.NewMockFarmRepository()
	repo.Put(1, bakeryFarm())
	rec := &recorder{}
	return farm.NewStore(repo, shared.NewMockClock(now), rec), repo, rec
}

func TestSession_AppliesAction(t *testing.T) {
	store, _, rec := newStore(t)
	session, err := store.Session(context.Background(), shared.MustNewFarmID(1))
	require.NoError(t, err)

	state, err := session.Send(context.Background(), crafting.RecipeCancelled{
		BuildingName: "Bakery",
		BuildingID:   "1",
		QueueItem:    game.BuildingProduct{Name: "Carrot Cake", ReadyAt: now.Add(2 * time.Minute).UnixMilli()},
	})

	require.NoError(t, err)
	assert.Len(t, state.FindBuilding("Bakery", "1").Crafting, 1)
	assert.Len(t, session.State().FindBuilding("Bakery", "1").Crafting, 1)
	assert.Equal(t, []bool{true}, rec.calls[crafting.RecipeCancelledEvent])
}

func TestSession_RejectedActionLeavesSnapshot(t *testing.T) {
	store, _, rec := newStore(t)
	session, err := store.Session(context.Background(), shared.MustNewFarmID(1))
	require.NoError(t, err)
	before := session.State()

	_, err = session.Send(context.Background(), crafting.RecipeCancelled{
		BuildingName: "Bakery",
		BuildingID:   "1",
		QueueItem:    game.BuildingProduct{Name: "Cornbread", ReadyAt: now.Add(time.Minute).UnixMilli()},
	})

	require.Error(t, err)
	var eventErr *shared.GameEventError
	require.ErrorAs(t, err, &eventErr)
	assert.Equal(t, crafting.RecipeCancelledEvent, eventErr.Event)
	assert.EqualError(t, err, "Recipe Cornbread with readyAt 1735689660000 is currently being cooked")
	assert.Equal(t, before, session.State())
	assert.Equal(t, []bool{false}, rec.calls[crafting.RecipeCancelledEvent])
}

func TestSession_SavePersistsSnapshot(t *testing.T) {
	store, repo, _ := newStore(t)
	ctx := context.Background()
	session, err := store.Session(ctx, shared.MustNewFarmID(1))
	require.NoError(t, err)

	_, err = session.Send(ctx, seeds.SeedBought{Item: "Carrot Seed", Amount: decimal.NewFromInt(4)})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.SaveCount())

	_, err = session.Send(ctx, farm.Save{})

	require.NoError(t, err)
	assert.Equal(t, 1, repo.SaveCount())
	saved := repo.Get(1)
	assert.True(t, saved.Coins.Equal(decimal.NewFromInt(8)))
	assert.True(t, saved.Inventory.Amount("Carrot Seed").Equal(decimal.NewFromInt(4)))
}

func TestSession_SaveFailure(t *testing.T) {
	store, repo, rec := newStore(t)
	repo.SetSaveError("disk full")
	session, err := store.Session(context.Background(), shared.MustNewFarmID(1))
	require.NoError(t, err)

	_, err = session.Send(context.Background(), farm.Save{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, []bool{false}, rec.calls[farm.SaveEvent])
}

func TestStore_SessionIsCached(t *testing.T) {
	store, repo, _ := newStore(t)
	ctx := context.Background()

	first, err := store.Session(ctx, shared.MustNewFarmID(1))
	require.NoError(t, err)
	repo.Put(1, game.NewFarmState())
	second, err := store.Session(ctx, shared.MustNewFarmID(1))
	require.NoError(t, err)
	assert.Same(t, first, second)

	store.Evict(shared.MustNewFarmID(1))
	third, err := store.Session(ctx, shared.MustNewFarmID(1))
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Empty(t, third.State().Buildings)
}

func TestStore_UnknownFarm(t *testing.T) {
	store, _, _ := newStore(t)

	_, err := store.Session(context.Background(), shared.MustNewFarmID(7))

	assert.ErrorIs(t, err, farm.ErrFarmNotFound)
}

func TestDecodeAction(t *testing.T) {
	action, err := farm.DecodeAction("recipe.cancelled", json.RawMessage(`{
		"buildingName": "Bakery",
		"buildingId": "1",
		"queueItem": {"name": "Carrot Cake", "readyAt": 1735689720000, "amount": 1}
	}`))
	require.NoError(t, err)
	assert.Equal(t, crafting.RecipeCancelled{
		BuildingName: "Bakery",
		BuildingID:   "1",
		QueueItem:    game.BuildingProduct{Name: "Carrot Cake", ReadyAt: 1735689720000, Amount: 1},
	}, action)

	action, err = farm.DecodeAction("seed.bought", json.RawMessage(`{"item": "Carrot Seed", "amount": 3}`))
	require.NoError(t, err)
	bought, ok := action.(seeds.SeedBought)
	require.True(t, ok)
	assert.True(t, bought.Amount.Equal(decimal.NewFromInt(3)))

	action, err = farm.DecodeAction("SAVE", nil)
	require.NoError(t, err)
	assert.Equal(t, farm.Save{}, action)
}

func TestDecodeAction_Errors(t *testing.T) {
	_, err := farm.DecodeAction("chicken.fed", nil)
	assert.EqualError(t, err, `unknown action "chicken.fed"`)

	_, err = farm.DecodeAction("seed.bought", json.RawMessage(`{"item": 5}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid seed.bought payload")
}

func TestKnownActions(t *testing.T) {
	assert.Equal(t, []string{
		"SAVE",
		"kingdomChores.refreshed",
		"recipe.cancelled",
		"recipe.cooked",
		"seed.bought",
	}, farm.KnownActions())
}

func TestStore_ListenersSeeAppliedActions(t *testing.T) {
	store, _, _ := newStore(t)
	var events []string
	store.AddListener(func(farmID shared.FarmID, event string, state *game.FarmState) {
		assert.Equal(t, 1, farmID.Value())
		events = append(events, event)
		state.Coins = decimal.NewFromInt(-1)
	})
	session, err := store.Session(context.Background(), shared.MustNewFarmID(1))
	require.NoError(t, err)

	_, err = session.Send(context.Background(), seeds.SeedBought{Item: "Carrot Seed", Amount: decimal.NewFromInt(1)})
	require.NoError(t, err)
	_, err = session.Send(context.Background(), seeds.SeedBought{Item: "Carrot Seed", Amount: decimal.NewFromInt(0)})
	require.Error(t, err)
	_, err = session.Send(context.Background(), farm.Save{})
	require.NoError(t, err)

	assert.Equal(t, []string{seeds.SeedBoughtEvent}, events)
	// listeners receive copies
	assert.True(t, session.State().Coins.Equal(decimal.RequireFromString("9.5")))
}
