package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/application/farm"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
	"github.com/andrescamacho/homestead-go/internal/domain/seeds"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

type farmSessionContext struct {
	repos *helpers.TestRepositories
	store *farm.Store
	err   error
}

func (fc *farmSessionContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	clock := shared.NewMockClock(purchasedAt)
	fc.repos = helpers.NewTestRepositories(helpers.SharedTestDB, clock)
	fc.store = farm.NewStore(fc.repos.Farms, clock, nil)
	fc.err = nil
	return nil
}

func (fc *farmSessionContext) send(farmID int, action farm.Action) error {
	id, err := shared.NewFarmID(farmID)
	if err != nil {
		return err
	}
	session, err := fc.store.Session(context.Background(), id)
	if err != nil {
		fc.err = err
		return nil
	}
	_, fc.err = session.Send(context.Background(), action)
	return nil
}

func (fc *farmSessionContext) stored(farmID int) (*game.FarmState, error) {
	return fc.repos.Farms.Load(context.Background(), shared.MustNewFarmID(farmID))
}

// Given steps

func (fc *farmSessionContext) aStoredFarm(farmID int, coins string, experience float64, stock, item string) error {
	state := game.NewFarmState()
	state.Coins = decimal.RequireFromString(coins)
	state.Bumpkin.Experience = experience
	state.Stock[item] = decimal.RequireFromString(stock)
	return fc.repos.Farms.Save(context.Background(), shared.MustNewFarmID(farmID), state)
}

// When steps

func (fc *farmSessionContext) farmBuys(farmID int, amount, item string) error {
	return fc.send(farmID, seeds.SeedBought{Item: item, Amount: decimal.RequireFromString(amount)})
}

func (fc *farmSessionContext) farmIsSaved(farmID int) error {
	if err := fc.send(farmID, farm.Save{}); err != nil {
		return err
	}
	if fc.err != nil {
		return fmt.Errorf("save failed: %w", fc.err)
	}
	return nil
}

// Then steps

func (fc *farmSessionContext) theActionShouldBeApplied() error {
	if fc.err != nil {
		return fmt.Errorf("expected action to be applied, but got error: %v", fc.err)
	}
	return nil
}

func (fc *farmSessionContext) theActionShouldBeRejectedWith(expected string) error {
	if fc.err == nil {
		return fmt.Errorf("expected action to be rejected with '%s', but it was applied", expected)
	}
	if fc.err.Error() != expected {
		return fmt.Errorf("expected error '%s', got '%s'", expected, fc.err.Error())
	}
	return nil
}

func (fc *farmSessionContext) theStoredFarmShouldHaveCoins(farmID int, expected string) error {
	state, err := fc.stored(farmID)
	if err != nil {
		return err
	}
	if want := decimal.RequireFromString(expected); !state.Coins.Equal(want) {
		return fmt.Errorf("expected stored farm %d to have %s coins, got %s", farmID, want, state.Coins)
	}
	return nil
}

func (fc *farmSessionContext) theStoredFarmShouldOwn(farmID int, expected, item string) error {
	state, err := fc.stored(farmID)
	if err != nil {
		return err
	}
	want := decimal.RequireFromString(expected)
	if got := state.Inventory.Amount(item); !got.Equal(want) {
		return fmt.Errorf("expected stored farm %d to own %s %s, got %s", farmID, want, item, got)
	}
	return nil
}

func InitializeFarmSessionScenario(ctx *godog.ScenarioContext) {
	fc := &farmSessionContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, fc.reset()
	})

	// Given steps
	ctx.Step(`^a stored farm (\d+) with ([0-9.]+) coins, ([0-9.]+) experience and ([0-9.]+) "([^"]*)" in stock$`, fc.aStoredFarm)

	// When steps
	ctx.Step(`^farm (\d+) buys ([0-9.]+) "([^"]*)"$`, fc.farmBuys)
	ctx.Step(`^farm (\d+) is saved$`, fc.farmIsSaved)

	// Then steps
	ctx.Step(`^the action should be applied$`, fc.theActionShouldBeApplied)
	ctx.Step(`^the action should be rejected with "([^"]*)"$`, fc.theActionShouldBeRejectedWith)
	ctx.Step(`^the stored farm (\d+) should have ([0-9.]+) coins$`, fc.theStoredFarmShouldHaveCoins)
	ctx.Step(`^the stored farm (\d+) should own ([0-9.]+) "([^"]*)"$`, fc.theStoredFarmShouldOwn)
}
