package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/game"
	"github.com/andrescamacho/homestead-go/internal/domain/seeds"
)

// purchases are not time dependent
var purchasedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type buySeedContext struct {
	state  *game.FarmState
	result *game.FarmState
	err    error
}

func (bc *buySeedContext) reset() {
	bc.state = game.NewFarmState()
	bc.result = nil
	bc.err = nil
}

func (bc *buySeedContext) current() *game.FarmState {
	if bc.result != nil {
		return bc.result
	}
	return bc.state
}

// Given steps

func (bc *buySeedContext) aFarmWithCoinsAndExperience(coins string, experience float64) error {
	amount, err := decimal.NewFromString(coins)
	if err != nil {
		return err
	}
	bc.state.Coins = amount
	bc.state.Bumpkin.Experience = experience
	return nil
}

func (bc *buySeedContext) theShopStocks(amount, item string) error {
	qty, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	bc.state.Stock[item] = qty
	return nil
}

// When steps

func (bc *buySeedContext) iBuy(amount, item string) error {
	qty, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	bc.result, bc.err = seeds.BuySeed(bc.state, seeds.SeedBought{Item: item, Amount: qty}, purchasedAt)
	return nil
}

// Then steps

func (bc *buySeedContext) thePurchaseShouldSucceed() error {
	if bc.err != nil {
		return fmt.Errorf("expected purchase to succeed, but got error: %v", bc.err)
	}
	return nil
}

func (bc *buySeedContext) thePurchaseShouldFailWith(expected string) error {
	if bc.err == nil {
		return fmt.Errorf("expected purchase to fail with '%s', but it succeeded", expected)
	}
	if bc.err.Error() != expected {
		return fmt.Errorf("expected error '%s', got '%s'", expected, bc.err.Error())
	}
	return nil
}

func (bc *buySeedContext) theFarmShouldHaveCoins(expected string) error {
	want := decimal.RequireFromString(expected)
	if got := bc.current().Coins; !got.Equal(want) {
		return fmt.Errorf("expected %s coins, got %s", want, got)
	}
	return nil
}

func (bc *buySeedContext) theFarmShouldOwn(expected, item string) error {
	want := decimal.RequireFromString(expected)
	if got := bc.current().Inventory.Amount(item); !got.Equal(want) {
		return fmt.Errorf("expected %s %s in inventory, got %s", want, item, got)
	}
	return nil
}

func (bc *buySeedContext) theShopShouldHaveLeft(expected, item string) error {
	want := decimal.RequireFromString(expected)
	if got := bc.current().Stock.Amount(item); !got.Equal(want) {
		return fmt.Errorf("expected %s %s in stock, got %s", want, item, got)
	}
	return nil
}

func (bc *buySeedContext) theBumpkinShouldHaveSpentCoins(expected float64) error {
	if got := bc.current().Bumpkin.Activity["Coins Spent"]; got != expected {
		return fmt.Errorf("expected %.2f coins spent, got %.2f", expected, got)
	}
	return nil
}

func InitializeBuySeedScenario(ctx *godog.ScenarioContext) {
	bc := &buySeedContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		bc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a farm with ([0-9.]+) coins and ([0-9.]+) experience$`, bc.aFarmWithCoinsAndExperience)
	ctx.Step(`^the shop stocks ([0-9.]+) "([^"]*)"$`, bc.theShopStocks)

	// When steps
	ctx.Step(`^I buy ([0-9.]+) "([^"]*)"$`, bc.iBuy)

	// Then steps
	ctx.Step(`^the purchase should succeed$`, bc.thePurchaseShouldSucceed)
	ctx.Step(`^the purchase should fail with "([^"]*)"$`, bc.thePurchaseShouldFailWith)
	ctx.Step(`^the farm should have ([0-9.]+) coins$`, bc.theFarmShouldHaveCoins)
	ctx.Step(`^the farm should own ([0-9.]+) "([^"]*)"$`, bc.theFarmShouldOwn)
	ctx.Step(`^the shop should have ([0-9.]+) "([^"]*)" left$`, bc.theShopShouldHaveLeft)
	ctx.Step(`^the bumpkin should have spent ([0-9.]+) coins$`, bc.theBumpkinShouldHaveSpentCoins)
}
