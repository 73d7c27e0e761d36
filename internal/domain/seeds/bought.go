package seeds

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
)

// SeedBoughtEvent is the action type for buying seeds from the shop
const SeedBoughtEvent = "seed.bought"

// SeedBought buys an amount of a seed with coins
type SeedBought struct {
	Item   string          `json:"item"`
	Amount decimal.Decimal `json:"amount"`
}

// Type returns the action tag
func (SeedBought) Type() string { return SeedBoughtEvent }

// BuySeed validates the purchase and moves seeds from the shop stock into the
// inventory. Every check runs before any field of the copy is touched.
func BuySeed(state *game.FarmState, action SeedBought, createdAt time.Time) (*game.FarmState, error) {
	seed, ok := catalog.Default().Seed(action.Item)
	if !ok {
		return nil, ErrNotASeed
	}

	next := state.Clone()
	bumpkin := next.Bumpkin
	if bumpkin == nil {
		return nil, ErrBumpkinNotFound
	}

	if game.BumpkinLevel(bumpkin.Experience) < seed.BumpkinLevel {
		return nil, ErrInadequateLevel
	}

	amount := action.Amount
	if amount.LessThan(decimal.NewFromInt(1)) {
		return nil, ErrInvalidAmount
	}

	if next.Stock.Amount(action.Item).LessThan(amount) {
		return nil, ErrNotEnoughStock
	}

	if seed.PlantingSpot != "" && !next.Inventory.Has(seed.PlantingSpot, decimal.NewFromInt(1)) {
		return nil, ErrMissingPlantingSpot
	}

	total := GetBuyPrice(action.Item, seed, next).Mul(amount)
	if total.IsPositive() && next.Coins.LessThan(total) {
		return nil, ErrInsufficientTokens
	}

	bumpkin.Activity = game.TrackActivity(bumpkin.Activity, "Coins Spent", total)
	bumpkin.Activity = game.TrackActivity(bumpkin.Activity, action.Item+" Bought", amount)

	next.Coins = next.Coins.Sub(total)
	next.Inventory.Add(action.Item, amount)
	next.Stock.Sub(action.Item, amount)

	return next, nil
}
