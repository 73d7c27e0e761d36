package seeds

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
)

// Collectibles, wearables and skills that change seed prices
const (
	HungryCaterpillar = "Hungry Caterpillar"
	Kuebiko           = "Kuebiko"
	SunflowerShield   = "Sunflower Shield"
	SunflowerSeed     = "Sunflower Seed"
	Artist            = "Artist"

	SkillFlowerSale    = "Flower Sale"
	SkillFruityHeaven  = "Fruity Heaven"
	SkillSeedyBusiness = "Seedy Business"
)

var (
	artistDiscount        = decimal.RequireFromString("0.9")
	flowerSaleDiscount    = decimal.RequireFromString("0.8")
	fruityHeavenDiscount  = decimal.RequireFromString("0.9")
	seedyBusinessDiscount = decimal.RequireFromString("0.85")
)

// GetBuyPrice returns the per-unit coin price of a seed for this farm.
// Free-seed rules are checked first; percentage discounts then stack in order.
func GetBuyPrice(name string, seed catalog.Seed, state *game.FarmState) decimal.Decimal {
	c := catalog.Default()

	if c.IsFlowerSeed(name) && game.IsCollectibleBuilt(state, HungryCaterpillar) {
		return decimal.Zero
	}
	if game.IsCollectibleBuilt(state, Kuebiko) {
		return decimal.Zero
	}
	if game.IsWearableActive(state, SunflowerShield) && name == SunflowerSeed {
		return decimal.Zero
	}

	price := seed.Price

	if !price.IsZero() && state.Inventory.Has(Artist, decimal.NewFromInt(1)) {
		price = price.Mul(artistDiscount)
	}
	if c.IsFlowerSeed(name) && hasSkill(state, SkillFlowerSale) {
		price = price.Mul(flowerSaleDiscount)
	}
	if c.IsPatchFruitSeed(name) && hasSkill(state, SkillFruityHeaven) {
		price = price.Mul(fruityHeavenDiscount)
	}
	if c.IsGreenhouseSeed(name) && hasSkill(state, SkillSeedyBusiness) {
		price = price.Mul(seedyBusinessDiscount)
	}

	return price
}

func hasSkill(state *game.FarmState, skill string) bool {
	if state.Bumpkin == nil {
		return false
	}
	return state.Bumpkin.Skills[skill] > 0
}
