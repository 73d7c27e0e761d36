package game

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
)

// TrackActivity returns the activity map with amount added to the named counter
func TrackActivity(activity map[string]float64, name string, amount decimal.Decimal) map[string]float64 {
	if activity == nil {
		activity = map[string]float64{}
	}
	activity[name] += amount.InexactFloat64()
	return activity
}

// BumpkinLevel returns the level for the given experience
func BumpkinLevel(experience float64) int {
	return catalog.Default().BumpkinLevel(experience)
}

// IsCollectibleBuilt reports whether at least one of the collectible is placed on the farm
func IsCollectibleBuilt(state *FarmState, name string) bool {
	if state == nil {
		return false
	}
	return len(state.Collectibles[name]) > 0
}

// IsWearableActive reports whether the bumpkin currently wears the item
func IsWearableActive(state *FarmState, name string) bool {
	if state == nil || state.Bumpkin == nil {
		return false
	}
	for _, w := range state.Bumpkin.Equipped.Items() {
		if w == name {
			return true
		}
	}
	return false
}

// HasVipAccess reports whether the farm can use VIP features at now: an
// unexpired VIP subscription, the current season's banner or the lifetime banner.
func HasVipAccess(state *FarmState, now time.Time) bool {
	if state == nil {
		return false
	}
	if state.VIP != nil && state.VIP.ExpiresAt > now.UnixMilli() {
		return true
	}

	c := catalog.Default()
	if banner := c.SeasonalBanner(now); banner != "" && state.Inventory.Amount(banner).IsPositive() {
		return true
	}
	return state.Inventory.Amount(c.LifetimeBanner()).IsPositive()
}
