package faction

import (
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
)

// CalculatePoints lowers the reward by two marks for every delivery already
// made today, never below one mark
func CalculatePoints(fulfilled, base int) int {
	points := base - 2*fulfilled
	if points < 1 {
		return 1
	}
	return points
}

// KitchenBoost returns the bonus marks granted by the faction outfit for a
// kitchen delivery, and the wearables that granted them
func KitchenBoost(state *game.FarmState, points int) (float64, []string) {
	return outfitBoost(state, points)
}

// PetBoost returns the bonus marks granted by the faction outfit for feeding
// the faction pet, and the wearables that granted them
func PetBoost(state *game.FarmState, points int) (float64, []string) {
	return outfitBoost(state, points)
}

func outfitBoost(state *game.FarmState, points int) (float64, []string) {
	if state == nil || state.Faction == nil {
		return 0, nil
	}

	var (
		total   float64
		sources []string
	)
	for _, b := range catalog.Default().WearableBoosts(string(state.Faction.Name)) {
		if !game.IsWearableActive(state, b.Wearable) {
			continue
		}
		total += float64(points) * float64(b.Percent) / 100
		sources = append(sources, b.Wearable)
	}
	return total, sources
}
