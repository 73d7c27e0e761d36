package crafting

import (
	"maps"
	"slices"
	"time"

	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
)

const (
	// RecipeCookedEvent is the action type for starting or queueing a recipe
	RecipeCookedEvent = "recipe.cooked"

	// MaxQueueSize caps the number of pending entries per building
	MaxQueueSize = 4

	// oilSpeedBoost is the share of cooking time saved when the building burns oil
	oilSpeedBoost = 0.2
)

// RecipeCooked starts a recipe, or queues it behind the pending ones
type RecipeCooked struct {
	BuildingName string `json:"buildingName"`
	BuildingID   string `json:"buildingId"`
	Item         string `json:"item"`
}

// Type returns the action tag
func (RecipeCooked) Type() string { return RecipeCookedEvent }

// OilConsumption returns the oil the building burns for one batch of the recipe
func OilConsumption(building, recipe string) float64 {
	return catalog.Default().OilConsumption(building, recipe)
}

// CookRecipe deducts ingredients and appends the recipe to the building's queue.
// Queueing behind a pending recipe is a VIP feature.
func CookRecipe(state *game.FarmState, action RecipeCooked, createdAt time.Time) (*game.FarmState, error) {
	next := state.Clone()
	now := createdAt.UnixMilli()

	building := next.FindBuilding(action.BuildingName, action.BuildingID)
	if building == nil {
		return nil, ErrBuildingNotFound
	}

	recipe, ok := catalog.Default().Cookable(action.Item)
	if !ok {
		return nil, ErrInvalidFood
	}
	if recipe.Building != action.BuildingName {
		return nil, ErrWrongBuilding
	}

	pending := pendingEntries(building.Crafting, now)
	if len(pending) > 0 && !game.HasVipAccess(next, createdAt) {
		return nil, ErrVIPRequired
	}
	if len(pending) >= MaxQueueSize {
		return nil, ErrQueueFull
	}

	ingredients := slices.Sorted(maps.Keys(recipe.Ingredients))
	for _, ingredient := range ingredients {
		if !next.Inventory.Has(ingredient, recipe.Ingredients[ingredient]) {
			return nil, &MissingIngredientError{Ingredient: ingredient}
		}
	}
	for _, ingredient := range ingredients {
		next.Inventory.Sub(ingredient, recipe.Ingredients[ingredient])
	}

	cookingTime := recipe.CookingTime()
	var boost map[string]float64
	if need := OilConsumption(action.BuildingName, action.Item); need > 0 && building.Oil != nil && *building.Oil >= need {
		remaining := *building.Oil - need
		building.Oil = &remaining
		boost = map[string]float64{"Oil": need}
		cookingTime = time.Duration(float64(cookingTime) * (1 - oilSpeedBoost))
	}

	start := now
	if len(pending) > 0 {
		start = pending[len(pending)-1].ReadyAt
	}

	building.Crafting = append(building.Crafting, game.BuildingProduct{
		Name:    action.Item,
		ReadyAt: start + cookingTime.Milliseconds(),
		Amount:  1,
		Boost:   boost,
	})

	return next, nil
}

func pendingEntries(queue []game.BuildingProduct, now int64) []game.BuildingProduct {
	var pending []game.BuildingProduct
	for _, item := range queue {
		if item.ReadyAt > now {
			pending = append(pending, item)
		}
	}
	return pending
}
