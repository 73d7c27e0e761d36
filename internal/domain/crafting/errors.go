package crafting

import (
	"errors"
	"fmt"
)

// Messages are part of the game's contract with clients and must not change.
var (
	ErrBuildingNotFound = errors.New("Building does not exist")
	ErrNoQueue          = errors.New("No queue exists")
	ErrRecipeNotFound   = errors.New("Recipe does not exist")
	ErrInvalidFood      = errors.New("Invalid food")
	ErrWrongBuilding    = errors.New("Recipe cannot be cooked in this building")
	ErrVIPRequired      = errors.New("VIP access is required to queue recipes")
	ErrQueueFull        = errors.New("Queue is full")
)

// RecipeInProgressError is returned when trying to cancel the item currently cooking
type RecipeInProgressError struct {
	Name    string
	ReadyAt int64
}

func (e *RecipeInProgressError) Error() string {
	return fmt.Sprintf("Recipe %s with readyAt %d is currently being cooked", e.Name, e.ReadyAt)
}

// MissingIngredientError is returned when the inventory lacks a recipe ingredient
type MissingIngredientError struct {
	Ingredient string
}

func (e *MissingIngredientError) Error() string {
	return fmt.Sprintf("Insufficient ingredient: %s", e.Ingredient)
}
