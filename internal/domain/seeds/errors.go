package seeds

import "errors"

var (
	ErrNotASeed            = errors.New("This item is not a seed")
	ErrBumpkinNotFound     = errors.New("Bumpkin not found")
	ErrInadequateLevel     = errors.New("Inadequate level")
	ErrInvalidAmount       = errors.New("Invalid amount")
	ErrNotEnoughStock      = errors.New("Not enough stock")
	ErrMissingPlantingSpot = errors.New("You do not have the planting spot needed to plant this seed")
	ErrInsufficientTokens  = errors.New("Insufficient tokens")
)
