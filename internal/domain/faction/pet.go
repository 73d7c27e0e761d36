package faction

import "github.com/andrescamacho/homestead-go/internal/domain/game"

// PetState is the mood of the collective faction pet
type PetState string

const (
	PetSleeping PetState = "sleeping"
	PetHappy    PetState = "happy"
	PetHungry   PetState = "hungry"
)

// PetStateOf derives the pet's mood. A week without a pet record is hungry.
func PetStateOf(pet *game.CollectivePet) PetState {
	switch {
	case pet == nil:
		return PetHungry
	case pet.Sleeping:
		return PetSleeping
	case pet.GoalReached:
		return PetHappy
	default:
		return PetHungry
	}
}
