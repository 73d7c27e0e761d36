package faction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/homestead-go/internal/domain/game"
)

func TestCalculatePoints(t *testing.T) {
	assert.Equal(t, 20, CalculatePoints(0, 20))
	assert.Equal(t, 14, CalculatePoints(3, 20))
	assert.Equal(t, 1, CalculatePoints(10, 20))
	assert.Equal(t, 1, CalculatePoints(50, 20))
	assert.Equal(t, 1, CalculatePoints(3, 5))
}

func TestKitchenBoost(t *testing.T) {
	state := game.NewFarmState()
	state.Faction = &game.Faction{Name: game.FactionGoblins}
	state.Bumpkin.Equipped.Hat = "Goblin Crown"
	state.Bumpkin.Equipped.Pants = "Goblin Pants"
	state.Bumpkin.Equipped.Tool = "Bumpkin Sword"

	boost, sources := KitchenBoost(state, 20)

	assert.Equal(t, 3.0, boost)
	assert.ElementsMatch(t, []string{"Goblin Crown", "Goblin Pants"}, sources)
}

func TestPetBoost_NoFaction(t *testing.T) {
	state := game.NewFarmState()
	state.Bumpkin.Equipped.Hat = "Goblin Crown"

	boost, sources := PetBoost(state, 10)

	assert.Zero(t, boost)
	assert.Empty(t, sources)
}

func TestPetStateOf(t *testing.T) {
	assert.Equal(t, PetHungry, PetStateOf(nil))
	assert.Equal(t, PetHungry, PetStateOf(&game.CollectivePet{}))
	assert.Equal(t, PetHappy, PetStateOf(&game.CollectivePet{GoalReached: true}))
	assert.Equal(t, PetSleeping, PetStateOf(&game.CollectivePet{Sleeping: true, GoalReached: true}))
}
