package farm

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/andrescamacho/homestead-go/internal/domain/crafting"
	"github.com/andrescamacho/homestead-go/internal/domain/faction"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
	"github.com/andrescamacho/homestead-go/internal/domain/seeds"
)

// SaveEvent asks the store to persist the current snapshot
const SaveEvent = "SAVE"

// Action is a tagged game event
type Action interface {
	Type() string
}

// Save persists the session's snapshot
type Save struct{}

// Type returns the action tag
func (Save) Type() string { return SaveEvent }

// Reducer applies one action to a snapshot and returns the next snapshot
type Reducer func(state *game.FarmState, action Action, createdAt time.Time) (*game.FarmState, error)

func reducerFor[A Action](fn func(*game.FarmState, A, time.Time) (*game.FarmState, error)) Reducer {
	return func(state *game.FarmState, action Action, createdAt time.Time) (*game.FarmState, error) {
		typed, ok := action.(A)
		if !ok {
			return nil, fmt.Errorf("invalid action payload for %s: %T", action.Type(), action)
		}
		return fn(state, typed, createdAt)
	}
}

var reducers = map[string]Reducer{
	crafting.RecipeCancelledEvent:       reducerFor(crafting.CancelQueuedRecipe),
	crafting.RecipeCookedEvent:          reducerFor(crafting.CookRecipe),
	seeds.SeedBoughtEvent:               reducerFor(seeds.BuySeed),
	faction.KingdomChoresRefreshedEvent: reducerFor(faction.RefreshKingdomChores),
}

var decoders = map[string]func(json.RawMessage) (Action, error){
	crafting.RecipeCancelledEvent:       decodeAs[crafting.RecipeCancelled],
	crafting.RecipeCookedEvent:          decodeAs[crafting.RecipeCooked],
	seeds.SeedBoughtEvent:               decodeAs[seeds.SeedBought],
	faction.KingdomChoresRefreshedEvent: decodeAs[faction.KingdomChoresRefreshed],
	SaveEvent:                           decodeAs[Save],
}

func decodeAs[A Action](payload json.RawMessage) (Action, error) {
	var action A
	if len(payload) == 0 || string(payload) == "null" {
		return action, nil
	}
	if err := json.Unmarshal(payload, &action); err != nil {
		return nil, err
	}
	return action, nil
}

// DecodeAction builds the action for an event tag from its JSON payload
func DecodeAction(eventType string, payload json.RawMessage) (Action, error) {
	decode, ok := decoders[eventType]
	if !ok {
		return nil, fmt.Errorf("unknown action %q", eventType)
	}
	action, err := decode(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", eventType, err)
	}
	return action, nil
}

// KnownActions lists the action tags the store understands
func KnownActions() []string {
	return slices.Sorted(maps.Keys(decoders))
}
