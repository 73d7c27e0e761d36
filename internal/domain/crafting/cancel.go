package crafting

import (
	"time"

	"github.com/andrescamacho/homestead-go/internal/domain/game"
)

// RecipeCancelledEvent is the action type for queue cancellation
const RecipeCancelledEvent = "recipe.cancelled"

// RecipeCancelled removes a pending entry from a building's crafting queue.
// The entry is identified by (name, readyAt).
type RecipeCancelled struct {
	BuildingName string               `json:"buildingName"`
	BuildingID   string               `json:"buildingId"`
	QueueItem    game.BuildingProduct `json:"queueItem"`
}

// Type returns the action tag
func (RecipeCancelled) Type() string { return RecipeCancelledEvent }

// CancelQueuedRecipe removes a queued recipe, refunds the oil it burned, records
// the cancellation and pulls every later entry forward by the cancelled entry's
// own wait time. The input state is never modified.
func CancelQueuedRecipe(state *game.FarmState, action RecipeCancelled, createdAt time.Time) (*game.FarmState, error) {
	next := state.Clone()
	now := createdAt.UnixMilli()

	building := next.FindBuilding(action.BuildingName, action.BuildingID)
	if building == nil {
		return nil, ErrBuildingNotFound
	}

	queue := building.Crafting
	if len(queue) == 0 {
		return nil, ErrNoQueue
	}

	target := action.QueueItem
	idx := -1
	for i, item := range queue {
		if item.Matches(target.Name, target.ReadyAt) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrRecipeNotFound
	}

	if current := CurrentCookingItem(building, createdAt); current != nil && current.Matches(target.Name, target.ReadyAt) {
		return nil, &RecipeInProgressError{Name: target.Name, ReadyAt: target.ReadyAt}
	}

	cancelled := queue[idx]
	delta := waitDelta(queue, idx, now)

	remaining := make([]game.BuildingProduct, 0, len(queue)-1)
	remaining = append(remaining, queue[:idx]...)
	for _, item := range queue[idx+1:] {
		item.ReadyAt -= delta
		remaining = append(remaining, item)
	}
	building.Crafting = remaining

	if refund := cancelled.Boost["Oil"]; refund > 0 {
		current := 0.0
		if building.Oil != nil {
			current = *building.Oil
		}
		total := current + refund
		building.Oil = &total
	}

	if building.Cancelled == nil {
		building.Cancelled = map[string]game.CancelledRecord{}
	}
	record := building.Cancelled[cancelled.Name]
	building.Cancelled[cancelled.Name] = game.CancelledRecord{
		Count:       record.Count + 1,
		CancelledAt: now,
	}

	return next, nil
}

// waitDelta is how long the entry at idx waits after the one before it.
// Time already elapsed does not count: the reference point is never earlier than now.
func waitDelta(queue []game.BuildingProduct, idx int, now int64) int64 {
	start := now
	if idx > 0 && queue[idx-1].ReadyAt > start {
		start = queue[idx-1].ReadyAt
	}
	delta := queue[idx].ReadyAt - start
	if delta < 0 {
		return 0
	}
	return delta
}

// CurrentCookingItem returns the entry being cooked at createdAt: the one with
// the earliest readyAt still in the future. Entries whose readyAt has passed are
// finished. Returns nil when nothing is cooking.
func CurrentCookingItem(building *game.Building, createdAt time.Time) *game.BuildingProduct {
	if building == nil {
		return nil
	}
	now := createdAt.UnixMilli()

	var current *game.BuildingProduct
	for i := range building.Crafting {
		item := building.Crafting[i]
		if item.ReadyAt <= now {
			continue
		}
		if current == nil || item.ReadyAt < current.ReadyAt {
			c := item.Clone()
			current = &c
		}
	}
	return current
}
