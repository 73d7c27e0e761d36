package faction

import (
	"errors"
	"time"

	"github.com/andrescamacho/homestead-go/internal/domain/game"
)

// KingdomChoresRefreshedEvent is the action type sent when the weekly chores reset
const KingdomChoresRefreshedEvent = "kingdomChores.refreshed"

var ErrNoFaction = errors.New("You are not part of a faction")

// KingdomChoresRefreshed rolls the faction kitchen and pet over to a new week
type KingdomChoresRefreshed struct{}

// Type returns the action tag
func (KingdomChoresRefreshed) Type() string { return KingdomChoresRefreshedEvent }

// RefreshKingdomChores moves kitchen and pet requests to the faction week of
// createdAt. Requests from an older week have their daily deliveries cleared.
// Refreshing twice in the same week changes nothing.
func RefreshKingdomChores(state *game.FarmState, _ KingdomChoresRefreshed, createdAt time.Time) (*game.FarmState, error) {
	next := state.Clone()
	if next.Faction == nil {
		return nil, ErrNoFaction
	}

	week := WeekKey(createdAt)
	f := next.Faction

	if f.Kitchen != nil && f.Kitchen.Week != week {
		f.Kitchen.Week = week
		for i := range f.Kitchen.Requests {
			f.Kitchen.Requests[i].DailyFulfilled = map[int]int{}
		}
	}

	if f.Pet != nil && f.Pet.Week != week {
		f.Pet.Week = week
		for i := range f.Pet.Requests {
			f.Pet.Requests[i].DailyFulfilled = map[int]int{}
		}
	}

	if f.History == nil {
		f.History = map[string]game.FactionHistory{}
	}
	if _, ok := f.History[week]; !ok {
		f.History[week] = game.FactionHistory{CollectivePet: &game.CollectivePet{}}
	}

	return next, nil
}

// ChoresStale reports whether the stored kitchen or pet requests belong to an
// earlier week than now
func ChoresStale(state *game.FarmState, now time.Time) bool {
	if state == nil || state.Faction == nil {
		return false
	}
	week := WeekKey(now)
	f := state.Faction
	if f.Kitchen != nil && f.Kitchen.Week != week {
		return true
	}
	if f.Pet != nil && f.Pet.Week != week {
		return true
	}
	_, ok := f.History[week]
	return !ok
}
