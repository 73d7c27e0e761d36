package faction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
)

// RequestRow is one kitchen or pet request as shown to the player
type RequestRow struct {
	Item           string          `json:"item"`
	Amount         int             `json:"amount"`
	Balance        decimal.Decimal `json:"balance"`
	RequirementMet bool            `json:"requirementMet"`
	Points         int             `json:"points"`
	Boost          float64         `json:"boost"`
	BoostedMarks   float64         `json:"boostedMarks"`
	BoostSources   []string        `json:"boostSources,omitempty"`
}

// KitchenView is the faction kitchen panel
type KitchenView struct {
	Chef     string       `json:"chef,omitempty"`
	Requests []RequestRow `json:"requests"`
	Timer    ResetTimer   `json:"-"`
}

// PetView is the faction pet panel
type PetView struct {
	State    PetState     `json:"state"`
	Requests []RequestRow `json:"requests"`
	Timer    ResetTimer   `json:"-"`
}

// KitchenRequests builds the kitchen panel for the farm at now
func KitchenRequests(state *game.FarmState, now time.Time) KitchenView {
	view := KitchenView{Timer: NewResetTimer(now), Requests: []RequestRow{}}
	if state == nil || state.Faction == nil {
		return view
	}

	c := catalog.Default()
	view.Chef = c.Chef(string(state.Faction.Name))
	if state.Faction.Kitchen == nil {
		return view
	}

	day := Weekday(now)
	for _, r := range state.Faction.Kitchen.Requests {
		points := CalculatePoints(r.DailyFulfilled[day], c.KitchenBasePoints())
		boost, sources := KitchenBoost(state, points)
		view.Requests = append(view.Requests, row(state, r.Item, r.Amount, points, boost, sources))
	}
	return view
}

// PetRequests builds the pet panel for the farm at now. Request rewards
// depend on their position: easy, medium, hard.
func PetRequests(state *game.FarmState, now time.Time) PetView {
	view := PetView{Timer: NewResetTimer(now), State: PetHungry, Requests: []RequestRow{}}
	if state == nil || state.Faction == nil {
		return view
	}

	if history, ok := state.Faction.History[WeekKey(now)]; ok {
		view.State = PetStateOf(history.CollectivePet)
	}
	if state.Faction.Pet == nil {
		return view
	}

	c := catalog.Default()
	day := Weekday(now)
	for i, r := range state.Faction.Pet.Requests {
		points := CalculatePoints(r.DailyFulfilled[day], c.PetReward(i))
		boost, sources := PetBoost(state, points)
		view.Requests = append(view.Requests, row(state, r.Food, r.Quantity, points, boost, sources))
	}
	return view
}

func row(state *game.FarmState, item string, amount, points int, boost float64, sources []string) RequestRow {
	balance := state.Inventory.Amount(item)
	return RequestRow{
		Item:           item,
		Amount:         amount,
		Balance:        balance,
		RequirementMet: balance.GreaterThanOrEqual(decimal.NewFromInt(int64(amount))),
		Points:         points,
		Boost:          boost,
		BoostedMarks:   float64(points) + boost,
		BoostSources:   sources,
	}
}
