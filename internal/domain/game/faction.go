package game

// FactionName identifies one of the four kingdom factions
type FactionName string

const (
	FactionGoblins     FactionName = "goblins"
	FactionBumpkins    FactionName = "bumpkins"
	FactionNightshades FactionName = "nightshades"
	FactionSunflorians FactionName = "sunflorians"
)

// Faction is the player's faction membership and weekly chores
type Faction struct {
	Name    FactionName               `json:"name"`
	Kitchen *Kitchen                  `json:"kitchen,omitempty"`
	Pet     *Pet                      `json:"pet,omitempty"`
	History map[string]FactionHistory `json:"history,omitempty"`
}

// Kitchen holds the faction kitchen requests for a week
type Kitchen struct {
	Week     string            `json:"week"`
	Requests []ResourceRequest `json:"requests"`
}

// ResourceRequest asks for an amount of an item; dailyFulfilled is keyed by faction weekday
type ResourceRequest struct {
	Item           string      `json:"item"`
	Amount         int         `json:"amount"`
	DailyFulfilled map[int]int `json:"dailyFulfilled"`
}

// Pet holds the faction pet feeding requests for a week
type Pet struct {
	Week     string       `json:"week"`
	Requests []PetRequest `json:"requests"`
}

// PetRequest asks for a quantity of food; requests are ordered by difficulty
type PetRequest struct {
	Food           string      `json:"food"`
	Quantity       int         `json:"quantity"`
	DailyFulfilled map[int]int `json:"dailyFulfilled"`
}

// FactionHistory is the per-week faction record
type FactionHistory struct {
	Score         int            `json:"score"`
	CollectivePet *CollectivePet `json:"collectivePet,omitempty"`
}

// CollectivePet is the faction-wide pet shared by all members
type CollectivePet struct {
	Sleeping    bool `json:"sleeping"`
	GoalReached bool `json:"goalReached"`
	Streak      int  `json:"streak"`
}
