package game

import "github.com/shopspring/decimal"

// FarmState is the full serialisable game state of one farm.
// Reducers treat it as an immutable snapshot and return a modified Clone.
type FarmState struct {
	Coins        decimal.Decimal          `json:"coins"`
	Balance      decimal.Decimal          `json:"balance"`
	Inventory    Inventory                `json:"inventory"`
	Stock        Inventory                `json:"stock"`
	Bumpkin      *Bumpkin                 `json:"bumpkin,omitempty"`
	Buildings    map[string][]*Building   `json:"buildings"`
	Collectibles map[string][]*PlacedItem `json:"collectibles,omitempty"`
	VIP          *VIP                     `json:"vip,omitempty"`
	Faction      *Faction                 `json:"faction,omitempty"`
}

// Bumpkin is the player's avatar
type Bumpkin struct {
	Experience float64            `json:"experience"`
	Skills     map[string]int     `json:"skills,omitempty"`
	Equipped   Equipped           `json:"equipped"`
	Activity   map[string]float64 `json:"activity,omitempty"`
}

// Equipped lists the wearables a bumpkin has on
type Equipped struct {
	Hat           string `json:"hat,omitempty"`
	Shirt         string `json:"shirt,omitempty"`
	Pants         string `json:"pants,omitempty"`
	Shoes         string `json:"shoes,omitempty"`
	Tool          string `json:"tool,omitempty"`
	SecondaryTool string `json:"secondaryTool,omitempty"`
	Necklace      string `json:"necklace,omitempty"`
	Coat          string `json:"coat,omitempty"`
}

// Items returns the non-empty equipped wearable names
func (e Equipped) Items() []string {
	all := []string{e.Hat, e.Shirt, e.Pants, e.Shoes, e.Tool, e.SecondaryTool, e.Necklace, e.Coat}
	items := make([]string, 0, len(all))
	for _, w := range all {
		if w != "" {
			items = append(items, w)
		}
	}
	return items
}

// Coordinates is a position on the farm grid
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PlacedItem is a collectible placed on the farm
type PlacedItem struct {
	ID          string      `json:"id"`
	Coordinates Coordinates `json:"coordinates"`
	ReadyAt     int64       `json:"readyAt"`
	CreatedAt   int64       `json:"createdAt"`
}

// Building is one placed instance of a building
type Building struct {
	ID          string                     `json:"id"`
	Coordinates Coordinates                `json:"coordinates"`
	ReadyAt     int64                      `json:"readyAt"`
	CreatedAt   int64                      `json:"createdAt"`
	Crafting    []BuildingProduct          `json:"crafting,omitempty"`
	Oil         *float64                   `json:"oil,omitempty"`
	Cancelled   map[string]CancelledRecord `json:"cancelled,omitempty"`
}

// BuildingProduct is one entry in a building's crafting queue
type BuildingProduct struct {
	Name    string             `json:"name"`
	ReadyAt int64              `json:"readyAt"`
	Amount  float64            `json:"amount"`
	Boost   map[string]float64 `json:"boost,omitempty"`
}

// Matches reports whether the entry is the one identified by (name, readyAt)
func (p BuildingProduct) Matches(name string, readyAt int64) bool {
	return p.Name == name && p.ReadyAt == readyAt
}

// CancelledRecord counts cancellations of one recipe in a building
type CancelledRecord struct {
	Count       int   `json:"count"`
	CancelledAt int64 `json:"cancelledAt"`
}

// VIP tracks purchased VIP bundles
type VIP struct {
	Bundles   []VIPBundle `json:"bundles"`
	ExpiresAt int64       `json:"expiresAt"`
}

// VIPBundle is one VIP purchase
type VIPBundle struct {
	Name     string `json:"name"`
	BoughtAt int64  `json:"boughtAt"`
}

// FindBuilding returns the building instance with the given id, or nil
func (s *FarmState) FindBuilding(name, id string) *Building {
	for _, b := range s.Buildings[name] {
		if b != nil && b.ID == id {
			return b
		}
	}
	return nil
}

// NewFarmState returns an empty farm with initialised maps
func NewFarmState() *FarmState {
	return &FarmState{
		Coins:     decimal.Zero,
		Balance:   decimal.Zero,
		Inventory: Inventory{},
		Stock:     Inventory{},
		Bumpkin: &Bumpkin{
			Skills:   map[string]int{},
			Activity: map[string]float64{},
		},
		Buildings:    map[string][]*Building{},
		Collectibles: map[string][]*PlacedItem{},
	}
}

// Normalize initialises the maps a decoded snapshot may lack
func (s *FarmState) Normalize() {
	if s.Inventory == nil {
		s.Inventory = Inventory{}
	}
	if s.Stock == nil {
		s.Stock = Inventory{}
	}
	if s.Buildings == nil {
		s.Buildings = map[string][]*Building{}
	}
	if s.Collectibles == nil {
		s.Collectibles = map[string][]*PlacedItem{}
	}
}
