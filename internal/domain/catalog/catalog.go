package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// SeedKind groups seeds for the discount rules that target a family of seeds
type SeedKind string

const (
	SeedKindCrop            SeedKind = "crop"
	SeedKindFlower          SeedKind = "flower"
	SeedKindPatchFruit      SeedKind = "patch-fruit"
	SeedKindGreenhouse      SeedKind = "greenhouse"
	SeedKindGreenhouseFruit SeedKind = "greenhouse-fruit"
)

// Seed is a purchasable seed definition
type Seed struct {
	Name         string
	Price        decimal.Decimal
	BumpkinLevel int
	Kind         SeedKind
	PlantingSpot string
}

// Cookable is a recipe cooked in a building
type Cookable struct {
	Name           string
	Building       string
	CookingSeconds int
	Ingredients    map[string]decimal.Decimal
}

// CookingTime returns the recipe duration
func (c Cookable) CookingTime() time.Duration {
	return time.Duration(c.CookingSeconds) * time.Second
}

// Season is a seasonal pass window
type Season struct {
	Name   string
	Banner string
	Start  time.Time
	End    time.Time
}

// WearableBoost is a faction outfit piece that raises marks earned
type WearableBoost struct {
	Wearable string
	Percent  int
}

// Catalog holds all static game data
type Catalog struct {
	levels            []levelEntry
	seeds             map[string]Seed
	cookables         map[string]Cookable
	oil               map[string]oilEntry
	seasons           []Season
	lifetimeBanner    string
	kitchenBasePoints int
	petRewards        []int
	chefs             map[string]string
	wearableBoosts    map[string][]WearableBoost
}

type levelEntry struct {
	Level      int     `yaml:"level" validate:"min=1"`
	Experience float64 `yaml:"experience" validate:"min=0"`
}

type oilEntry struct {
	Base    float64 `yaml:"base" validate:"min=0"`
	PerHour float64 `yaml:"perHour" validate:"min=0"`
}

type rawSeed struct {
	Name         string `yaml:"name" validate:"required"`
	Price        string `yaml:"price" validate:"required,numeric"`
	BumpkinLevel int    `yaml:"bumpkinLevel" validate:"min=1"`
	Kind         string `yaml:"kind" validate:"required,oneof=crop flower patch-fruit greenhouse greenhouse-fruit"`
	PlantingSpot string `yaml:"plantingSpot"`
}

type rawCookable struct {
	Name           string            `yaml:"name" validate:"required"`
	Building       string            `yaml:"building" validate:"required"`
	CookingSeconds int               `yaml:"cookingSeconds" validate:"min=1"`
	Ingredients    map[string]string `yaml:"ingredients" validate:"required,dive,numeric"`
}

type rawSeason struct {
	Name   string    `yaml:"name" validate:"required"`
	Banner string    `yaml:"banner" validate:"required"`
	Start  time.Time `yaml:"start" validate:"required"`
	End    time.Time `yaml:"end" validate:"required,gtfield=Start"`
}

type rawBoost struct {
	Wearable string `yaml:"wearable" validate:"required"`
	Percent  int    `yaml:"percent" validate:"min=1,max=100"`
}

type rawFactions struct {
	KitchenBasePoints int                   `yaml:"kitchenBasePoints" validate:"min=1"`
	PetRewards        []int                 `yaml:"petRewards" validate:"required,dive,min=1"`
	Chefs             map[string]string     `yaml:"chefs" validate:"required"`
	WearableBoosts    map[string][]rawBoost `yaml:"wearableBoosts" validate:"dive,dive"`
}

type rawCatalog struct {
	Levels         []levelEntry        `yaml:"levels" validate:"required,dive"`
	Seeds          []rawSeed           `yaml:"seeds" validate:"required,dive"`
	Cookables      []rawCookable       `yaml:"cookables" validate:"required,dive"`
	Oil            map[string]oilEntry `yaml:"oil" validate:"dive"`
	Seasons        []rawSeason         `yaml:"seasons" validate:"dive"`
	LifetimeBanner string              `yaml:"lifetimeBanner" validate:"required"`
	Factions       rawFactions         `yaml:"factions"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded game catalog. It panics if the embedded data is invalid.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(bytes.NewReader(embedded))
		if err != nil {
			panic(fmt.Sprintf("invalid embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses and validates a YAML catalog
func Load(r io.Reader) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if err := validator.New().Struct(&raw); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}

	c := &Catalog{
		seeds:             make(map[string]Seed, len(raw.Seeds)),
		cookables:         make(map[string]Cookable, len(raw.Cookables)),
		oil:               raw.Oil,
		lifetimeBanner:    raw.LifetimeBanner,
		kitchenBasePoints: raw.Factions.KitchenBasePoints,
		petRewards:        raw.Factions.PetRewards,
		chefs:             raw.Factions.Chefs,
		wearableBoosts:    make(map[string][]WearableBoost, len(raw.Factions.WearableBoosts)),
	}

	c.levels = append(c.levels, raw.Levels...)
	sort.Slice(c.levels, func(i, j int) bool { return c.levels[i].Level < c.levels[j].Level })

	for _, s := range raw.Seeds {
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return nil, fmt.Errorf("seed %s: invalid price %q: %w", s.Name, s.Price, err)
		}
		if _, dup := c.seeds[s.Name]; dup {
			return nil, fmt.Errorf("duplicate seed %s", s.Name)
		}
		c.seeds[s.Name] = Seed{
			Name:         s.Name,
			Price:        price,
			BumpkinLevel: s.BumpkinLevel,
			Kind:         SeedKind(s.Kind),
			PlantingSpot: s.PlantingSpot,
		}
	}

	for _, rc := range raw.Cookables {
		ingredients := make(map[string]decimal.Decimal, len(rc.Ingredients))
		for item, amount := range rc.Ingredients {
			d, err := decimal.NewFromString(amount)
			if err != nil {
				return nil, fmt.Errorf("cookable %s: invalid amount for %s: %w", rc.Name, item, err)
			}
			ingredients[item] = d
		}
		c.cookables[rc.Name] = Cookable{
			Name:           rc.Name,
			Building:       rc.Building,
			CookingSeconds: rc.CookingSeconds,
			Ingredients:    ingredients,
		}
	}

	for _, s := range raw.Seasons {
		c.seasons = append(c.seasons, Season{Name: s.Name, Banner: s.Banner, Start: s.Start.UTC(), End: s.End.UTC()})
	}

	for faction, boosts := range raw.Factions.WearableBoosts {
		for _, b := range boosts {
			c.wearableBoosts[faction] = append(c.wearableBoosts[faction], WearableBoost{Wearable: b.Wearable, Percent: b.Percent})
		}
	}

	return c, nil
}

// Seed looks up a seed by name
func (c *Catalog) Seed(name string) (Seed, bool) {
	s, ok := c.seeds[name]
	return s, ok
}

// Seeds returns all seed names, sorted
func (c *Catalog) Seeds() []string {
	names := make([]string, 0, len(c.seeds))
	for name := range c.seeds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsFlowerSeed reports whether the seed grows in a flower bed
func (c *Catalog) IsFlowerSeed(name string) bool {
	s, ok := c.seeds[name]
	return ok && s.Kind == SeedKindFlower
}

// IsPatchFruitSeed reports whether the seed grows in a fruit patch
func (c *Catalog) IsPatchFruitSeed(name string) bool {
	s, ok := c.seeds[name]
	return ok && s.Kind == SeedKindPatchFruit
}

// IsGreenhouseSeed covers both greenhouse crops and greenhouse fruits
func (c *Catalog) IsGreenhouseSeed(name string) bool {
	s, ok := c.seeds[name]
	return ok && (s.Kind == SeedKindGreenhouse || s.Kind == SeedKindGreenhouseFruit)
}

// Cookable looks up a recipe by name
func (c *Catalog) Cookable(name string) (Cookable, bool) {
	ck, ok := c.cookables[name]
	return ck, ok
}

// OilConsumption returns the oil a building burns to cook one batch of a recipe.
// Buildings that do not run on oil, and unknown recipes, consume nothing.
func (c *Catalog) OilConsumption(building, recipe string) float64 {
	entry, ok := c.oil[building]
	if !ok {
		return 0
	}
	ck, ok := c.cookables[recipe]
	if !ok || ck.Building != building {
		return 0
	}
	hours := math.Ceil(float64(ck.CookingSeconds) / 3600)
	return entry.Base + entry.PerHour*hours
}

// BumpkinLevel returns the highest level whose experience threshold is reached
func (c *Catalog) BumpkinLevel(experience float64) int {
	level := 1
	for _, l := range c.levels {
		if experience >= l.Experience {
			level = l.Level
		}
	}
	return level
}

// SeasonalBanner returns the banner of the season active at t, or "" outside any season
func (c *Catalog) SeasonalBanner(t time.Time) string {
	for _, s := range c.seasons {
		if !t.Before(s.Start) && t.Before(s.End) {
			return s.Banner
		}
	}
	return ""
}

// LifetimeBanner is the banner that grants permanent VIP access
func (c *Catalog) LifetimeBanner() string {
	return c.lifetimeBanner
}

// KitchenBasePoints is the reward for a kitchen delivery before any fulfilment penalty
func (c *Catalog) KitchenBasePoints() int {
	return c.kitchenBasePoints
}

// PetReward returns the base reward for the pet request at the given difficulty index
func (c *Catalog) PetReward(idx int) int {
	if idx < 0 || idx >= len(c.petRewards) {
		return 0
	}
	return c.petRewards[idx]
}

// Chef returns the NPC who hands out kitchen requests for a faction
func (c *Catalog) Chef(faction string) string {
	return c.chefs[strings.ToLower(faction)]
}

// WearableBoosts returns the faction outfit boosts for a faction
func (c *Catalog) WearableBoosts(faction string) []WearableBoost {
	return c.wearableBoosts[strings.ToLower(faction)]
}
