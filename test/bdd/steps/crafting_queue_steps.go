package steps

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/homestead-go/internal/domain/crafting"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
)

type craftingQueueContext struct {
	now    time.Time
	state  *game.FarmState
	result *game.FarmState
	err    error
}

func (cc *craftingQueueContext) reset() {
	cc.now = time.Time{}
	cc.state = game.NewFarmState()
	cc.result = nil
	cc.err = nil
}

func (cc *craftingQueueContext) readyAt(seconds int) int64 {
	return cc.now.Add(time.Duration(seconds) * time.Second).UnixMilli()
}

// current reads the state after the last action, falling back to the initial one
func (cc *craftingQueueContext) current() *game.FarmState {
	if cc.result != nil {
		return cc.result
	}
	return cc.state
}

func (cc *craftingQueueContext) parseQueue(table *godog.Table) ([]game.BuildingProduct, error) {
	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("queue table has no header")
	}

	columns := map[string]int{}
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}

	var queue []game.BuildingProduct
	for _, row := range table.Rows[1:] {
		readyIn, err := strconv.Atoi(row.Cells[columns["readyIn"]].Value)
		if err != nil {
			return nil, fmt.Errorf("invalid readyIn %q: %w", row.Cells[columns["readyIn"]].Value, err)
		}
		item := game.BuildingProduct{
			Name:    row.Cells[columns["name"]].Value,
			ReadyAt: cc.readyAt(readyIn),
			Amount:  1,
		}
		if idx, ok := columns["oil"]; ok {
			oil, err := strconv.ParseFloat(row.Cells[idx].Value, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid oil %q: %w", row.Cells[idx].Value, err)
			}
			item.Boost = map[string]float64{"Oil": oil}
		}
		queue = append(queue, item)
	}
	return queue, nil
}

// Given steps

func (cc *craftingQueueContext) theCurrentTimeIs(value string) error {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}
	cc.now = t
	return nil
}

func (cc *craftingQueueContext) aBuildingWithTheCraftingQueue(name, id string, table *godog.Table) error {
	queue, err := cc.parseQueue(table)
	if err != nil {
		return err
	}
	cc.state.Buildings[name] = append(cc.state.Buildings[name], &game.Building{ID: id, Crafting: queue})
	return nil
}

func (cc *craftingQueueContext) aBuildingHoldingOilWithTheCraftingQueue(name, id string, oil float64, table *godog.Table) error {
	if err := cc.aBuildingWithTheCraftingQueue(name, id, table); err != nil {
		return err
	}
	cc.state.FindBuilding(name, id).Oil = &oil
	return nil
}

func (cc *craftingQueueContext) aBuildingWithAnEmptyCraftingQueue(name, id string) error {
	cc.state.Buildings[name] = append(cc.state.Buildings[name], &game.Building{ID: id})
	return nil
}

// When steps

func (cc *craftingQueueContext) iCancelFromTheBuilding(recipe string, readyIn int, building, id string) error {
	cc.result, cc.err = crafting.CancelQueuedRecipe(cc.state, crafting.RecipeCancelled{
		BuildingName: building,
		BuildingID:   id,
		QueueItem:    game.BuildingProduct{Name: recipe, ReadyAt: cc.readyAt(readyIn), Amount: 1},
	}, cc.now)
	return nil
}

// Then steps

func (cc *craftingQueueContext) theCancellationShouldSucceed() error {
	if cc.err != nil {
		return fmt.Errorf("expected cancellation to succeed, but got error: %v", cc.err)
	}
	return nil
}

func (cc *craftingQueueContext) theCancellationShouldFailWith(expected string) error {
	if cc.err == nil {
		return fmt.Errorf("expected cancellation to fail with '%s', but it succeeded", expected)
	}
	if cc.err.Error() != expected {
		return fmt.Errorf("expected error '%s', got '%s'", expected, cc.err.Error())
	}
	return nil
}

func (cc *craftingQueueContext) theCraftingQueueShouldBe(name, id string, table *godog.Table) error {
	expected, err := cc.parseQueue(table)
	if err != nil {
		return err
	}
	building := cc.current().FindBuilding(name, id)
	if building == nil {
		return fmt.Errorf("building %s %s not found", name, id)
	}
	if len(building.Crafting) != len(expected) {
		return fmt.Errorf("expected %d queued recipes, got %d", len(expected), len(building.Crafting))
	}
	for i, want := range expected {
		got := building.Crafting[i]
		if got.Name != want.Name || got.ReadyAt != want.ReadyAt {
			return fmt.Errorf("queue[%d]: expected %s at %d, got %s at %d", i, want.Name, want.ReadyAt, got.Name, got.ReadyAt)
		}
	}
	return nil
}

func (cc *craftingQueueContext) recipeShouldHaveBeenCancelled(recipe string, count int, name, id string) error {
	building := cc.current().FindBuilding(name, id)
	if building == nil {
		return fmt.Errorf("building %s %s not found", name, id)
	}
	record, ok := building.Cancelled[recipe]
	if !ok {
		return fmt.Errorf("expected %s to have a cancellation record", recipe)
	}
	if record.Count != count {
		return fmt.Errorf("expected %d cancellations, got %d", count, record.Count)
	}
	if record.CancelledAt != cc.now.UnixMilli() {
		return fmt.Errorf("expected cancelledAt %d, got %d", cc.now.UnixMilli(), record.CancelledAt)
	}
	return nil
}

func (cc *craftingQueueContext) theBuildingShouldHoldOil(name, id string, oil float64) error {
	building := cc.current().FindBuilding(name, id)
	if building == nil || building.Oil == nil {
		return fmt.Errorf("building %s %s holds no oil", name, id)
	}
	if *building.Oil != oil {
		return fmt.Errorf("expected %.2f oil, got %.2f", oil, *building.Oil)
	}
	return nil
}

func InitializeCraftingQueueScenario(ctx *godog.ScenarioContext) {
	cc := &craftingQueueContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the current time is "([^"]*)"$`, cc.theCurrentTimeIs)
	ctx.Step(`^a "([^"]*)" with id "([^"]*)" and the crafting queue:$`, cc.aBuildingWithTheCraftingQueue)
	ctx.Step(`^a "([^"]*)" with id "([^"]*)" holding ([0-9.]+) oil and the crafting queue:$`, cc.aBuildingHoldingOilWithTheCraftingQueue)
	ctx.Step(`^a "([^"]*)" with id "([^"]*)" and an empty crafting queue$`, cc.aBuildingWithAnEmptyCraftingQueue)

	// When steps
	ctx.Step(`^I cancel "([^"]*)" ready in (-?\d+) seconds from the "([^"]*)" with id "([^"]*)"$`, cc.iCancelFromTheBuilding)

	// Then steps
	ctx.Step(`^the cancellation should succeed$`, cc.theCancellationShouldSucceed)
	ctx.Step(`^the cancellation should fail with "([^"]*)"$`, cc.theCancellationShouldFailWith)
	ctx.Step(`^the crafting queue of the "([^"]*)" with id "([^"]*)" should be:$`, cc.theCraftingQueueShouldBe)
	ctx.Step(`^"([^"]*)" should have been cancelled (\d+) times? in the "([^"]*)" with id "([^"]*)"$`, cc.recipeShouldHaveBeenCancelled)
	ctx.Step(`^the "([^"]*)" with id "([^"]*)" should hold ([0-9.]+) oil$`, cc.theBuildingShouldHoldOil)
}
