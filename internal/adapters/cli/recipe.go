package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	farmQueries "github.com/andrescamacho/homestead-go/internal/application/farm/queries"
	"github.com/andrescamacho/homestead-go/internal/domain/crafting"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
)

// NewRecipeCommand creates the recipe command with subcommands
func NewRecipeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Cook, cancel and list recipes in a building",
		Long: `Manage a building's crafting queue.

Cancelling a queued recipe returns its oil and shifts the recipes behind it
forward. The recipe currently being cooked cannot be cancelled.

Examples:
  homestead recipe cook --farm 1 --building "Fire Pit" --id 1 --item "Mashed Potato"
  homestead recipe queue --farm 1 --building "Fire Pit" --id 1
  homestead recipe cancel --farm 1 --building "Fire Pit" --id 1 --item "Mashed Potato" --ready-at 1735689720000`,
	}

	cmd.AddCommand(newRecipeCookCommand())
	cmd.AddCommand(newRecipeCancelCommand())
	cmd.AddCommand(newRecipeQueueCommand())

	return cmd
}

type buildingFlags struct {
	name string
	id   string
}

func (f *buildingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "building", "", "Building name (required)")
	cmd.Flags().StringVar(&f.id, "id", "", "Building instance id (required)")
	cmd.MarkFlagRequired("building")
	cmd.MarkFlagRequired("id")
}

func newRecipeCookCommand() *cobra.Command {
	var (
		building buildingFlags
		item     string
	)

	cmd := &cobra.Command{
		Use:   "cook",
		Short: "Start or queue a recipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			farmID, err := resolveFarmID()
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			resp, err := a.apply(ctx, farmID, crafting.RecipeCooked{
				BuildingName: building.name,
				BuildingID:   building.id,
				Item:         item,
			})
			if err != nil {
				return err
			}

			queue := resp.State.FindBuilding(building.name, building.id).Crafting
			last := queue[len(queue)-1]
			fmt.Printf("✓ %s queued in %s %s, ready at %s\n", last.Name, building.name, building.id, formatMillis(last.ReadyAt))
			return nil
		},
	}

	building.register(cmd)
	cmd.Flags().StringVar(&item, "item", "", "Recipe to cook (required)")
	cmd.MarkFlagRequired("item")
	return cmd
}

func newRecipeCancelCommand() *cobra.Command {
	var (
		building buildingFlags
		item     string
		readyAt  int64
	)

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a queued recipe",
		Long: `Cancel a queued recipe identified by name and readyAt (epoch ms, as
shown by 'recipe queue').`,
		RunE: func(cmd *cobra.Command, args []string) error {
			farmID, err := resolveFarmID()
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			resp, err := a.apply(ctx, farmID, crafting.RecipeCancelled{
				BuildingName: building.name,
				BuildingID:   building.id,
				QueueItem:    game.BuildingProduct{Name: item, ReadyAt: readyAt},
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ %s cancelled\n", item)
			displayQueue(resp.State.FindBuilding(building.name, building.id), nil)
			return nil
		},
	}

	building.register(cmd)
	cmd.Flags().StringVar(&item, "item", "", "Recipe name (required)")
	cmd.Flags().Int64Var(&readyAt, "ready-at", 0, "readyAt of the queue entry in epoch ms (required)")
	cmd.MarkFlagRequired("item")
	cmd.MarkFlagRequired("ready-at")
	return cmd
}

func newRecipeQueueCommand() *cobra.Command {
	var building buildingFlags

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Show a building's crafting queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			farmID, err := resolveFarmID()
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			resp, err := a.send(ctx, &farmQueries.GetCraftingQueueQuery{
				FarmID:       farmID,
				BuildingName: building.name,
				BuildingID:   building.id,
			})
			if err != nil {
				return err
			}
			result := resp.(*farmQueries.GetCraftingQueueResponse)

			fmt.Printf("\n%s %s (oil: %.2f)\n", building.name, building.id, result.Oil)
			displayQueue(&game.Building{Crafting: result.Queue}, result)
			return nil
		},
	}

	building.register(cmd)
	return cmd
}

// displayQueue prints a crafting queue; status needs the query result
func displayQueue(building *game.Building, result *farmQueries.GetCraftingQueueResponse) {
	if building == nil || len(building.Crafting) == 0 {
		fmt.Println("Queue is empty")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tRecipe\tReady At\tReady At (ms)\tStatus\tOil")
	fmt.Fprintln(w, "─\t──────\t────────\t─────────────\t──────\t───")
	for i, item := range building.Crafting {
		status := "-"
		if result != nil {
			status = formatRemaining(item.ReadyAt, result.At)
			if result.Cooking != nil && result.Cooking.Matches(item.Name, item.ReadyAt) {
				status = "cooking, " + status
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%.2f\n",
			i+1, item.Name, formatMillis(item.ReadyAt), item.ReadyAt, status, item.Boost["Oil"])
	}
	w.Flush()
}
