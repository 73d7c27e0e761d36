package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	factionQueries "github.com/andrescamacho/homestead-go/internal/application/faction/queries"
	farmCommands "github.com/andrescamacho/homestead-go/internal/application/farm/commands"
	"github.com/andrescamacho/homestead-go/internal/domain/faction"
)

// NewFactionCommand creates the faction command with subcommands
func NewFactionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faction",
		Short: "Faction kitchen and pet requests",
		Long: `Show the weekly faction kitchen and pet requests and refresh the
kingdom chores when a new week starts.

Examples:
  homestead faction kitchen --farm 1
  homestead faction pet --farm 1
  homestead faction refresh --farm 1`,
	}

	cmd.AddCommand(newFactionKitchenCommand())
	cmd.AddCommand(newFactionPetCommand())
	cmd.AddCommand(newFactionRefreshCommand())

	return cmd
}

func newFactionKitchenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kitchen",
		Short: "Show this week's kitchen requests",
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

			resp, err := a.send(ctx, &factionQueries.GetKitchenRequestsQuery{FarmID: farmID})
			if err != nil {
				return err
			}
			result := resp.(*factionQueries.GetKitchenRequestsResponse)

			fmt.Printf("\nKITCHEN")
			if result.View.Chef != "" {
				fmt.Printf(" (chef: %s)", result.View.Chef)
			}
			fmt.Println()
			displayRequests(result.View.Requests)
			displayTimer(result.View.Timer, result.NeedsRefresh)
			return nil
		},
	}
}

func newFactionPetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pet",
		Short: "Show this week's pet requests",
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

			resp, err := a.send(ctx, &factionQueries.GetPetRequestsQuery{FarmID: farmID})
			if err != nil {
				return err
			}
			result := resp.(*factionQueries.GetPetRequestsResponse)

			fmt.Printf("\nPET (%s)\n", result.View.State)
			displayRequests(result.View.Requests)
			displayTimer(result.View.Timer, result.NeedsRefresh)
			return nil
		},
	}
}

func newFactionRefreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the kingdom chores for the current week",
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

			resp, err := a.send(ctx, &farmCommands.RefreshKingdomChoresCommand{FarmID: farmID})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Kingdom chores refreshed for week %s\n", resp.(*farmCommands.RefreshKingdomChoresResponse).Week)
			return nil
		},
	}
}

func displayRequests(rows []faction.RequestRow) {
	if len(rows) == 0 {
		fmt.Println("No requests this week")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Item\tAmount\tOwned\tReady\tPoints\tBoost\tMarks")
	fmt.Fprintln(w, "────\t──────\t─────\t─────\t──────\t─────\t─────")
	for _, r := range rows {
		ready := "no"
		if r.RequirementMet {
			ready = "yes"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\t%.0f%%\t%.2f\n",
			r.Item, r.Amount, r.Balance.String(), ready, r.Points, r.Boost*100, r.BoostedMarks)
	}
	w.Flush()
}

func displayTimer(timer faction.ResetTimer, needsRefresh bool) {
	fmt.Printf("\nResets in %s (%s)\n", timer.ResetsAt.Sub(timer.Now).Round(time.Second), timer.ResetsAt.Format("2006-01-02 15:04 MST"))
	if needsRefresh {
		fmt.Println("Requests are from a previous week: run 'homestead faction refresh'")
	}
}
