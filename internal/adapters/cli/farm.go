package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/adapters/auth"
	"github.com/andrescamacho/homestead-go/internal/adapters/snapshot"
	"github.com/andrescamacho/homestead-go/internal/application/farm"
	farmQueries "github.com/andrescamacho/homestead-go/internal/application/farm/queries"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// NewFarmCommand creates the farm command with subcommands
func NewFarmCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "farm",
		Short: "Create, inspect and move farms",
		Long: `Create, inspect and move stored farms.

Examples:
  homestead farm create --farm 1 --coins 100
  homestead farm list
  homestead farm show --farm 1
  homestead farm export --farm 1 --out farm-1.hsnap
  homestead farm import --in farm-1.hsnap --farm 2
  homestead farm token --farm 1`,
	}

	cmd.AddCommand(newFarmShowCommand())
	cmd.AddCommand(newFarmListCommand())
	cmd.AddCommand(newFarmCreateCommand())
	cmd.AddCommand(newFarmExportCommand())
	cmd.AddCommand(newFarmImportCommand())
	cmd.AddCommand(newFarmTokenCommand())

	return cmd
}

func newFarmShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a farm's snapshot",
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

			resp, err := a.send(ctx, &farmQueries.GetFarmQuery{FarmID: farmID})
			if err != nil {
				return fmt.Errorf("failed to get farm: %w", err)
			}
			state := resp.(*farmQueries.GetFarmResponse).State

			if asJSON {
				fmt.Println(prettyPrint(state))
				return nil
			}
			displayFarm(farmID, state, time.Now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw snapshot as JSON")
	return cmd
}

func newFarmListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored farms",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			ids, err := a.farms.ListIDs(ctx)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Println("No farms found")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

func newFarmCreateCommand() *cobra.Command {
	var (
		coins      string
		experience float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty farm",
		RunE: func(cmd *cobra.Command, args []string) error {
			if farmFlag <= 0 {
				return fmt.Errorf("--farm flag is required")
			}
			startingCoins, err := decimal.NewFromString(coins)
			if err != nil {
				return fmt.Errorf("invalid coins %q: %w", coins, err)
			}

			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			farmID := shared.MustNewFarmID(farmFlag)
			if _, err := a.farms.Load(ctx, farmID); err == nil {
				return fmt.Errorf("farm %d already exists", farmFlag)
			} else if !errors.Is(err, farm.ErrFarmNotFound) {
				return err
			}

			state := game.NewFarmState()
			state.Coins = startingCoins
			state.Bumpkin.Experience = experience
			if err := a.farms.Save(ctx, farmID, state); err != nil {
				return err
			}

			fmt.Printf("✓ Farm %d created with %s coins\n", farmFlag, formatAmount(startingCoins))
			return nil
		},
	}

	cmd.Flags().StringVar(&coins, "coins", "0", "Starting coins")
	cmd.Flags().Float64Var(&experience, "experience", 0, "Starting bumpkin experience")
	return cmd
}

func newFarmExportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a farm to a compressed snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			farmID, err := resolveFarmID()
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("farm-%d.hsnap", farmID)
			}

			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			resp, err := a.send(ctx, &farmQueries.GetFarmQuery{FarmID: farmID})
			if err != nil {
				return fmt.Errorf("failed to get farm: %w", err)
			}

			header := snapshot.Header{Version: snapshot.Version, FarmID: farmID, ExportedAt: time.Now().UTC()}
			if err := snapshot.WriteFile(out, header, resp.(*farmQueries.GetFarmResponse).State); err != nil {
				return err
			}

			fmt.Printf("✓ Farm %d exported to %s\n", farmID, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (default: farm-<id>.hsnap)")
	return cmd
}

func newFarmImportCommand() *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a snapshot file, replacing the stored farm",
		Long: `Import a snapshot written by 'farm export'.

The farm id defaults to the one recorded in the snapshot; --farm stores it
under another id.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == "" {
				return fmt.Errorf("--in flag is required")
			}

			header, state, err := snapshot.ReadFile(in)
			if err != nil {
				return err
			}

			target := header.FarmID
			if farmFlag > 0 {
				target = farmFlag
			}
			farmID, err := shared.NewFarmID(target)
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			if err := a.farms.Save(ctx, farmID, state); err != nil {
				return err
			}
			a.store.Evict(farmID)

			fmt.Printf("✓ Imported snapshot of farm %d (exported %s) as farm %d\n",
				header.FarmID, header.ExportedAt.Format(time.RFC3339), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Snapshot file to import")
	return cmd
}

func newFarmTokenCommand() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API access token for a farm",
		Long: `Issue a token for the HTTP API. Requires server.auth.secret
(HS_SERVER_AUTH_SECRET). The token only grants access to the given farm.`,
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

			if !a.cfg.Server.Auth.Enabled() {
				return fmt.Errorf("server.auth.secret is not configured")
			}
			if _, err := a.farms.Load(ctx, shared.MustNewFarmID(farmID)); err != nil {
				if errors.Is(err, farm.ErrFarmNotFound) {
					return fmt.Errorf("farm %d not found", farmID)
				}
				return err
			}

			tokenCfg := a.tokenConfig()
			if ttl > 0 {
				tokenCfg.TTL = ttl
			}
			token, claims, err := auth.Issue(tokenCfg, farmID)
			if err != nil {
				return err
			}

			fmt.Println(token)
			fmt.Fprintf(os.Stderr, "Token for farm %d expires %s\n", farmID, claims.ExpiresAt.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default: server.auth.token_ttl)")
	return cmd
}

func displayFarm(farmID int, state *game.FarmState, now time.Time) {
	fmt.Printf("\nFARM %d\n", farmID)
	fmt.Println("─────────────────────────────────────────────")
	fmt.Printf("Coins:      %s\n", formatAmount(state.Coins))
	fmt.Printf("Balance:    %s\n", formatAmount(state.Balance))
	if state.Bumpkin != nil {
		fmt.Printf("Experience: %.0f\n", state.Bumpkin.Experience)
	}
	if state.Faction != nil {
		fmt.Printf("Faction:    %s\n", state.Faction.Name)
	}
	if state.VIP != nil && state.VIP.ExpiresAt > now.UnixMilli() {
		fmt.Printf("VIP until:  %s\n", formatMillis(state.VIP.ExpiresAt))
	}

	if len(state.Inventory) > 0 {
		fmt.Println("\nINVENTORY")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Item\tAmount")
		fmt.Fprintln(w, "────\t──────")
		for _, name := range sortedKeys(state.Inventory) {
			fmt.Fprintf(w, "%s\t%s\n", name, state.Inventory[name].String())
		}
		w.Flush()
	}

	if len(state.Buildings) > 0 {
		fmt.Println("\nBUILDINGS")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Building\tID\tQueued\tOil")
		fmt.Fprintln(w, "────────\t──\t──────\t───")
		for _, name := range sortedKeys(state.Buildings) {
			for _, b := range state.Buildings[name] {
				oil := "-"
				if b.Oil != nil {
					oil = fmt.Sprintf("%.2f", *b.Oil)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", name, b.ID, len(b.Crafting), oil)
			}
		}
		w.Flush()
	}
	fmt.Println()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
