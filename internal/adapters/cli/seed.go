package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	farmQueries "github.com/andrescamacho/homestead-go/internal/application/farm/queries"
	"github.com/andrescamacho/homestead-go/internal/domain/seeds"
)

// NewSeedCommand creates the seed command with subcommands
func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Price and buy seeds",
		Long: `Price and buy seeds from the market stock.

Prices include the discounts of the farm's skills and collectibles.

Examples:
  homestead seed price --farm 1 --seed "Carrot Seed" --amount 10
  homestead seed buy --farm 1 --seed "Carrot Seed" --amount 10`,
	}

	cmd.AddCommand(newSeedPriceCommand())
	cmd.AddCommand(newSeedBuyCommand())

	return cmd
}

func newSeedPriceCommand() *cobra.Command {
	var (
		seed   string
		amount string
	)

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Show what a seed purchase would cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			farmID, err := resolveFarmID()
			if err != nil {
				return err
			}
			qty, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			resp, err := a.send(ctx, &farmQueries.GetSeedPriceQuery{FarmID: farmID, Seed: seed, Amount: qty})
			if err != nil {
				return err
			}
			result := resp.(*farmQueries.GetSeedPriceResponse)

			fmt.Printf("%s\n", result.Seed)
			fmt.Printf("  Base price:  %s\n", result.BasePrice.String())
			fmt.Printf("  Your price:  %s\n", result.UnitPrice.String())
			fmt.Printf("  Total (%s): %s\n", qty.String(), result.Total.String())
			fmt.Printf("  In stock:    %s\n", result.Stock.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&seed, "seed", "", "Seed name (required)")
	cmd.Flags().StringVar(&amount, "amount", "1", "Number of seeds")
	cmd.MarkFlagRequired("seed")
	return cmd
}

func newSeedBuyCommand() *cobra.Command {
	var (
		seed   string
		amount string
	)

	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy seeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			farmID, err := resolveFarmID()
			if err != nil {
				return err
			}
			qty, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			resp, err := a.apply(ctx, farmID, seeds.SeedBought{Item: seed, Amount: qty})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Bought %s %s\n", qty.String(), seed)
			fmt.Printf("  Coins left: %s\n", formatAmount(resp.State.Coins))
			fmt.Printf("  Owned:      %s\n", resp.State.Inventory.Amount(seed).String())
			return nil
		},
	}

	cmd.Flags().StringVar(&seed, "seed", "", "Seed name (required)")
	cmd.Flags().StringVar(&amount, "amount", "1", "Number of seeds")
	cmd.MarkFlagRequired("seed")
	return cmd
}
