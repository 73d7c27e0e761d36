package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	marketCommands "github.com/andrescamacho/homestead-go/internal/application/marketplace/commands"
	"github.com/andrescamacho/homestead-go/internal/domain/marketplace"
)

// NewMarketplaceCommand creates the marketplace command with subcommands
func NewMarketplaceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marketplace",
		Short: "On-chain marketplace transactions",
		Long: `Submit marketplace transactions through the configured relay.

Examples:
  homestead marketplace accept-offer --params offer.json
  cat offer.json | homestead marketplace accept-offer --params -`,
	}

	cmd.AddCommand(newAcceptOfferCommand())

	return cmd
}

func newAcceptOfferCommand() *cobra.Command {
	var paramsPath string

	cmd := &cobra.Command{
		Use:   "accept-offer",
		Short: "Accept a signed marketplace offer",
		Long: `Submit acceptOffer, wait for the receipt and print the session id to
use for the next transaction.

The params file holds the signed request as JSON: signature, sessionId,
nextSessionId, deadline, sender, farmId, fee and offer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := readOfferParams(paramsPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			resp, err := a.send(ctx, &marketCommands.AcceptOfferCommand{Params: params})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Offer %s accepted\n", params.Offer.TradeID)
			fmt.Printf("  Next session: %s\n", resp.(*marketCommands.AcceptOfferResponse).NextSessionID)
			return nil
		},
	}

	cmd.Flags().StringVar(&paramsPath, "params", "", "JSON params file, or - for stdin (required)")
	cmd.MarkFlagRequired("params")
	return cmd
}

func readOfferParams(path string) (marketplace.AcceptOfferParams, error) {
	var params marketplace.AcceptOfferParams

	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return params, fmt.Errorf("failed to open params: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&params); err != nil {
		return params, fmt.Errorf("failed to parse params: %w", err)
	}
	return params, nil
}
