package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	farmFlag   int
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "homestead",
		Short: "Homestead - run and inspect farms",
		Long: `Homestead applies game actions to stored farms, answers queries about
them and serves them over HTTP.

Examples:
  homestead farm create --farm 1 --coins 100
  homestead seed buy --farm 1 --seed "Carrot Seed" --amount 10
  homestead recipe cook --farm 1 --building "Fire Pit" --id 1 --item "Mashed Potato"
  homestead recipe queue --farm 1 --building "Fire Pit" --id 1
  homestead faction kitchen --farm 1
  homestead serve --address :8080`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().IntVar(&farmFlag, "farm", 0,
		"Farm ID (defaults to the one set with 'homestead config set-farm')")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewFarmCommand())
	rootCmd.AddCommand(NewRecipeCommand())
	rootCmd.AddCommand(NewSeedCommand())
	rootCmd.AddCommand(NewFactionCommand())
	rootCmd.AddCommand(NewMarketplaceCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
