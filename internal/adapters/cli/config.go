package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/application/farm"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Homestead configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (HS_* prefix, plus DATABASE_URL)
2. Config file (config.yaml)
3. Default values

User preferences (default farm) are stored in ~/.homestead/config.json

Examples:
  homestead config show
  homestead config set-farm --farm 1
  homestead config clear-farm`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetFarmCommand())
	cmd.AddCommand(newConfigClearFarmCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Println("Homestead Configuration")
			fmt.Println("=======================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultFarmID != nil {
				fmt.Printf("  Default Farm:     %d\n", *userCfg.DefaultFarmID)
			} else {
				fmt.Printf("  Default Farm:     (not set)\n")
			}

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}

			fmt.Println("\nMarketplace:")
			fmt.Printf("  Relay URL:        %s\n", cfg.Marketplace.RelayURL)
			fmt.Printf("  Contract:         %s\n", cfg.Marketplace.ContractAddress)
			fmt.Printf("  Timeout:          %s\n", cfg.Marketplace.Timeout)
			fmt.Printf("  Poll Interval:    %s\n", cfg.Marketplace.PollInterval)
			fmt.Printf("  Rate Limit:       %d req/s (burst: %d)\n",
				cfg.Marketplace.RateLimit.Requests, cfg.Marketplace.RateLimit.Burst)

			fmt.Println("\nServer:")
			fmt.Printf("  Address:          %s\n", cfg.Server.Address)
			fmt.Printf("  Metrics:          %t (%s)\n", cfg.Metrics.Enabled, cfg.Metrics.Path)
			fmt.Printf("  Auth:             %t (issuer %s, ttl %s)\n",
				cfg.Server.Auth.Enabled(), cfg.Server.Auth.Issuer, cfg.Server.Auth.TokenTTL)
			fmt.Printf("  Tracing:          %t %s\n", cfg.Tracing.Enabled, cfg.Tracing.Endpoint)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}
}

func newConfigSetFarmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-farm",
		Short: "Set default farm",
		Long: `Set the farm commands use when --farm is not given.

The farm must exist in the database.

Example:
  homestead config set-farm --farm 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if farmFlag <= 0 {
				return fmt.Errorf("--farm flag is required")
			}

			ctx := context.Background()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			if _, err := a.farms.Load(ctx, shared.MustNewFarmID(farmFlag)); err != nil {
				if errors.Is(err, farm.ErrFarmNotFound) {
					return fmt.Errorf("farm %d not found", farmFlag)
				}
				return err
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaultFarm(farmFlag); err != nil {
				return fmt.Errorf("failed to set default farm: %w", err)
			}

			fmt.Printf("✓ Default farm set to %d\n", farmFlag)
			return nil
		},
	}
}

func newConfigClearFarmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-farm",
		Short: "Clear default farm setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaultFarm(); err != nil {
				return fmt.Errorf("failed to clear default farm: %w", err)
			}

			fmt.Println("✓ Default farm cleared")
			return nil
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
