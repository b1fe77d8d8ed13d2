package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/abgdnv/bgrs/internal/config"
	"github.com/abgdnv/bgrs/internal/inventory/app"
	"github.com/abgdnv/bgrs/pkg/bootstrap"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type options struct {
	ConfigFile string
	File       string
	AuditLog   string
	LogLevel   string
	Load       bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "bgrs",
		Short: "Inventory manager for perishable medical supplies",
		Long: `bgrs keeps an inventory of perishable supplies, saves it to a flat text file
and removes expired products before every action.

Without a subcommand it starts the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := setup(opts)
			if err != nil {
				return err
			}
			defer deps.InventoryService.Close()

			if opts.Load {
				if _, err := deps.InventoryService.Load(deps.Config.Storage.Path); err != nil {
					return err
				}
			}
			return app.SetupMenu(deps, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigFile, "config", "", "Path to the YAML config file (default config.yaml)")
	flags.StringVar(&opts.File, "file", "", "Inventory file, overrides storage.path")
	flags.StringVar(&opts.AuditLog, "audit-log", "", "Audit log file, overrides audit.path")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error), overrides log.level")
	root.Flags().BoolVar(&opts.Load, "load", false, "Load the inventory file before showing the menu")

	root.AddCommand(newListCommand(opts), newSweepCommand(opts))
	return root
}

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the saved inventory without expired products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := setup(opts)
			if err != nil {
				return err
			}
			defer deps.InventoryService.Close()

			if _, err := deps.InventoryService.Load(deps.Config.Storage.Path); err != nil {
				return err
			}
			deps.InventoryService.SweepExpired()
			for _, r := range deps.InventoryService.List() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d\t%.2f\n", r.ID, r.Name, r.Quantity, r.UnitPrice)
			}
			return nil
		},
	}
}

func newSweepCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove expired products from the saved inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := setup(opts)
			if err != nil {
				return err
			}
			defer deps.InventoryService.Close()

			path := deps.Config.Storage.Path
			if _, err := deps.InventoryService.Load(path); err != nil {
				return err
			}
			removed := deps.InventoryService.SweepExpired()
			if err := deps.InventoryService.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d expired product(s) removed\n", removed)
			return nil
		},
	}
}

// setup loads the configuration, applies flag overrides and builds the dependencies.
func setup(opts *options) (*app.Dependencies, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.File != "" {
		cfg.Storage.Path = opts.File
	}
	if opts.AuditLog != "" {
		cfg.Audit.Path = opts.AuditLog
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	sessionID := uuid.NewString()
	logger := bootstrap.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr).With("session_id", sessionID)
	slog.SetDefault(logger)
	logger.Debug("Configuration loaded", "config", cfg.String())

	return app.SetupDependencies(cfg, afero.NewOsFs(), sessionID, logger), nil
}
