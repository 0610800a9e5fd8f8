package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	database "github.com/FACorreiaa/storefront-api/app/db"
	appLogger "github.com/FACorreiaa/storefront-api/app/logger"
	"github.com/FACorreiaa/storefront-api/config"
)

// runtime carries what every command needs once the root pre-run has finished.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewRootCommand() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("error loading .env: %w", err)
			}
			cfg, err := config.InitConfig()
			if err != nil {
				return fmt.Errorf("error initializing config: %w", err)
			}
			rt.cfg = &cfg
			rt.logger = appLogger.New(os.Stdout, cfg.IsDevelopment())
			slog.SetDefault(rt.logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), rt)
		},
	}

	root.AddCommand(
		newServeCommand(rt),
		newMigrateCommand(rt),
		newSeedAdminCommand(rt),
	)
	return root
}

// Execute runs the command tree; the API server is the default.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (rt *runtime) databaseURL() (*database.DatabaseConfig, error) {
	return database.NewDatabaseConfig(rt.cfg, rt.logger)
}
