package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratolab/strato/config"
	"github.com/stratolab/strato/internal/app"
	"github.com/stratolab/strato/internal/db"
	"github.com/stratolab/strato/internal/logger"
)

// flag names
const (
	flagPort = "port"
)

// GetServeCmd returns the serve command
func GetServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger.Initialize()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			if port, err := cmd.Flags().GetString(flagPort); err == nil && port != "" {
				cfg.Port = port
			}

			database, err := db.New(cfg.DB)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}

			application := app.New(cfg, database)
			logger.Infof("Starting API on port %s", cfg.Port)
			return application.Listen(":" + cfg.Port)
		},
	}

	cmd.Flags().StringP(flagPort, "p", "", "Port to listen on (overrides PORT)")
	return cmd
}
