// Package commands implements the strato CLI commands
package commands

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "strato",
	Short: "Strato - a compute instance API server",
	Long: `Strato serves a REST API for managing compute instances, their
metadata and snapshots. Complete documentation is available at
https://github.com/stratolab/strato`,
}

func init() {
	RootCmd.AddCommand(GetServeCmd())
}
