package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations and legacy backfills, then exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		logger.Info("database migrated", "path", cfg.DatabasePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
