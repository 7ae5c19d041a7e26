package main

import (
	"github.com/folioshelf/internal/db"
	"github.com/spf13/cobra"
)

var seedOwner string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo catalog rows for local testing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, logger, err := bootstrap()
		if err != nil {
			return err
		}

		release, err := db.Seed(db.DB, seedOwner)
		if err != nil {
			return err
		}
		logger.Info("demo data ready", "release", release.ID, "owner", release.OwnerID)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedOwner, "owner", "demo-owner", "uid that owns the demo release")
	rootCmd.AddCommand(seedCmd)
}
