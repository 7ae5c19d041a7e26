package main

import (
	"github.com/folioshelf/internal/db"
	"github.com/spf13/cobra"
)

var createUserOpts struct {
	username string
	password string
	uid      string
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a login user with a bcrypt-hashed password",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, logger, err := bootstrap()
		if err != nil {
			return err
		}

		user, err := db.EnsureUser(createUserOpts.username, createUserOpts.password, createUserOpts.uid)
		if err != nil {
			return err
		}
		logger.Info("user ready", "username", user.Username, "uid", user.UID)
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVar(&createUserOpts.username, "username", "", "login name")
	createUserCmd.Flags().StringVar(&createUserOpts.password, "password", "", "login password")
	createUserCmd.Flags().StringVar(&createUserOpts.uid, "uid", "", "identity used as release owner (generated when empty)")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createUserCmd)
}
