package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Manage users"}
	cmd.AddCommand(userCreateCmd())
	return cmd
}

func userCreateCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the initial user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, st, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()
			defer func() { _ = st.close() }()

			svc := newServices(st, cfg, nil)
			if err := svc.auth.CreateInitialUser(cmd.Context(), username, password); err != nil {
				return err
			}
			log.Info("user created", "username", username)
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password (at least 8 characters)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
