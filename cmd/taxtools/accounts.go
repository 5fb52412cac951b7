package main

import (
	"github.com/spf13/cobra"

	"github.com/manateeit/taxtools/internal/cli"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Work with the account registry",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List known accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := buildRegistry()
			if err != nil {
				return err
			}
			cmd.Print(cli.RenderAccounts(reg.Accounts()))
			return nil
		},
	})

	return cmd
}
