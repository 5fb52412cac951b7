package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/manateeit/taxtools/internal/cli"
	"github.com/manateeit/taxtools/internal/config"
	"github.com/manateeit/taxtools/internal/storage"
)

func statementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statements",
		Short: "Work with stored statements",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List statements in the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := buildRegistry()
			if err != nil {
				return err
			}

			store, err := storage.New(config.DatabasePath(viper.GetViper()), reg)
			if err != nil {
				return fmt.Errorf("failed to open statement database: %w", err)
			}
			defer func() { _ = store.Close() }()

			statements, err := store.ListStatements(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Print(cli.RenderStatements(statements))
			return nil
		},
	})

	return cmd
}
