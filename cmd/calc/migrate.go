package main

import (
	"context"
	"database/sql"

	"github.com/graeme-hill/calcstuff-go/lib"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply history migrations to the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if a.cfg.History.DSN == "" {
				return errNoHistory
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			db, err := sql.Open("postgres", a.cfg.History.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			migrations, err := lib.HistoryMigrations()
			if err != nil {
				return err
			}

			applied, err := lib.RunMigrations(ctx, db, migrations)
			for _, name := range applied {
				a.logger.Info().Str("migration", name).Msg("applied")
			}
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				a.logger.Info().Msg("already up to date")
			}
			return nil
		},
	}
}
