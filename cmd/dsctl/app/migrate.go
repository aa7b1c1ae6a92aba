package app

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/datasource/pkg/config"
	"github.com/dmitrymomot/datasource/pkg/pg"
	"github.com/dmitrymomot/datasource/pkg/savedobjects"
)

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the saved_objects table in PostgreSQL",
		Long:  `Migrate applies the embedded goose migrations using PG_CONN_URL. It ignores --store.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load[pg.Config]()
			if err != nil {
				return err
			}
			pool, err := pg.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			c.log.Info("applying migrations")
			if err := pg.Migrate(ctx, pool, savedobjects.Migrations, savedobjects.MigrationsDir, cfg, c.log); err != nil {
				return err
			}
			c.log.Info("migrations applied")
			return nil
		},
	}
}
