// Package pg connects to PostgreSQL with pgx/v5 and applies goose
// migrations from an embedded file system.
//
//	cfg, err := config.Load[pg.Config]()
//	pool, err := pg.Connect(ctx, cfg)
//	defer pool.Close()
//
//	err = pg.Migrate(ctx, pool, savedobjects.Migrations, savedobjects.MigrationsDir, cfg, log)
//
// Connection settings come from PG_* environment variables; see Config.
// IsNotFoundError and IsDuplicateKeyError classify pgx errors.
package pg
