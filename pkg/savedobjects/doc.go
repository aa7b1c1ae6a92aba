// Package savedobjects models the records the client pool reads: typed
// objects with raw JSON attributes and references to other objects.
//
// Getter is the only interface the pool depends on. The package ships
// adapters over an in-memory map, PostgreSQL (pgx), MongoDB and Redis; each
// maps its driver's "no rows" condition to ErrNotFound and wraps other
// driver errors with ErrStoreFailure.
//
// The PostgreSQL schema lives in Migrations and is applied with pg.Migrate:
//
//	err := pg.Migrate(ctx, pool, savedobjects.Migrations, savedobjects.MigrationsDir, cfg, log)
//	store := savedobjects.NewPostgresStore(pool)
//
// WithLogging wraps any Getter with debug logging of reads.
package savedobjects
