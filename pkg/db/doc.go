// Package db connects to PostgreSQL through pgxpool and applies goose
// migrations from an fs.FS.
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := db.Migrate(ctx, pool, migrations, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
// Healthcheck and Shutdown return hooks for the application runtime.
package db
