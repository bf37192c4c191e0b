package migrations

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`
				CREATE TABLE IF NOT EXISTS board_states (
					slot TEXT PRIMARY KEY,
					data JSONB NOT NULL,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`DROP TABLE IF EXISTS board_states`)
			return err
		},
	)
}
