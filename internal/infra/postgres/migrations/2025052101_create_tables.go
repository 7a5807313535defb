package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_movies.sql
var createMoviesSQL string

//go:embed 0002_create_leaderboard.sql
var createLeaderboardSQL string

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			if _, err := db.Exec(createMoviesSQL); err != nil {
				return err
			}
			_, err := db.Exec(createLeaderboardSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			if _, err := db.Exec(`DROP TABLE IF EXISTS leaderboard`); err != nil {
				return err
			}
			_, err := db.Exec(`DROP TABLE IF EXISTS movies`)
			return err
		},
	)
}
