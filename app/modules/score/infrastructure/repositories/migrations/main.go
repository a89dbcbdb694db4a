package scoremigrations

import "github.com/uptrace/bun/migrate"

// Migrations is a collection of score module migrations.
var Migrations = migrate.NewMigrations()

func init() {
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
