package postgres

import (
	"errors"

	"github.com/aussiebroadwan/noteful/internal/noteful/store/drivers/postgres/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// ApplyMigrations applies any pending migrations from the schema embedded in
// the binary. golang-migrate takes an advisory lock, so replicas starting
// together do not race.
func (s *Store) ApplyMigrations() error {
	driver, err := pgx.WithInstance(s.DB(), &pgx.Config{})
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return err
	}

	err = instance.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
