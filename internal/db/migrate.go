package db

import (
	"database/sql"
	"errors"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"mesa-console/db/migrations"
)

// Migrate applies all up migrations for the PostgreSQL preference store at
// addr.
func Migrate(addr string) error {
	driver, err := iofs.New(migrations.Postgres, "postgres")
	if err != nil {
		return err
	}
	defer driver.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", driver, addr)
	if err != nil {
		return err
	}
	defer mg.Close()

	return apply(mg)
}

// MigrateSQLite applies all up migrations to an open SQLite database.
func MigrateSQLite(conn *sql.DB) error {
	target, err := sqlite.WithInstance(conn, &sqlite.Config{})
	if err != nil {
		return err
	}
	return migrateInstance(migrations.SQLite, "sqlite", target)
}

func migrateInstance(fsys fs.FS, dir string, target database.Driver) error {
	driver, err := iofs.New(fsys, dir)
	if err != nil {
		return err
	}
	defer driver.Close()

	mg, err := migrate.NewWithInstance("iofs", driver, dir, target)
	if err != nil {
		return err
	}

	return apply(mg)
}

func apply(mg *migrate.Migrate) error {
	_, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}

	if dirty {
		return errors.New("database is in dirty state")
	}

	if err = mg.Migrate(migrations.Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
