package main

import (
	"errors"
	"log"
	"teamladder/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const migrationsURL = "file://resources/migrations"

func migrateUp() error {
	conf, err := config.NewFromUserConfigDir()
	if err != nil {
		return err
	}

	migrator, err := migrate.New(migrationsURL, "sqlite3://"+conf.DatabaseDSN)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Print("info: database schema is up to date")
			return nil
		}
		return err
	}

	version, _, err := migrator.Version()
	if err != nil {
		return err
	}
	log.Printf("info: database schema migrated to version %d", version)

	return nil
}
