package main

import (
	"log"
	"teamladder/internal/back"
	"teamladder/internal/config"
)

// Discord server IDs are snowflakes, this one cannot collide with a real one.
const fixturesCommunityID = 1

func loadFixtures() error {
	conf, err := config.NewFromUserConfigDir()
	if err != nil {
		return err
	}

	b, err := back.New("sqlite3", back.SQLiteDSN(conf.DatabaseDSN))
	if err != nil {
		return err
	}
	defer b.Close()

	if err := b.LoadFixtures(fixturesCommunityID); err != nil {
		return err
	}

	log.Printf("info: fixtures loaded in community %d", fixturesCommunityID)
	return nil
}
