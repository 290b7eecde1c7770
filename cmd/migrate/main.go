package main

import (
	"errors"
	"flag"
	"strconv"

	"bed-admission-service/cmd/bootstrap"
	"bed-admission-service/config"
	"bed-admission-service/internal/infrastructure/database"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"
)

const usage = "usage: migrate [up|down|version|force <version>]"

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := bootstrap.NewLogger(cfg.App.LogLevel)

	db, err := database.NewPostgresConnection(cfg.DB, log, cfg.App.Timezone)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	m, err := database.NewMigrator(db)
	if err != nil {
		log.Fatalf("Failed to create migrator: %v", err)
	}
	defer func() { _, _ = m.Close() }()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "force":
		version, convErr := strconv.Atoi(flag.Arg(1))
		if convErr != nil {
			log.Fatalf("Invalid version %q: %s", flag.Arg(1), usage)
		}
		err = m.Force(version)
	case "version":
	default:
		log.Fatal(usage)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("Migration %s failed: %v", command, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatalf("Failed to read schema version: %v", err)
	}
	log.WithFields(logrus.Fields{"command": command, "version": version, "dirty": dirty}).Info("Migration complete")
}
