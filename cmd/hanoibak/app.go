package main

import (
	"fmt"

	"hanoibak/internal/config"
	"hanoibak/internal/database"
	"hanoibak/internal/domain/contract"
	"hanoibak/internal/domain/service"
	"hanoibak/internal/notify"
	"hanoibak/internal/rsync"
	"hanoibak/internal/system"
	"hanoibak/migrator/sqlite"

	"github.com/rs/zerolog/log"
)

type app struct {
	db       *database.DB
	services *service.Instance
}

// openDatabase opens the catalog and brings its schema up to date.
func openDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := sqlite.Migrate(db.DB()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// buildApp wires the full backup stack: catalog, host capabilities, and
// services. Commands that only read the catalog use openDatabase instead,
// so they work on hosts without rsync installed.
func buildApp(cfg *config.Config) (*app, error) {
	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}

	syncer, err := rsync.New()
	if err != nil {
		db.Close()
		return nil, err
	}

	var notifier contract.Notifier = notify.NewNop()
	if cfg.SlackBotToken != "" {
		notifier = notify.NewSlack(cfg.SlackBotToken, cfg.SlackChannel)
	}

	dm := database.NewInstance(db)
	services := service.NewInstance(dm, system.NewMounter(), syncer, system.NewDisk(), notifier, cfg)

	return &app{
		db:       db,
		services: services,
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}
}
