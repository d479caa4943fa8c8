package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/timeblock/internal/config"
	"github.com/fastygo/timeblock/internal/infrastructure/local"
	"github.com/fastygo/timeblock/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/timeblock/internal/infrastructure/postgres"
	"github.com/fastygo/timeblock/internal/services/lifecycle"
	"github.com/fastygo/timeblock/repository"
	boltRepo "github.com/fastygo/timeblock/repository/bolt"
	"github.com/fastygo/timeblock/repository/memory"
	pgRepo "github.com/fastygo/timeblock/repository/postgres"
	sqliteRepo "github.com/fastygo/timeblock/repository/sqlite"
)

type repositories struct {
	notes repository.NoteRepository
	tasks repository.TaskRepository
}

// openRepositories connects the configured storage driver, registering its
// shutdown hook and health probe.
func openRepositories(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, mon *monitor.Monitor, log *zap.Logger) (repositories, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg, log); err != nil {
			return repositories{}, fmt.Errorf("migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return repositories{}, fmt.Errorf("postgres: %w", err)
		}
		manager.Register("postgres", func(context.Context) error {
			pgInfra.Close(pool, log)
			return nil
		})
		mon.Register("storage", pgInfra.Probe(pool))
		return repositories{
			notes: pgRepo.NewNoteRepository(pool),
			tasks: pgRepo.NewTaskRepository(pool),
		}, nil

	case config.DriverSQLite:
		db, err := sqliteRepo.NewDB(cfg.Storage.SQLitePath, log)
		if err != nil {
			return repositories{}, fmt.Errorf("sqlite: %w", err)
		}
		manager.Register("sqlite", func(context.Context) error {
			return sqliteRepo.Close(db)
		})
		mon.Register("storage", func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
		log.Info("using sqlite storage", zap.String("path", cfg.Storage.SQLitePath))
		return repositories{
			notes: sqliteRepo.NewNoteRepository(db),
			tasks: sqliteRepo.NewTaskRepository(db),
		}, nil

	case config.DriverBolt:
		store, err := local.Open(cfg.Storage.BoltPath)
		if err != nil {
			return repositories{}, fmt.Errorf("bolt: %w", err)
		}
		manager.Register("bolt", func(context.Context) error {
			return store.Close()
		})
		mon.Register("storage", func(context.Context) error { return store.Ping() })
		log.Info("using bolt storage", zap.String("path", cfg.Storage.BoltPath))
		return repositories{
			notes: boltRepo.NewNoteRepository(store),
			tasks: boltRepo.NewTaskRepository(store),
		}, nil

	default:
		log.Warn("using in-memory storage, data is lost on exit")
		return repositories{
			notes: memory.NewNoteRepository(),
			tasks: memory.NewTaskRepository(),
		}, nil
	}
}
