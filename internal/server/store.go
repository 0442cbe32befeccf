package server

import (
	"context"
	"fmt"
	"time"

	"flowtasks/internal/config"
	"flowtasks/internal/repository"
	"flowtasks/internal/seed"
	"flowtasks/internal/service"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type stores struct {
	tasks repository.TaskStore
	lists repository.ListStore
	db    *gorm.DB
}

func openStores(cfg *config.Config) (stores, error) {
	switch cfg.StoreDriver {
	case "", "memory":
		log.Info().Msg("✅ Using in-memory store")
		return stores{
			tasks: repository.NewMemoryTaskStore(),
			lists: repository.NewMemoryListStore(),
		}, nil
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err != nil {
			return stores{}, fmt.Errorf("❌ failed to connect to DB: %w", err)
		}
		log.Info().Msg("✅ Connected to database")
		if err := repository.Migrate(db); err != nil {
			return stores{}, fmt.Errorf("❌ failed to migrate DB: %w", err)
		}
		return stores{
			tasks: repository.NewTaskRepository(db),
			lists: repository.NewListRepository(db),
			db:    db,
		}, nil
	default:
		return stores{}, fmt.Errorf("❌ unknown store driver %q", cfg.StoreDriver)
	}
}

// seedIfEmpty loads the sample data when no list exists yet. It runs
// without simulated latency.
func seedIfEmpty(ctx context.Context, s stores, opts service.Options) error {
	existing, err := s.lists.All(ctx)
	if err != nil {
		return fmt.Errorf("❌ failed to inspect store: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	data, err := seed.Default()
	if err != nil {
		return err
	}
	opts.Latency = service.Latency{}
	tasks, lists := service.New(s.tasks, s.lists, opts)
	if err := data.Apply(ctx, lists, tasks, time.Now()); err != nil {
		return fmt.Errorf("❌ failed to seed data: %w", err)
	}
	log.Info().Int("lists", len(data.Lists)).Int("tasks", len(data.Tasks)).Msg("✅ Seeded sample data")
	return nil
}
