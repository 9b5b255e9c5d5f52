package main

import (
	"context"
	"time"

	authRepo "explorehub-backend/internal/auth/repository"
	tripRepo "explorehub-backend/internal/trip/repository"
	"explorehub-backend/pkg/config"
	"explorehub-backend/pkg/database"

	"github.com/samber/oops"
)

// stores groups the repositories of the configured driver with the hook
// that releases their connection.
type stores struct {
	users     authRepo.UserRepository
	favorites tripRepo.FavoriteFlightRepository
	close     func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, db, err := database.NewMongoConnection(ctx, cfg.MongoURI, cfg.DatabaseName, cfg.DBTimeout)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:     authRepo.NewMongoUserRepository(db),
			favorites: tripRepo.NewMongoFavoriteFlightRepository(db),
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
				defer cancel()
				_ = client.Disconnect(ctx)
			},
		}, nil

	case config.DriverPostgres:
		db, err := database.NewPostgresConnection(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:     authRepo.NewGormUserRepository(db),
			favorites: tripRepo.NewGormFavoriteFlightRepository(db),
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil

	case config.DriverMemory:
		return &stores{
			users:     authRepo.NewMemoryUserRepository(),
			favorites: tripRepo.NewMemoryFavoriteFlightRepository(),
			close:     func() {},
		}, nil
	}

	return nil, oops.Code("CONFIG_INVALID").With("driver", cfg.DBDriver).Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

func (s *stores) ensureIndexes(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.users.EnsureIndexes(ctx); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "user indexes").Wrap(err)
	}
	if err := s.favorites.EnsureIndexes(ctx); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "favorite flight indexes").Wrap(err)
	}
	return nil
}
