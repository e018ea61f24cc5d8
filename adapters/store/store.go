// Package store opens the user and profile repositories selected by
// db.driver.
package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/profile-playground/adapters/memory"
	"github.com/khoahotran/profile-playground/adapters/mongodb"
	"github.com/khoahotran/profile-playground/adapters/persistence"
	"github.com/khoahotran/profile-playground/internal/config"
	"github.com/khoahotran/profile-playground/internal/domain/profile"
	"github.com/khoahotran/profile-playground/internal/domain/user"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

type Store struct {
	Users    user.Repository
	Profiles profile.Repository
	closeFn  func()
}

func (s *Store) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

func Open(ctx context.Context, cfg config.Config, log logger.Logger) (*Store, error) {
	log.Info("Opening store", zap.String("driver", cfg.DB.Driver))

	switch cfg.DB.Driver {
	case config.DriverPostgres, "":
		pool, err := persistence.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &Store{
			Users:    persistence.NewPostgresUserRepo(pool, log),
			Profiles: persistence.NewPostgresProfileRepo(pool, log),
			closeFn:  pool.Close,
		}, nil

	case config.DriverMongo:
		client, db, err := mongodb.NewClient(cfg, log)
		if err != nil {
			return nil, err
		}
		s := &Store{
			Users:    mongodb.NewUserRepo(db),
			Profiles: mongodb.NewProfileRepo(db),
			closeFn: func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := client.Disconnect(shutdownCtx); err != nil {
					log.Error("Failed to disconnect MongoDB", err)
				}
			},
		}

		if err := s.Users.(*mongodb.UserRepo).EnsureIndexes(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("ensure user indexes: %w", err)
		}
		if err := s.Profiles.(*mongodb.ProfileRepo).EnsureIndexes(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("ensure profile indexes: %w", err)
		}
		return s, nil

	case config.DriverMemory:
		log.Warn("Using in-memory store, data is lost on restart")
		return &Store{
			Users:    memory.NewUserRepo(),
			Profiles: memory.NewProfileRepo(),
		}, nil

	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DB.Driver)
	}
}
