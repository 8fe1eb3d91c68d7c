package repository

import (
	"context"
	"fmt"

	"github.com/Rrens/skill-swap/internal/config"
	"github.com/Rrens/skill-swap/internal/domain"
	"github.com/Rrens/skill-swap/internal/repository/encrypted"
	"github.com/Rrens/skill-swap/internal/repository/memory"
	"github.com/Rrens/skill-swap/internal/repository/mongo"
	"github.com/Rrens/skill-swap/internal/repository/mysql"
	"github.com/Rrens/skill-swap/internal/repository/postgres"
	"github.com/Rrens/skill-swap/internal/repository/redis"
	"github.com/Rrens/skill-swap/internal/repository/s3store"
	"github.com/Rrens/skill-swap/internal/repository/sqlite"
	"github.com/Rrens/skill-swap/internal/security"
	"github.com/rs/zerolog/log"
)

// Open connects the key-value backend named by cfg.Storage.Driver, running
// schema migrations first when the backend needs them and auto-migrate is on.
func Open(ctx context.Context, cfg *config.Config) (domain.KVStore, error) {
	kv, err := open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Storage.EncryptionKey != "" {
		encryptor, err := security.NewEncryptorFromBase64(cfg.Storage.EncryptionKey)
		if err != nil {
			kv.Close()
			return nil, fmt.Errorf("invalid storage encryption key: %w", err)
		}
		kv = encrypted.Wrap(kv, encryptor)
	}

	log.Info().
		Str("driver", cfg.Storage.Driver).
		Bool("encrypted", cfg.Storage.EncryptionKey != "").
		Msg("Storage backend ready")

	return kv, nil
}

// Migrate applies schema migrations for SQL backends; other drivers need none
func Migrate(cfg *config.Config) error {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		return postgres.RunMigrations(cfg.Database.DSN())
	case config.DriverMySQL:
		return mysql.RunMigrations(cfg.MySQL.MigrateURL())
	default:
		log.Info().Str("driver", cfg.Storage.Driver).Msg("No migrations for storage driver")
		return nil
	}
}

func open(ctx context.Context, cfg *config.Config) (domain.KVStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.NewKVStore(), nil

	case config.DriverSQLite:
		return sqlite.NewKVStore(ctx, cfg.Storage.Path)

	case config.DriverPostgres:
		if cfg.Storage.AutoMigrate {
			if err := postgres.RunMigrations(cfg.Database.DSN()); err != nil {
				return nil, err
			}
		}
		return postgres.NewKVStore(ctx, cfg.Database)

	case config.DriverMySQL:
		if cfg.Storage.AutoMigrate {
			if err := mysql.RunMigrations(cfg.MySQL.MigrateURL()); err != nil {
				return nil, err
			}
		}
		return mysql.NewKVStore(ctx, cfg.MySQL)

	case config.DriverRedis:
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return redis.NewKVStore(client), nil

	case config.DriverMongo:
		return mongo.NewKVStore(ctx, cfg.Mongo)

	case config.DriverS3:
		return s3store.NewKVStore(ctx, cfg.S3)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
