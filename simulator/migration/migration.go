package migration

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/fx"
)

//go:embed mongo/*.json
var mongoMigrations embed.FS

type Params struct {
	fx.In
	StorageConfig config.StorageConfig
	MongoConfig   config.MongoDBConfig
}

// RunMongoMigration applies pending mongodb migrations. It does nothing for
// other storage drivers.
func RunMongoMigration(params Params) error {
	if params.StorageConfig.Driver != config.StorageMongoDB {
		return nil
	}
	m, err := newMongoMigrate(params.MongoConfig)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Logger(context.Background()).Info().Msg("mongodb schema is up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("run mongodb migration, err: %w", err)
	}
	version, _, _ := m.Version()
	logger.Logger(context.Background()).Info().Msgf("mongodb schema migrated to version %d", version)
	return nil
}

func newMongoMigrate(cfg config.MongoDBConfig) (*migrate.Migrate, error) {
	src, err := iofs.New(mongoMigrations, "mongo")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations, err: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.URI())
	if err != nil {
		return nil, fmt.Errorf("init mongodb migration, err: %w", err)
	}
	return m, nil
}
