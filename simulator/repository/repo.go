package repository

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"time"

	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/fx"
)

const (
	runCollection  = "simulation_runs"
	connectTimeout = 10 * time.Second
)

type Params struct {
	fx.In
	StorageConfig config.StorageConfig
	MongoConfig   config.MongoDBConfig
}

// NewRepository returns the run store selected by StorageConfig.Driver.
func NewRepository(params Params) (domain.Repository, error) {
	switch params.StorageConfig.Driver {
	case "", config.StorageMemory:
		return newMemoryRepo(), nil
	case config.StorageMongoDB:
		return newMongoRepo(params.MongoConfig)
	}
	return nil, fmt.Errorf("unsupported storage driver %q", params.StorageConfig.Driver)
}

type repo struct {
	client *mongo.Client
	db     *mongo.Database
}

func newMongoRepo(cfg config.MongoDBConfig) (*repo, error) {
	opts := options.Client().ApplyURI(cfg.URI())
	if ca := cfg.CAPem.Value(); ca != "" {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM([]byte(ca)) {
			return nil, fmt.Errorf("mongodb ca_pem contains no certificate")
		}
		opts.SetTLSConfig(&tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12})
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb, err: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb %s:%s, err: %w", cfg.Host, cfg.Port, err)
	}
	logger.Logger(ctx).Info().Msgf("connected to mongodb %s:%s database %s", cfg.Host, cfg.Port, cfg.Database)
	return &repo{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

// Close disconnects the mongodb client.
func (r *repo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
