package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/Gthulhu/schedsim/pkg/tracing"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"github.com/Gthulhu/schedsim/simulator/migration"
	"github.com/Gthulhu/schedsim/simulator/rest"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const tracingServiceName = "schedsim"

func NewRestApp(configName string, configDirPath string) (*fx.App, error) {
	handlerModule, err := HandlerModule(configName, configDirPath)
	if err != nil {
		return nil, err
	}

	app := fx.New(
		handlerModule,
		fx.Invoke(StartTracing),
		fx.Invoke(migration.RunMongoMigration),
		fx.Invoke(CloseRepositoryOnStop),
		fx.Invoke(StartRestApp),
	)
	return app, nil
}

func StartRestApp(lc fx.Lifecycle, cfg config.ServerConfig, handler *rest.Handler) error {
	engine := echo.New()
	engine.HideBanner = true
	handler.SetupRoutes(engine)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverHost := cfg.Host
			if serverHost == "" {
				serverHost = ":8080"
			}
			go func() {
				logger.Logger(ctx).Info().Msgf("starting rest server on port %s", serverHost)
				if err := engine.Start(serverHost); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Logger(ctx).Fatal().Err(err).Msgf("start rest server fail on port %s", serverHost)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Logger(ctx).Info().Msg("shutting down rest server")
			return engine.Shutdown(ctx)
		},
	})

	return nil
}

// StartTracing installs the stdout span exporter when tracing is enabled.
func StartTracing(lc fx.Lifecycle, cfg config.TracingConfig) error {
	if !cfg.Enable {
		return nil
	}
	if err := tracing.Init(tracingServiceName, rest.ServiceVersion(), cfg.OutputFile); err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tracing.Shutdown(ctx)
		},
	})
	return nil
}

// CloseRepositoryOnStop releases repositories holding a connection.
func CloseRepositoryOnStop(lc fx.Lifecycle, repo domain.Repository) {
	closer, ok := repo.(interface{ Close(context.Context) error })
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return closer.Close(ctx)
		},
	})
}
