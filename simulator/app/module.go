package app

import (
	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"github.com/Gthulhu/schedsim/simulator/repository"
	"github.com/Gthulhu/schedsim/simulator/rest"
	"github.com/Gthulhu/schedsim/simulator/service"
	"go.uber.org/fx"
)

func ConfigModule(configName string, configPath string) (fx.Option, error) {
	cfg, err := config.InitSimulatorConfig(configName, configPath)
	if err != nil {
		return nil, err
	}
	return ConfigModuleFrom(cfg), nil
}

// ConfigModuleFrom provides cfg and each of its sections.
func ConfigModuleFrom(cfg config.SimulatorConfig) fx.Option {
	return fx.Options(
		fx.Provide(func() config.SimulatorConfig {
			return cfg
		}),
		fx.Provide(func(simCfg config.SimulatorConfig) config.ServerConfig {
			return simCfg.Server
		}),
		fx.Provide(func(simCfg config.SimulatorConfig) config.StorageConfig {
			return simCfg.Storage
		}),
		fx.Provide(func(simCfg config.SimulatorConfig) config.MongoDBConfig {
			return simCfg.MongoDB
		}),
		fx.Provide(func(simCfg config.SimulatorConfig) config.TokenConfig {
			return simCfg.Token
		}),
		fx.Provide(func(simCfg config.SimulatorConfig) config.CacheConfig {
			return simCfg.Cache
		}),
		fx.Provide(func(simCfg config.SimulatorConfig) config.TracingConfig {
			return simCfg.Tracing
		}),
		fx.Provide(func(simCfg config.SimulatorConfig) config.SimulationConfig {
			return simCfg.Simulation
		}),
	)
}

// RepoModule creates an Fx module that provides the repository layer, return domain.Repository
func RepoModule(configName string, configPath string) (fx.Option, error) {
	configModule, err := ConfigModule(configName, configPath)
	if err != nil {
		return nil, err
	}

	return fx.Options(
		configModule,
		fx.Provide(repository.NewRepository),
	), nil
}

// ServiceModule creates an Fx module that provides the service layer, return domain.Service
func ServiceModule(configName string, configPath string) (fx.Option, error) {
	repoModule, err := RepoModule(configName, configPath)
	if err != nil {
		return nil, err
	}

	return fx.Options(
		repoModule,
		serviceProviders(),
	), nil
}

// ServiceModuleFrom is ServiceModule for an already loaded configuration.
func ServiceModuleFrom(cfg config.SimulatorConfig) fx.Option {
	return fx.Options(
		ConfigModuleFrom(cfg),
		fx.Provide(repository.NewRepository),
		serviceProviders(),
	)
}

func serviceProviders() fx.Option {
	return fx.Provide(
		service.NewService,
		func(svc *service.Service) domain.Service { return svc },
	)
}

// HandlerModule creates an Fx module that provides the REST handler, return *rest.Handler
func HandlerModule(configName string, configPath string) (fx.Option, error) {
	serviceModule, err := ServiceModule(configName, configPath)
	if err != nil {
		return nil, err
	}

	return fx.Options(
		serviceModule,
		fx.Provide(rest.NewHandler),
	), nil
}
