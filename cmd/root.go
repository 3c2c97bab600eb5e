package cmd

import (
	"context"
	"os"

	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/Gthulhu/schedsim/simulator/app"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"github.com/Gthulhu/schedsim/simulator/migration"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// rootOptions carries the persistent flags and the configuration loaded from them.
type rootOptions struct {
	configName string
	configDir  string
	logLevel   string

	cfg config.SimulatorConfig
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "schedsim",
		Short:         "Single CPU scheduling simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configName, "config-name", "simulator_config", "config file name without extension")
	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "directory searched for the config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level")

	cmd.AddCommand(
		newSimulateCommand(opts),
		newCompareCommand(opts),
		newServeCommand(opts),
		newSubmitCommand(opts),
		newTokenCommand(opts),
	)
	return cmd
}

func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

func (opts *rootOptions) load() error {
	cfg, err := config.InitSimulatorConfig(opts.configName, opts.configDir)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if _, err := logger.InitLoggerWithConfig(cfg.Logging); err != nil {
		return err
	}
	opts.cfg = cfg
	return nil
}

// localService starts the service layer in process. The returned stop
// function releases the repository.
func (opts *rootOptions) localService(ctx context.Context) (domain.Service, func(), error) {
	var svc domain.Service
	fxApp := fx.New(
		app.ServiceModuleFrom(opts.cfg),
		fx.Invoke(migration.RunMongoMigration),
		fx.Invoke(app.CloseRepositoryOnStop),
		fx.Populate(&svc),
		fx.NopLogger,
	)
	if err := fxApp.Err(); err != nil {
		return nil, nil, err
	}
	if err := fxApp.Start(ctx); err != nil {
		return nil, nil, err
	}
	stop := func() {
		if err := fxApp.Stop(context.Background()); err != nil {
			logger.Logger(ctx).Warn().Err(err).Msg("stop local service")
		}
	}
	return svc, stop, nil
}
