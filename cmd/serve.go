package cmd

import (
	"github.com/Gthulhu/schedsim/simulator/app"
	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the simulator REST API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			restApp, err := app.NewRestApp(opts.configName, opts.configDir)
			if err != nil {
				return err
			}
			restApp.Run()
			return nil
		},
	}
}
