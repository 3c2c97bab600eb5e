package cmd

import (
	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/Gthulhu/schedsim/simulator/client"
	"github.com/Gthulhu/schedsim/simulator/rest"
	"github.com/spf13/cobra"
)

func newSubmitCommand(opts *rootOptions) *cobra.Command {
	flags := &workloadFlags{}
	var (
		server   string
		policy   string
		policies []string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a workload to a remote simulator server",
		Long:  "Send a workload to a remote simulator server. With --policies the server compares them, otherwise it runs --policy.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, quantum, err := flags.load(cmd)
			if err != nil {
				return err
			}
			clientConfig := opts.cfg.Client
			if server != "" {
				clientConfig.ServerURL = server
			}
			sc := client.NewSimulatorClient(clientConfig)

			if len(policies) > 0 {
				cmp, err := sc.Compare(cmd.Context(), &rest.CompareSimulationRequest{
					Policies:  policies,
					Quantum:   quantum,
					Processes: w.Processes,
					Persist:   flags.persist,
				})
				if err != nil {
					return err
				}
				return writeComparison(cmd.OutOrStdout(), flags.output, cmp)
			}

			run, err := sc.Simulate(cmd.Context(), &rest.SimulationRequest{
				Policy:    policy,
				Quantum:   quantum,
				Processes: w.Processes,
				Persist:   flags.persist,
			})
			if err != nil {
				return err
			}
			return writeRun(cmd.OutOrStdout(), flags.output, run)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&server, "server", "", "override client.server_url")
	cmd.Flags().StringVarP(&policy, "policy", "p", string(scheduler.PolicyFCFS), "scheduling policy: "+policyNames())
	cmd.Flags().StringSliceVar(&policies, "policies", nil, "compare these policies instead of running one")
	return cmd
}
