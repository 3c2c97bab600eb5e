package cmd

import (
	"strings"

	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"github.com/Gthulhu/schedsim/simulator/rest"
	"github.com/Gthulhu/schedsim/workload"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// workloadFlags are shared by every command that schedules a workload.
type workloadFlags struct {
	location string
	format   string
	quantum  float64
	persist  bool
	output   string
}

func (f *workloadFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.location, "workload", "w", "", "workload file or URL (csv, json or yaml)")
	cmd.Flags().StringVar(&f.format, "format", "", "workload format, inferred from the extension when empty")
	cmd.Flags().Float64VarP(&f.quantum, "quantum", "q", 0, "round-robin quantum, overrides the workload's")
	cmd.Flags().BoolVar(&f.persist, "persist", false, "store the run in the configured repository")
	cmd.Flags().StringVarP(&f.output, "output", "o", outputText, "output format: text or json")
	_ = cmd.MarkFlagRequired("workload")
}

// load reads the workload and resolves the quantum. The flag wins over the
// workload file; nil leaves the choice to the service default.
func (f *workloadFlags) load(cmd *cobra.Command) (*workload.Workload, *float64, error) {
	if err := checkOutput(f.output); err != nil {
		return nil, nil, err
	}
	var format workload.Format
	if f.format != "" {
		parsed, err := workload.ParseFormat(f.format)
		if err != nil {
			return nil, nil, err
		}
		format = parsed
	}
	w, err := workload.Load(cmd.Context(), f.location, format)
	if err != nil {
		return nil, nil, err
	}
	quantum := w.Quantum
	if cmd.Flags().Changed("quantum") {
		quantum = &f.quantum
	}
	return w, quantum, nil
}

func newSimulateCommand(opts *rootOptions) *cobra.Command {
	flags := &workloadFlags{}
	var policy string
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Schedule a workload under one policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, quantum, err := flags.load(cmd)
			if err != nil {
				return err
			}
			svc, stop, err := opts.localService(cmd.Context())
			if err != nil {
				return err
			}
			defer stop()

			run, err := svc.Simulate(cmd.Context(), &domain.SimulateRequest{
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
	cmd.Flags().StringVarP(&policy, "policy", "p", string(scheduler.PolicyFCFS), "scheduling policy: "+policyNames())
	return cmd
}

func newCompareCommand(opts *rootOptions) *cobra.Command {
	flags := &workloadFlags{}
	var policies []string
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Schedule a workload under several policies and rank them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(policies) == 0 {
				return errors.New("at least one --policies entry is required")
			}
			w, quantum, err := flags.load(cmd)
			if err != nil {
				return err
			}
			svc, stop, err := opts.localService(cmd.Context())
			if err != nil {
				return err
			}
			defer stop()

			runs, err := svc.Compare(cmd.Context(), &domain.CompareRequest{
				Policies:  policies,
				Quantum:   quantum,
				Processes: w.Processes,
				Persist:   flags.persist,
			})
			if err != nil {
				return err
			}
			return writeComparison(cmd.OutOrStdout(), flags.output, &rest.CompareSimulationResponse{
				WorkloadHash: runs[0].WorkloadHash,
				Runs:         runs,
				Ranking:      rest.RankRuns(runs),
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&policies, "policies", strings.Split(policyNames(), ","), "policies to compare")
	return cmd
}

func policyNames() string {
	names := make([]string, 0, len(scheduler.Policies()))
	for _, p := range scheduler.Policies() {
		names = append(names, string(p))
	}
	return strings.Join(names, ",")
}
