package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/Gthulhu/schedsim/pkg/tracing"
	"github.com/Gthulhu/schedsim/pkg/util"
	"github.com/Gthulhu/schedsim/report"
	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// Simulate schedules req.Processes under req.Policy and returns the run.
func (svc *Service) Simulate(ctx context.Context, req *domain.SimulateRequest) (*domain.SimulationRun, error) {
	policy, err := scheduler.ParsePolicy(req.Policy)
	if err != nil {
		return nil, err
	}
	procs, err := svc.checkWorkload(req.Processes)
	if err != nil {
		svc.metricCollector.ObserveFailure(policy)
		return nil, err
	}
	quantum, err := svc.resolveQuantum(policy, req.Quantum)
	if err != nil {
		svc.metricCollector.ObserveFailure(policy)
		return nil, err
	}
	run, err := svc.simulate(ctx, policy, quantum, req.Processes, fingerprint(procs))
	if err != nil {
		return nil, err
	}
	if req.Persist {
		if err := svc.persist(ctx, run); err != nil {
			return nil, err
		}
	}
	return run, nil
}

// Compare runs the same workload under every requested policy concurrently.
// Runs are returned in request order.
func (svc *Service) Compare(ctx context.Context, req *domain.CompareRequest) ([]*domain.SimulationRun, error) {
	if len(req.Policies) == 0 {
		return nil, domain.ErrNoPolicy
	}
	policies := make([]scheduler.Policy, 0, len(req.Policies))
	quanta := make([]scheduler.Time, 0, len(req.Policies))
	for _, name := range req.Policies {
		policy, err := scheduler.ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		quantum, err := svc.resolveQuantum(policy, req.Quantum)
		if err != nil {
			return nil, err
		}
		policies = append(policies, policy)
		quanta = append(quanta, quantum)
	}
	procs, err := svc.checkWorkload(req.Processes)
	if err != nil {
		return nil, err
	}

	hash := fingerprint(procs)
	runs := make([]*domain.SimulationRun, len(policies))
	g, gctx := errgroup.WithContext(ctx)
	for i := range policies {
		i := i
		g.Go(func() error {
			run, err := svc.simulate(gctx, policies[i], quanta[i], req.Processes, hash)
			if err != nil {
				return err
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if req.Persist {
		for i, run := range runs {
			if err := svc.persist(ctx, run); err != nil {
				svc.rollback(ctx, runs[:i])
				return nil, err
			}
		}
	}
	return runs, nil
}

// rollback removes runs a failed Compare already stored.
func (svc *Service) rollback(ctx context.Context, runs []*domain.SimulationRun) {
	for _, run := range runs {
		if err := svc.Repo.DeleteRun(ctx, run.RunID); err != nil {
			logger.Logger(ctx).Warn().Err(err).Msgf("rollback of run %s failed", run.RunID)
			continue
		}
		run.Persisted = false
	}
}

// checkWorkload validates every process. Callers run it before any cache
// lookup.
func (svc *Service) checkWorkload(specs []scheduler.ProcessSpec) ([]*scheduler.Process, error) {
	if limit := svc.simConfig.MaxProcesses; limit > 0 && len(specs) > limit {
		return nil, errors.Wrapf(domain.ErrTooManyProcesses, "%d processes, limit %d", len(specs), limit)
	}
	return scheduler.NewProcesses(specs)
}

// resolveQuantum returns zero for policies without a quantum and the
// configured default when a Round-Robin request leaves it nil. An explicit
// value, zero included, is validated as given.
func (svc *Service) resolveQuantum(policy scheduler.Policy, requested *float64) (scheduler.Time, error) {
	if !policy.UsesQuantum() {
		return 0, nil
	}
	if requested == nil {
		return scheduler.ParseQuantum(svc.simConfig.DefaultQuantum)
	}
	return scheduler.ParseQuantum(*requested)
}

func (svc *Service) simulate(ctx context.Context, policy scheduler.Policy, quantum scheduler.Time, specs []scheduler.ProcessSpec, hash string) (run *domain.SimulationRun, err error) {
	ctx, span := tracing.StartSpan(ctx, "simulator.simulate",
		attribute.String("policy", policy.String()),
		attribute.Int("processes", len(specs)),
		attribute.String("workload_hash", hash),
	)
	defer func() { span.End(err) }()

	key := reportCacheKey(hash, policy, quantum)
	rep, hit := svc.cachedReport(key)
	span.SetAttributes(attribute.Bool("cached", hit))
	if !hit {
		rep, err = svc.schedule(policy, quantum, specs)
		if err != nil {
			svc.metricCollector.ObserveFailure(policy)
			logger.Logger(ctx).Warn().Err(err).Msgf("simulation with policy %s failed", policy)
			return nil, err
		}
		svc.storeReport(key, rep)
	}
	svc.metricCollector.ObserveRun(policy, rep)
	logger.Logger(ctx).Debug().Msgf("simulated %d processes with policy %s, makespan %s, cached %v", len(specs), policy, rep.Summary.Makespan, hit)

	return &domain.SimulationRun{
		BaseEntity:   domain.BaseEntity{CreatedTime: time.Now().UnixMilli()},
		RunID:        uuid.NewString(),
		Policy:       policy,
		Quantum:      quantum,
		WorkloadHash: hash,
		Processes:    append([]scheduler.ProcessSpec(nil), specs...),
		Report:       rep,
		Cached:       hit,
	}, nil
}

func (svc *Service) schedule(policy scheduler.Policy, quantum scheduler.Time, specs []scheduler.ProcessSpec) (*report.Report, error) {
	procs, err := scheduler.NewProcesses(specs)
	if err != nil {
		return nil, err
	}
	var opts []scheduler.Option
	if policy.UsesQuantum() {
		opts = append(opts, scheduler.WithQuantum(quantum))
	}
	res, err := scheduler.Run(policy, procs, opts...)
	if err != nil {
		return nil, err
	}
	if err := res.Verify(); err != nil {
		return nil, err
	}
	return report.Build(res)
}

func (svc *Service) persist(ctx context.Context, run *domain.SimulationRun) error {
	if err := svc.Repo.InsertRun(ctx, run); err != nil {
		return errors.WithMessagef(err, "persist run %s", run.RunID)
	}
	run.Persisted = true
	return nil
}

// ListRuns fills opt.Result with stored runs matching opt.
func (svc *Service) ListRuns(ctx context.Context, opt *domain.QueryRunOptions) error {
	if opt == nil {
		return domain.ErrNilQueryInput
	}
	return svc.Repo.QueryRuns(ctx, opt)
}

func (svc *Service) GetRun(ctx context.Context, runID string) (*domain.SimulationRun, error) {
	opt := &domain.QueryRunOptions{RunIDs: []string{runID}}
	if err := svc.Repo.QueryRuns(ctx, opt); err != nil {
		return nil, err
	}
	if len(opt.Result) == 0 {
		return nil, errors.Wrapf(domain.ErrNotFound, "run %s", runID)
	}
	run := opt.Result[0]
	run.Persisted = true
	return run, nil
}

func (svc *Service) DeleteRun(ctx context.Context, runID string) error {
	return svc.Repo.DeleteRun(ctx, runID)
}

// fingerprint identifies a validated workload independently of process order.
func fingerprint(procs []*scheduler.Process) string {
	sorted := append([]*scheduler.Process(nil), procs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return scheduler.CompareIDs(sorted[i].ID, sorted[j].ID) < 0
	})
	leaves := make([]string, 0, len(sorted))
	for _, p := range sorted {
		leaves = append(leaves, fmt.Sprintf("%s|%d|%d|%d", p.ID, int64(p.ArrivalTime), int64(p.BurstTime), p.Priority))
	}
	return util.MerkleRoot(leaves)
}

func reportCacheKey(hash string, policy scheduler.Policy, quantum scheduler.Time) string {
	return fmt.Sprintf("%s|%s|%d", hash, policy, quantum)
}
