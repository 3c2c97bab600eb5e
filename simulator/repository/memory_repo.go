package repository

import (
	"context"
	"errors"
	"slices"
	"sort"
	"time"

	"github.com/Gthulhu/schedsim/pkg/util"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// memoryRepo keeps runs in process memory, keyed by run id.
type memoryRepo struct {
	runs *util.GenericMap[string, *domain.SimulationRun]
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{runs: util.NewGenericMap[string, *domain.SimulationRun]()}
}

func (r *memoryRepo) InsertRun(ctx context.Context, run *domain.SimulationRun) error {
	if run == nil {
		return errors.New("nil simulation run")
	}
	if run.ID.IsZero() {
		run.ID = bson.NewObjectID()
	}
	if run.CreatedTime == 0 {
		run.CreatedTime = time.Now().UnixMilli()
	}
	stored := *run
	if _, loaded := r.runs.LoadOrStore(run.RunID, &stored); loaded {
		return errors.New("duplicate run id " + run.RunID)
	}
	return nil
}

func (r *memoryRepo) QueryRuns(ctx context.Context, opt *domain.QueryRunOptions) error {
	if opt == nil {
		return domain.ErrNilQueryInput
	}
	result := r.runs.Values(func(run *domain.SimulationRun) bool {
		if len(opt.RunIDs) > 0 && !slices.Contains(opt.RunIDs, run.RunID) {
			return false
		}
		if len(opt.Policies) > 0 && !slices.Contains(opt.Policies, run.Policy) {
			return false
		}
		if len(opt.WorkloadHashes) > 0 && !slices.Contains(opt.WorkloadHashes, run.WorkloadHash) {
			return false
		}
		return true
	})
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedTime != result[j].CreatedTime {
			return result[i].CreatedTime > result[j].CreatedTime
		}
		return result[i].ID.Hex() > result[j].ID.Hex()
	})
	if opt.Limit > 0 && len(result) > opt.Limit {
		result = result[:opt.Limit]
	}
	for i, run := range result {
		copied := *run
		result[i] = &copied
	}
	opt.Result = result
	return nil
}

func (r *memoryRepo) DeleteRun(ctx context.Context, runID string) error {
	if _, loaded := r.runs.LoadAndDelete(runID); !loaded {
		return domain.ErrNotFound
	}
	return nil
}
