package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gthulhu/schedsim/simulator/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (r *repo) InsertRun(ctx context.Context, run *domain.SimulationRun) error {
	if run == nil {
		return errors.New("nil simulation run")
	}
	if run.ID.IsZero() {
		run.ID = bson.NewObjectID()
	}
	if run.CreatedTime == 0 {
		run.CreatedTime = time.Now().UnixMilli()
	}

	res, err := r.db.Collection(runCollection).InsertOne(ctx, run)
	if err != nil {
		return fmt.Errorf("insert simulation run, err: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		run.ID = oid
	}
	return nil
}

func (r *repo) QueryRuns(ctx context.Context, opt *domain.QueryRunOptions) error {
	if opt == nil {
		return domain.ErrNilQueryInput
	}

	filter := bson.M{}
	if len(opt.RunIDs) > 0 {
		filter["runID"] = bson.M{"$in": opt.RunIDs}
	}
	if len(opt.Policies) > 0 {
		filter["policy"] = bson.M{"$in": opt.Policies}
	}
	if len(opt.WorkloadHashes) > 0 {
		filter["workloadHash"] = bson.M{"$in": opt.WorkloadHashes}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "createdTime", Value: -1}, {Key: "_id", Value: -1}})
	if opt.Limit > 0 {
		findOpts.SetLimit(int64(opt.Limit))
	}
	cursor, err := r.db.Collection(runCollection).Find(ctx, filter, findOpts)
	if err != nil {
		return fmt.Errorf("find simulation runs, err: %w", err)
	}

	var result []*domain.SimulationRun
	if err := cursor.All(ctx, &result); err != nil {
		return fmt.Errorf("decode simulation runs, err: %w", err)
	}
	opt.Result = result
	return nil
}

func (r *repo) DeleteRun(ctx context.Context, runID string) error {
	res, err := r.db.Collection(runCollection).DeleteOne(ctx, bson.M{"runID": runID})
	if err != nil {
		return fmt.Errorf("delete simulation run, err: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
