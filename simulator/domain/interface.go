package domain

import (
	"context"
)

type Repository interface {
	InsertRun(ctx context.Context, run *SimulationRun) error
	QueryRuns(ctx context.Context, opt *QueryRunOptions) error
	DeleteRun(ctx context.Context, runID string) error
}

type Service interface {
	Simulate(ctx context.Context, req *SimulateRequest) (*SimulationRun, error)
	Compare(ctx context.Context, req *CompareRequest) ([]*SimulationRun, error)
	ListRuns(ctx context.Context, opt *QueryRunOptions) error
	GetRun(ctx context.Context, runID string) (*SimulationRun, error)
	DeleteRun(ctx context.Context, runID string) error

	TokenEnabled() bool
	IssueToken(ctx context.Context, clientID string, publicKeyPEM string) (token string, expiredAt int64, err error)
	VerifyToken(ctx context.Context, tokenString string) (Claims, error)
}
