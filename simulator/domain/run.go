package domain

import (
	"github.com/Gthulhu/schedsim/report"
	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type BaseEntity struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"-"`
	CreatedTime int64         `bson:"createdTime,omitempty" json:"createdTime"`
}

// SimulationRun is one scheduled workload together with its report.
type SimulationRun struct {
	BaseEntity   `bson:",inline"`
	RunID        string                  `bson:"runID" json:"runID"`
	Policy       scheduler.Policy        `bson:"policy" json:"policy"`
	Quantum      scheduler.Time          `bson:"quantum,omitempty" json:"quantum,omitempty"`
	WorkloadHash string                  `bson:"workloadHash" json:"workloadHash"`
	Processes    []scheduler.ProcessSpec `bson:"processes" json:"processes"`
	Report       *report.Report          `bson:"report" json:"report"`
	Cached       bool                    `bson:"-" json:"cached"`
	Persisted    bool                    `bson:"-" json:"persisted"`
}

type QueryRunOptions struct {
	RunIDs         []string
	Policies       []scheduler.Policy
	WorkloadHashes []string
	// Limit caps the result, newest first. Zero means no limit.
	Limit  int
	Result []*SimulationRun
}

type SimulateRequest struct {
	Policy string
	// Quantum applies to Round-Robin only; nil selects the configured default.
	Quantum   *float64
	Processes []scheduler.ProcessSpec
	Persist   bool
}

type CompareRequest struct {
	Policies  []string
	Quantum   *float64
	Processes []scheduler.ProcessSpec
	Persist   bool
}

// Claims represents JWT token claims
type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}
