package scheduler

import (
	"strings"

	"github.com/pkg/errors"
)

// Policy names a scheduling discipline.
type Policy string

const (
	PolicyFCFS               Policy = "fcfs"
	PolicySJF                Policy = "sjf"
	PolicyPriority           Policy = "priority"
	PolicyRoundRobin         Policy = "rr"
	PolicySRTF               Policy = "srtf"
	PolicyPreemptivePriority Policy = "ppriority"
)

var policyAliases = map[string]Policy{
	"fcfs":                PolicyFCFS,
	"fifo":                PolicyFCFS,
	"sjf":                 PolicySJF,
	"priority":            PolicyPriority,
	"ps":                  PolicyPriority,
	"rr":                  PolicyRoundRobin,
	"round-robin":         PolicyRoundRobin,
	"srtf":                PolicySRTF,
	"ppriority":           PolicyPreemptivePriority,
	"preemptive-priority": PolicyPreemptivePriority,
}

// Policies lists every supported policy in a stable order.
func Policies() []Policy {
	return []Policy{
		PolicyFCFS,
		PolicySJF,
		PolicyPriority,
		PolicyRoundRobin,
		PolicySRTF,
		PolicyPreemptivePriority,
	}
}

// ParsePolicy resolves a policy name or alias, ignoring case and surrounding space.
func ParsePolicy(name string) (Policy, error) {
	p, ok := policyAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", errors.Wrapf(ErrUnknownPolicy, "%q", name)
	}
	return p, nil
}

// Preemptive reports whether the policy may take the CPU away from a running process.
func (p Policy) Preemptive() bool {
	switch p {
	case PolicyRoundRobin, PolicySRTF, PolicyPreemptivePriority:
		return true
	}
	return false
}

// UsesQuantum reports whether the policy needs a time quantum.
func (p Policy) UsesQuantum() bool {
	return p == PolicyRoundRobin
}

func (p Policy) String() string {
	return string(p)
}

// ParseQuantum converts a decimal quantum into Time.
func ParseQuantum(v float64) (Time, error) {
	q, err := ParseTime(v)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidQuantum, "%v", err)
	}
	if q <= 0 {
		return 0, errors.Wrapf(ErrInvalidQuantum, "quantum %s must be positive", q)
	}
	return q, nil
}

// Scheduler runs one policy over a workload. Implementations keep no state
// between calls and never modify the processes they are given.
type Scheduler interface {
	Policy() Policy
	Schedule(procs []*Process) (*Result, error)
}

type options struct {
	quantum Time
}

// Option configures New.
type Option func(*options)

// WithQuantum sets the Round-Robin time slice.
func WithQuantum(q Time) Option {
	return func(o *options) {
		o.quantum = q
	}
}

// New returns the engine implementing policy.
func New(policy Policy, opts ...Option) (Scheduler, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	switch policy {
	case PolicyFCFS:
		return &nonPreemptive{policy: policy, key: arrivalKey}, nil
	case PolicySJF:
		return &nonPreemptive{policy: policy, key: burstKey}, nil
	case PolicyPriority:
		return &nonPreemptive{policy: policy, key: priorityKey}, nil
	case PolicyRoundRobin:
		if o.quantum <= 0 {
			return nil, errors.Wrapf(ErrInvalidQuantum, "quantum %s must be positive", o.quantum)
		}
		return &roundRobin{quantum: o.quantum}, nil
	case PolicySRTF:
		return &preemptive{policy: policy, key: remainingKey}, nil
	case PolicyPreemptivePriority:
		return &preemptive{policy: policy, key: priorityKey}, nil
	}
	return nil, errors.Wrapf(ErrUnknownPolicy, "%q", string(policy))
}

// Run is a shorthand for New followed by Schedule.
func Run(policy Policy, procs []*Process, opts ...Option) (*Result, error) {
	s, err := New(policy, opts...)
	if err != nil {
		return nil, err
	}
	return s.Schedule(procs)
}
