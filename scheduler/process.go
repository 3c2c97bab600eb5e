package scheduler

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// ProcessSpec describes one process of a workload in decimal time units.
type ProcessSpec struct {
	ID          string  `json:"id" yaml:"id" bson:"id"`
	ArrivalTime float64 `json:"arrival" yaml:"arrival" bson:"arrival"`
	BurstTime   float64 `json:"burst" yaml:"burst" bson:"burst"`
	Priority    int     `json:"priority" yaml:"priority" bson:"priority"`
}

// UnmarshalJSON accepts the id as a JSON string or number.
func (spec *ProcessSpec) UnmarshalJSON(data []byte) error {
	type plain ProcessSpec
	aux := struct {
		*plain
		ID ProcessID `json:"id"`
	}{plain: (*plain)(spec)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	spec.ID = string(aux.ID)
	return nil
}

// ProcessID is a process id decoded from either a string or a number.
type ProcessID string

func (id *ProcessID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProcessID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Errorf("process id %s is neither a string nor a number", string(data))
	}
	*id = ProcessID(n.String())
	return nil
}

// Process holds the identity and scheduling state of a simulated process.
type Process struct {
	ID                string `json:"id"`
	ArrivalTime       Time   `json:"arrival_time"`
	BurstTime         Time   `json:"burst_time"`
	RemainingTime     Time   `json:"remaining_time"`
	Priority          int    `json:"priority"`
	WaitingTime       Time   `json:"waiting_time"`
	TurnaroundTime    Time   `json:"turnaround_time"`
	FinishTime        Time   `json:"finish_time"`
	StartTime         Time   `json:"start_time"`
	ResponseTime      Time   `json:"response_time"`
	SectionFinishTime Time   `json:"section_finish_time"`
	Dispatches        int    `json:"dispatches"`
}

// NewProcess validates spec and returns a process ready to be scheduled.
func NewProcess(spec ProcessSpec) (*Process, error) {
	if spec.ID == "" {
		return nil, errors.Wrap(ErrInvalidProcessParameters, "process id is empty")
	}
	arrival, err := ParseTime(spec.ArrivalTime)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidProcessParameters, "process %s arrival: %v", spec.ID, err)
	}
	burst, err := ParseTime(spec.BurstTime)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidProcessParameters, "process %s burst: %v", spec.ID, err)
	}
	p := &Process{
		ID:                spec.ID,
		ArrivalTime:       arrival,
		BurstTime:         burst,
		RemainingTime:     burst,
		Priority:          spec.Priority,
		SectionFinishTime: arrival,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewProcesses builds one process per spec and rejects duplicate ids.
func NewProcesses(specs []ProcessSpec) ([]*Process, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyWorkload
	}
	procs := make([]*Process, 0, len(specs))
	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		p, err := NewProcess(spec)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[p.ID]; dup {
			return nil, errors.Wrapf(ErrInvalidProcessParameters, "duplicate process id %s", p.ID)
		}
		seen[p.ID] = struct{}{}
		procs = append(procs, p)
	}
	return procs, nil
}

// Spec returns the descriptor the process was built from.
func (p *Process) Spec() ProcessSpec {
	return ProcessSpec{
		ID:          p.ID,
		ArrivalTime: p.ArrivalTime.Float64(),
		BurstTime:   p.BurstTime.Float64(),
		Priority:    p.Priority,
	}
}

func (p *Process) validate() error {
	switch {
	case p.ID == "":
		return errors.Wrap(ErrInvalidProcessParameters, "process id is empty")
	case p.ArrivalTime < 0:
		return errors.Wrapf(ErrInvalidProcessParameters, "process %s arrival time %s is negative", p.ID, p.ArrivalTime)
	case p.BurstTime <= 0:
		return errors.Wrapf(ErrInvalidProcessParameters, "process %s burst time %s must be positive", p.ID, p.BurstTime)
	case p.Priority < 0:
		return errors.Wrapf(ErrInvalidProcessParameters, "process %s priority %d is negative", p.ID, p.Priority)
	}
	return nil
}

// dispatch marks p as holding the CPU from now on.
func (p *Process) dispatch(now Time) {
	if p.Dispatches == 0 {
		p.StartTime = now
		p.ResponseTime = now - p.ArrivalTime
	}
	p.Dispatches++
}

// complete fills the derived metrics of a process that finished at now.
func (p *Process) complete(now Time) {
	p.FinishTime = now
	p.TurnaroundTime = p.FinishTime - p.ArrivalTime
	p.WaitingTime = p.TurnaroundTime - p.BurstTime
	p.SectionFinishTime = now
}

// completeAccumulated finishes a preempted process whose waiting time was
// summed across dispatches and checks the sum against the closed form.
func (p *Process) completeAccumulated(now Time) {
	waited := p.WaitingTime
	p.complete(now)
	if waited != p.WaitingTime {
		invariant("process %s accumulated waiting %s, expected %s", p.ID, waited, p.WaitingTime)
	}
}

// arena copies procs into engine owned records with reset scheduling state.
func arena(procs []*Process) ([]Process, error) {
	if len(procs) == 0 {
		return nil, ErrEmptyWorkload
	}
	records := make([]Process, len(procs))
	seen := make(map[string]struct{}, len(procs))
	for i, p := range procs {
		if p == nil {
			return nil, errors.Wrapf(ErrInvalidProcessParameters, "process at index %d is nil", i)
		}
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[p.ID]; dup {
			return nil, errors.Wrapf(ErrInvalidProcessParameters, "duplicate process id %s", p.ID)
		}
		seen[p.ID] = struct{}{}
		records[i] = Process{
			ID:                p.ID,
			ArrivalTime:       p.ArrivalTime,
			BurstTime:         p.BurstTime,
			RemainingTime:     p.BurstTime,
			Priority:          p.Priority,
			SectionFinishTime: p.ArrivalTime,
		}
	}
	return records, nil
}
