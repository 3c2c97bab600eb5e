package scheduler

import (
	"sort"

	"github.com/pkg/errors"
)

// Segment is one contiguous interval during which a process held the CPU.
type Segment struct {
	ProcessID string `json:"process_id" bson:"processID"`
	Start     Time   `json:"start_time" bson:"startTime"`
	End       Time   `json:"end_time" bson:"endTime"`
}

func (s Segment) Duration() Time {
	return s.End - s.Start
}

// Result is the outcome of one run. Finished is in completion order and
// Segments in dispatch order.
type Result struct {
	Policy   Policy    `json:"policy"`
	Quantum  Time      `json:"quantum,omitempty"`
	Finished []Process `json:"finished"`
	Segments []Segment `json:"segments"`
}

// Verify checks the timing identities of every finished process and that the
// segments tile each burst without overlapping one another.
func (r *Result) Verify() error {
	if r == nil || len(r.Finished) == 0 {
		return errors.Wrap(ErrInconsistentResult, "no finished process")
	}
	procs := make(map[string]*Process, len(r.Finished))
	for i := range r.Finished {
		p := &r.Finished[i]
		if p.TurnaroundTime != p.FinishTime-p.ArrivalTime {
			return errors.Wrapf(ErrInconsistentResult, "process %s turnaround %s != finish %s - arrival %s",
				p.ID, p.TurnaroundTime, p.FinishTime, p.ArrivalTime)
		}
		if p.WaitingTime != p.TurnaroundTime-p.BurstTime {
			return errors.Wrapf(ErrInconsistentResult, "process %s waiting %s != turnaround %s - burst %s",
				p.ID, p.WaitingTime, p.TurnaroundTime, p.BurstTime)
		}
		procs[p.ID] = p
	}
	if len(r.Segments) == 0 {
		return nil
	}

	ran := make(map[string]Time, len(procs))
	for _, s := range r.Segments {
		p, ok := procs[s.ProcessID]
		if !ok {
			return errors.Wrapf(ErrInconsistentResult, "segment for unknown process %s", s.ProcessID)
		}
		if s.End <= s.Start {
			return errors.Wrapf(ErrInconsistentResult, "empty segment [%s, %s) for %s", s.Start, s.End, s.ProcessID)
		}
		if s.Start < p.ArrivalTime || s.End > p.FinishTime {
			return errors.Wrapf(ErrInconsistentResult, "segment [%s, %s) of %s outside [%s, %s]",
				s.Start, s.End, s.ProcessID, p.ArrivalTime, p.FinishTime)
		}
		ran[s.ProcessID] += s.Duration()
	}
	for id, p := range procs {
		if ran[id] != p.BurstTime {
			return errors.Wrapf(ErrInconsistentResult, "process %s ran %s of burst %s", id, ran[id], p.BurstTime)
		}
	}

	ordered := make([]Segment, len(r.Segments))
	copy(ordered, r.Segments)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Start < ordered[i-1].End {
			return errors.Wrapf(ErrInconsistentResult, "segments [%s, %s) of %s and [%s, %s) of %s overlap",
				ordered[i-1].Start, ordered[i-1].End, ordered[i-1].ProcessID,
				ordered[i].Start, ordered[i].End, ordered[i].ProcessID)
		}
	}
	return nil
}

// Lookup returns the finished record of id.
func (r *Result) Lookup(id string) (Process, bool) {
	for _, p := range r.Finished {
		if p.ID == id {
			return p, true
		}
	}
	return Process{}, false
}
