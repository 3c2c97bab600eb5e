package report

import (
	"sort"

	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/pkg/errors"
)

// IdleLabel marks timeline entries during which no process held the CPU.
const IdleLabel = "IDLE"

// ErrEmptyResult is returned when a result holds no finished process.
var ErrEmptyResult = errors.New("scheduling result has no finished process")

// Row is the per-process line of a report.
type Row struct {
	ProcessID      string         `json:"process_id" bson:"processID"`
	ArrivalTime    scheduler.Time `json:"arrival_time" bson:"arrivalTime"`
	BurstTime      scheduler.Time `json:"burst_time" bson:"burstTime"`
	Priority       int            `json:"priority" bson:"priority"`
	StartTime      scheduler.Time `json:"start_time" bson:"startTime"`
	FinishTime     scheduler.Time `json:"finish_time" bson:"finishTime"`
	WaitingTime    scheduler.Time `json:"waiting_time" bson:"waitingTime"`
	TurnaroundTime scheduler.Time `json:"turnaround_time" bson:"turnaroundTime"`
	ResponseTime   scheduler.Time `json:"response_time" bson:"responseTime"`
	Dispatches     int            `json:"dispatches" bson:"dispatches"`
}

// Entry is one interval of the timeline, either a dispatch or an idle gap.
type Entry struct {
	Label     string         `json:"label" bson:"label"`
	ProcessID string         `json:"process_id,omitempty" bson:"processID,omitempty"`
	Idle      bool           `json:"idle" bson:"idle"`
	Start     scheduler.Time `json:"start_time" bson:"startTime"`
	End       scheduler.Time `json:"end_time" bson:"endTime"`
}

// Breakpoint is a Gantt chart boundary: the label starting at Time.
// The terminal breakpoint carries an empty label.
type Breakpoint struct {
	Time  scheduler.Time `json:"time" bson:"time"`
	Label string         `json:"label" bson:"label"`
}

type Summary struct {
	AverageWaitingTime    float64        `json:"average_waiting_time" bson:"averageWaitingTime"`
	AverageTurnaroundTime float64        `json:"average_turnaround_time" bson:"averageTurnaroundTime"`
	AverageResponseTime   float64        `json:"average_response_time" bson:"averageResponseTime"`
	Makespan              scheduler.Time `json:"makespan" bson:"makespan"`
	BusyTime              scheduler.Time `json:"busy_time" bson:"busyTime"`
	IdleTime              scheduler.Time `json:"idle_time" bson:"idleTime"`
	CPUUtilization        float64        `json:"cpu_utilization" bson:"cpuUtilization"`
	Throughput            float64        `json:"throughput" bson:"throughput"`
	ContextSwitches       int            `json:"context_switches" bson:"contextSwitches"`
}

type Report struct {
	Policy          scheduler.Policy `json:"policy" bson:"policy"`
	Quantum         scheduler.Time   `json:"quantum,omitempty" bson:"quantum,omitempty"`
	Rows            []Row            `json:"rows" bson:"rows"`
	CompletionOrder []string         `json:"completion_order" bson:"completionOrder"`
	Timeline        []Entry          `json:"timeline" bson:"timeline"`
	Breakpoints     []Breakpoint     `json:"breakpoints" bson:"breakpoints"`
	Summary         Summary          `json:"summary" bson:"summary"`
}

// Build turns a scheduling result into rows, a timeline and summary figures.
func Build(res *scheduler.Result) (*Report, error) {
	if res == nil || len(res.Finished) == 0 {
		return nil, ErrEmptyResult
	}

	rep := &Report{
		Policy:          res.Policy,
		Quantum:         res.Quantum,
		Rows:            make([]Row, 0, len(res.Finished)),
		CompletionOrder: make([]string, 0, len(res.Finished)),
	}
	var waiting, turnaround, response scheduler.Time
	for _, p := range res.Finished {
		rep.Rows = append(rep.Rows, Row{
			ProcessID:      p.ID,
			ArrivalTime:    p.ArrivalTime,
			BurstTime:      p.BurstTime,
			Priority:       p.Priority,
			StartTime:      p.StartTime,
			FinishTime:     p.FinishTime,
			WaitingTime:    p.WaitingTime,
			TurnaroundTime: p.TurnaroundTime,
			ResponseTime:   p.ResponseTime,
			Dispatches:     p.Dispatches,
		})
		rep.CompletionOrder = append(rep.CompletionOrder, p.ID)
		waiting += p.WaitingTime
		turnaround += p.TurnaroundTime
		response += p.ResponseTime
	}
	sort.Slice(rep.Rows, func(i, j int) bool {
		return scheduler.CompareIDs(rep.Rows[i].ProcessID, rep.Rows[j].ProcessID) < 0
	})

	segments := res.Segments
	if len(segments) == 0 {
		segments = segmentsFromFinished(res.Finished)
	}
	rep.Timeline = timeline(segments)
	rep.Breakpoints = breakpoints(rep.Timeline)

	n := float64(len(res.Finished))
	rep.Summary = Summary{
		AverageWaitingTime:    waiting.Float64() / n,
		AverageTurnaroundTime: turnaround.Float64() / n,
		AverageResponseTime:   response.Float64() / n,
		ContextSwitches:       contextSwitches(rep.Timeline),
	}
	for _, e := range rep.Timeline {
		if e.Idle {
			rep.Summary.IdleTime += e.End - e.Start
			continue
		}
		rep.Summary.BusyTime += e.End - e.Start
	}
	if len(rep.Timeline) > 0 {
		rep.Summary.Makespan = rep.Timeline[len(rep.Timeline)-1].End
	}
	if rep.Summary.Makespan > 0 {
		rep.Summary.CPUUtilization = float64(rep.Summary.BusyTime) / float64(rep.Summary.Makespan)
		rep.Summary.Throughput = n / rep.Summary.Makespan.Float64()
	}
	return rep, nil
}

// segmentsFromFinished recovers one segment per process for results that
// only carry run-to-completion records.
func segmentsFromFinished(finished []scheduler.Process) []scheduler.Segment {
	segments := make([]scheduler.Segment, 0, len(finished))
	for _, p := range finished {
		segments = append(segments, scheduler.Segment{ProcessID: p.ID, Start: p.StartTime, End: p.FinishTime})
	}
	return segments
}

// timeline orders segments by start time and fills every gap from time zero
// with an idle entry. Adjacent segments of one process stay separate.
func timeline(segments []scheduler.Segment) []Entry {
	ordered := make([]scheduler.Segment, len(segments))
	copy(ordered, segments)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	entries := make([]Entry, 0, len(ordered)*2)
	var cursor scheduler.Time
	for _, s := range ordered {
		if s.Start > cursor {
			entries = append(entries, Entry{Label: IdleLabel, Idle: true, Start: cursor, End: s.Start})
		}
		entries = append(entries, Entry{Label: s.ProcessID, ProcessID: s.ProcessID, Start: s.Start, End: s.End})
		if s.End > cursor {
			cursor = s.End
		}
	}
	return entries
}

func breakpoints(entries []Entry) []Breakpoint {
	if len(entries) == 0 {
		return nil
	}
	points := make([]Breakpoint, 0, len(entries)+1)
	for _, e := range entries {
		points = append(points, Breakpoint{Time: e.Start, Label: e.Label})
	}
	return append(points, Breakpoint{Time: entries[len(entries)-1].End})
}

// contextSwitches counts hand-overs between different processes. A slice
// continued by the same process without a gap is not a switch.
func contextSwitches(entries []Entry) int {
	switches := 0
	last := ""
	for _, e := range entries {
		if e.Idle {
			continue
		}
		if last != "" && e.ProcessID != last {
			switches++
		}
		last = e.ProcessID
	}
	return switches
}
