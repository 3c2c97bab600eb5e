package scheduler

// nonPreemptive runs each selected process to completion. FCFS, SJF and
// Priority differ only in the key used to pick among arrived processes.
type nonPreemptive struct {
	policy Policy
	key    keyFunc
}

func (s *nonPreemptive) Policy() Policy {
	return s.policy
}

func (s *nonPreemptive) Schedule(procs []*Process) (*Result, error) {
	records, err := arena(procs)
	if err != nil {
		return nil, err
	}
	pending := byArrival(records)
	ready := newReadyQueue(s.key, len(records))
	res := &Result{
		Policy:   s.policy,
		Finished: make([]Process, 0, len(records)),
		Segments: make([]Segment, 0, len(records)),
	}

	var now Time
	next := 0
	for len(res.Finished) < len(records) {
		for next < len(pending) && pending[next].ArrivalTime <= now {
			ready.push(pending[next])
			next++
		}
		if ready.Len() == 0 {
			if next >= len(pending) {
				invariant("%d processes unfinished with nothing pending", len(records)-len(res.Finished))
			}
			now = pending[next].ArrivalTime
			continue
		}

		p := ready.pop()
		p.dispatch(now)
		end := now + p.BurstTime
		res.Segments = append(res.Segments, Segment{ProcessID: p.ID, Start: now, End: end})
		now = end
		p.complete(now)
		res.Finished = append(res.Finished, *p)
	}
	return res, nil
}
