package scheduler

// preemptive is an event driven engine. At every arrival or completion the
// running process is compared against the best ready one and yields the CPU
// only to a strictly better (key, arrival, id) tuple. SRTF keys on remaining
// time and preemptive priority on priority.
type preemptive struct {
	policy Policy
	key    keyFunc
}

func (s *preemptive) Policy() Policy {
	return s.policy
}

func (s *preemptive) Schedule(procs []*Process) (*Result, error) {
	records, err := arena(procs)
	if err != nil {
		return nil, err
	}
	pending := byArrival(records)
	ready := newReadyQueue(s.key, len(records))
	res := &Result{
		Policy:   s.policy,
		Finished: make([]Process, 0, len(records)),
	}

	var (
		now      Time
		segStart Time
		running  *Process
	)
	next := 0
	admit := func() {
		for next < len(pending) && pending[next].ArrivalTime <= now {
			ready.push(pending[next])
			next++
		}
	}
	release := func() {
		res.Segments = append(res.Segments, Segment{ProcessID: running.ID, Start: segStart, End: now})
		running.SectionFinishTime = now
	}

	for len(res.Finished) < len(records) {
		admit()
		if running == nil {
			if ready.Len() == 0 {
				if next >= len(pending) {
					invariant("%d processes unfinished with nothing pending", len(records)-len(res.Finished))
				}
				now = pending[next].ArrivalTime
				continue
			}
			running = ready.pop()
			running.dispatch(now)
			running.WaitingTime += now - running.SectionFinishTime
			segStart = now
		}

		event := now + running.RemainingTime
		if next < len(pending) && pending[next].ArrivalTime < event {
			event = pending[next].ArrivalTime
		}
		if event <= now {
			invariant("clock stalled at %s running %s", now, running.ID)
		}
		running.RemainingTime -= event - now
		now = event

		if running.RemainingTime == 0 {
			release()
			running.completeAccumulated(now)
			res.Finished = append(res.Finished, *running)
			running = nil
			continue
		}

		admit()
		if head := ready.peek(); head != nil && before(head, running, s.key) {
			release()
			ready.push(running)
			running = nil
		}
	}
	return res, nil
}
