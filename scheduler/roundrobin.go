package scheduler

// roundRobin time-shares the CPU in slices of at most quantum.
type roundRobin struct {
	quantum Time
}

func (s *roundRobin) Policy() Policy {
	return PolicyRoundRobin
}

func (s *roundRobin) Schedule(procs []*Process) (*Result, error) {
	records, err := arena(procs)
	if err != nil {
		return nil, err
	}
	pending := byArrival(records)
	res := &Result{
		Policy:   PolicyRoundRobin,
		Quantum:  s.quantum,
		Finished: make([]Process, 0, len(records)),
	}

	queue := make([]*Process, 0, len(records))
	next := 0
	admit := func(upto Time) {
		for next < len(pending) && pending[next].ArrivalTime <= upto {
			queue = append(queue, pending[next])
			next++
		}
	}

	now := pending[0].ArrivalTime
	admit(now)
	for len(res.Finished) < len(records) {
		if len(queue) == 0 {
			if next >= len(pending) {
				invariant("%d processes unfinished with nothing pending", len(records)-len(res.Finished))
			}
			now = pending[next].ArrivalTime
			admit(now)
			continue
		}

		p := queue[0]
		queue[0] = nil
		queue = queue[1:]

		run := minTime(p.RemainingTime, s.quantum)
		p.dispatch(now)
		p.WaitingTime += now - p.SectionFinishTime
		res.Segments = append(res.Segments, Segment{ProcessID: p.ID, Start: now, End: now + run})
		p.RemainingTime -= run
		now += run
		p.SectionFinishTime = now

		// Arrivals during the slice queue up ahead of the process just run.
		admit(now)
		if p.RemainingTime == 0 {
			p.completeAccumulated(now)
			res.Finished = append(res.Finished, *p)
			continue
		}
		queue = append(queue, p)
	}
	return res, nil
}
