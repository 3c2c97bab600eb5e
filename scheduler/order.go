package scheduler

import (
	"container/heap"
	"sort"
	"strings"
)

// CompareIDs orders process ids naturally: digit runs compare by numeric value,
// so "P2" sorts before "P10". Ids equal under that rule fall back to byte order.
func CompareIDs(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			si := i
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			sj := j
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[si:i], "0")
			nb := strings.TrimLeft(b[sj:j], "0")
			if len(na) != len(nb) {
				if len(na) < len(nb) {
					return -1
				}
				return 1
			}
			if c := strings.Compare(na, nb); c != 0 {
				return c
			}
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

type keyFunc func(p *Process) int64

func arrivalKey(p *Process) int64   { return int64(p.ArrivalTime) }
func burstKey(p *Process) int64     { return int64(p.BurstTime) }
func priorityKey(p *Process) int64  { return int64(p.Priority) }
func remainingKey(p *Process) int64 { return int64(p.RemainingTime) }

// before is the dispatch order: policy key, then arrival time, then id.
func before(a, b *Process, key keyFunc) bool {
	if ka, kb := key(a), key(b); ka != kb {
		return ka < kb
	}
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return CompareIDs(a.ID, b.ID) < 0
}

// byArrival returns pointers into records sorted by arrival time, then id.
func byArrival(records []Process) []*Process {
	pending := make([]*Process, len(records))
	for i := range records {
		pending[i] = &records[i]
	}
	sort.Slice(pending, func(i, j int) bool {
		return before(pending[i], pending[j], arrivalKey)
	})
	return pending
}

// readyQueue is a binary heap of arrived processes ordered by before.
type readyQueue struct {
	items []*Process
	key   keyFunc
}

func newReadyQueue(key keyFunc, capacity int) *readyQueue {
	return &readyQueue{items: make([]*Process, 0, capacity), key: key}
}

func (q *readyQueue) Len() int           { return len(q.items) }
func (q *readyQueue) Less(i, j int) bool { return before(q.items[i], q.items[j], q.key) }
func (q *readyQueue) Swap(i, j int)      { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *readyQueue) Push(x any) {
	q.items = append(q.items, x.(*Process))
}

func (q *readyQueue) Pop() any {
	n := len(q.items)
	p := q.items[n-1]
	q.items[n-1] = nil
	q.items = q.items[:n-1]
	return p
}

func (q *readyQueue) push(p *Process) {
	heap.Push(q, p)
}

func (q *readyQueue) pop() *Process {
	if len(q.items) == 0 {
		invariant("pop from an empty ready queue")
	}
	return heap.Pop(q).(*Process)
}

func (q *readyQueue) peek() *Process {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}
