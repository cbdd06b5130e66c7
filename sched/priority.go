package sched

import (
	"fmt"

	"github.com/edirooss/procsim/kernel"
)

// priorityQueuePolicy keeps the ready queue sorted by descending
// Priority, stable on ties so arrival (and front-push on reschedule)
// order is preserved within a priority bucket.
type priorityQueuePolicy struct {
	timeslice int
}

// NewPriorityQueue builds a priority-queue Scheduler: the highest
// Priority ready process is always dispatched next, ties broken by
// queue order, with the same fixed timeslice/minRemaining reschedule
// rule as round-robin.
func NewPriorityQueue(timeslice, minRemaining int) kernel.Scheduler {
	p := &priorityQueuePolicy{timeslice: timeslice}
	return newEngine(timeslice, minRemaining, p)
}

func (p *priorityQueuePolicy) reorderReady(ready []kernel.PCB) {
	insertionSortBy(ready, func(a, b kernel.PCB) bool {
		return a.Priority > b.Priority
	})
}

func (p *priorityQueuePolicy) freshQuantum(e *engine) int { return p.timeslice }

func (p *priorityQueuePolicy) chargeRunning(pcb *kernel.PCB, delta int) {}

func (p *priorityQueuePolicy) beforeFork(e *engine) {}

func (p *priorityQueuePolicy) childVRuntime() uint64 { return 0 }

func (p *priorityQueuePolicy) extra(pcb kernel.PCB) string {
	return fmt.Sprintf("priority=%d", pcb.Priority)
}
