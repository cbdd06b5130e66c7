package sched

import "github.com/edirooss/procsim/kernel"

// roundRobinPolicy hands every process the same fixed timeslice and
// never reorders the ready queue: arrival order (maintained by
// engine.pushReady) is the schedule.
type roundRobinPolicy struct {
	timeslice int
}

// NewRoundRobin builds a round-robin Scheduler: every dispatch gets
// timeslice units, and a process rescheduled after a syscall keeps its
// spot at the front of the queue only if at least minRemaining units
// were left in its quantum.
func NewRoundRobin(timeslice, minRemaining int) kernel.Scheduler {
	p := &roundRobinPolicy{timeslice: timeslice}
	return newEngine(timeslice, minRemaining, p)
}

func (p *roundRobinPolicy) reorderReady(ready []kernel.PCB) {}

func (p *roundRobinPolicy) freshQuantum(e *engine) int { return p.timeslice }

func (p *roundRobinPolicy) chargeRunning(pcb *kernel.PCB, delta int) {}

func (p *roundRobinPolicy) beforeFork(e *engine) {}

func (p *roundRobinPolicy) childVRuntime() uint64 { return 0 }

func (p *roundRobinPolicy) extra(pcb kernel.PCB) string { return "" }
