package sched

import (
	"fmt"

	"github.com/edirooss/procsim/kernel"
)

// cfsPolicy is a miniature completely-fair scheduler: the ready queue
// is ordered by ascending VRuntime, the running process accrues
// VRuntime at the same rate it accrues Execute time, and new children
// are born at the minimum VRuntime among all live processes (ready,
// waiting and running) so they don't get starved by processes that have run for a long time
// nor flood the CPU ahead of everyone else.
type cfsPolicy struct {
	cpuTime      int
	minChildVRT  uint64
	haveChildVRT bool
}

// NewCFS builds a CFS Scheduler. cpuTime is the nominal per-dispatch
// budget used to derive a fresh quantum from the current ready-queue
// length; minRemaining is the same front/back reschedule threshold
// used by the other policies.
func NewCFS(cpuTime, minRemaining int) kernel.Scheduler {
	p := &cfsPolicy{cpuTime: cpuTime}
	return newEngine(cpuTime, minRemaining, p)
}

func (p *cfsPolicy) reorderReady(ready []kernel.PCB) {
	insertionSortBy(ready, func(a, b kernel.PCB) bool {
		return a.VRuntime < b.VRuntime
	})
}

// freshQuantum spreads cpuTime over the ready queue. Every caller runs
// it after the in-flight transition has placed its processes: on
// expiry, and on a back-of-queue reschedule after Fork or Signal, the
// requeued process is already in the queue; after Sleep, Wait or Exit
// the stopped process has already left it. An empty queue gets the
// whole cpuTime.
func (p *cfsPolicy) freshQuantum(e *engine) int {
	n := len(e.ready)
	if n == 0 {
		return p.cpuTime
	}
	return p.cpuTime / n
}

func (p *cfsPolicy) chargeRunning(pcb *kernel.PCB, delta int) {
	pcb.VRuntime += uint64(delta)
}

// beforeFork snapshots the minimum VRuntime among all live processes —
// ready, waiting, and current — so the about-to-be-minted child is
// born there, not at zero. Omitting waiting processes would let a
// sleeping/blocked sibling with a lower vruntime be skipped, handing
// the new child an unfairly high starting point.
func (p *cfsPolicy) beforeFork(e *engine) {
	p.haveChildVRT = false
	consider := func(v uint64) {
		if !p.haveChildVRT || v < p.minChildVRT {
			p.minChildVRT = v
			p.haveChildVRT = true
		}
	}
	for _, pcb := range e.ready {
		consider(pcb.VRuntime)
	}
	for _, pcb := range e.waiting {
		consider(pcb.VRuntime)
	}
	if e.current != nil {
		consider(e.current.VRuntime)
	}
}

func (p *cfsPolicy) childVRuntime() uint64 {
	if !p.haveChildVRT {
		return 0
	}
	return p.minChildVRT
}

func (p *cfsPolicy) extra(pcb kernel.PCB) string {
	return fmt.Sprintf("vruntime=%d", pcb.VRuntime)
}
