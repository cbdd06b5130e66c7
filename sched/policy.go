package sched

import "github.com/edirooss/procsim/kernel"

// policy is the small set of decisions that differ between the three
// scheduling algorithms; everything else (charging, wake-passes,
// syscall dispatch) is shared in engine.go.
type policy interface {
	// reorderReady sorts the ready queue in place into policy order.
	// Round-robin's is a no-op: FIFO order falls out of where
	// engine.pushReady places entries (front or back).
	reorderReady(ready []kernel.PCB)

	// freshQuantum computes the quantum to hand out next, given the
	// engine's ready queue and current process *after* the mutations
	// of the in-flight transition have been applied.
	freshQuantum(e *engine) int

	// chargeRunning applies the policy-specific bookkeeping (CFS:
	// vruntime) to the process that was just charged delta units.
	chargeRunning(p *kernel.PCB, delta int)

	// beforeFork lets CFS refresh its minimum-vruntime bookkeeping
	// right before a child PCB is minted. No-op for RR/PQ.
	beforeFork(e *engine)

	// childVRuntime is the vruntime a newly forked child is born with.
	// Zero for RR/PQ.
	childVRuntime() uint64

	// extra renders the policy-specific log column (e.g. "vruntime=12").
	extra(p kernel.PCB) string
}
