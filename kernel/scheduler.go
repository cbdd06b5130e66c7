package kernel

// Scheduler is the capability every policy (round-robin, priority
// queue, CFS) implements. stop and next form a dialogue: after a stop,
// the processor repeatedly calls next until it yields Run, Deadlock,
// Panic, or Done.
type Scheduler interface {
	// Next returns the action the processor must take next.
	Next() Decision

	// Stop informs the scheduler that the running process stopped,
	// either because its quantum expired or because it issued a
	// syscall.
	Stop(reason StopReason) SyscallResult

	// List returns a snapshot of all known processes: current (if
	// any) first, then ready in policy order, then waiting.
	List() []PCB
}
