package kernel

// PCB is a Process Control Block: the scheduler's per-process record.
// PCBs are value objects — the scheduler owns and mutates them, the
// processor driver only ever reads snapshots returned by List().
type PCB struct {
	Pid      Pid
	State    ProcessState
	Priority int8

	// Timings, in simulated time units since creation.
	Total   int // total = Syscalls + Execute + time spent ready/waiting
	Syscalls int // number of syscalls issued
	Execute  int // units actually spent running

	// SleepRemaining counts down while State is the sleeping variant
	// of Waiting. <=0 means the process is due to wake.
	SleepRemaining int

	// VRuntime is only meaningful under the CFS policy; other policies
	// leave it at zero.
	VRuntime uint64
}

// Timings returns the (total, syscall, execute) triple spec.md's
// Process trait exposes.
func (p PCB) Timings() (total, syscall, execute int) {
	return p.Total, p.Syscalls, p.Execute
}
