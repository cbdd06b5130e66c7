package kernel

import "fmt"

// StopReason is why the running process stopped and the Processor
// called into the scheduler. Expired means the quantum was exhausted;
// otherwise the process issued Syscall with Remaining units left in
// its quantum at the instant of the call.
type StopReason struct {
	Expired   bool
	Syscall   Syscall
	Remaining int
}

func ExpiredReason() StopReason { return StopReason{Expired: true} }

func SyscallReason(s Syscall, remaining int) StopReason {
	return StopReason{Syscall: s, Remaining: remaining}
}

func (r StopReason) String() string {
	if r.Expired {
		return "Expired"
	}
	return fmt.Sprintf("Syscall %s, remaining %d", r.Syscall.Kind, r.Remaining)
}
