package kernel

// SyscallKind discriminates the five modeled syscalls.
type SyscallKind int

const (
	Fork SyscallKind = iota
	Sleep
	Wait
	Signal
	Exit
)

func (k SyscallKind) String() string {
	switch k {
	case Fork:
		return "FORK"
	case Sleep:
		return "SLEEP"
	case Wait:
		return "WAIT"
	case Signal:
		return "SIGNAL"
	case Exit:
		return "EXIT"
	default:
		return "UNKNOWN"
	}
}

// Syscall is the system call a process issues to the scheduler. Only
// the fields relevant to Kind are meaningful.
type Syscall struct {
	Kind     SyscallKind
	Priority int8 // Fork
	Units    int  // Sleep
	Event    int  // Wait, Signal
}

func ForkCall(priority int8) Syscall { return Syscall{Kind: Fork, Priority: priority} }
func SleepCall(units int) Syscall    { return Syscall{Kind: Sleep, Units: units} }
func WaitCall(event int) Syscall     { return Syscall{Kind: Wait, Event: event} }
func SignalCall(event int) Syscall   { return Syscall{Kind: Signal, Event: event} }
func ExitCall() Syscall              { return Syscall{Kind: Exit} }
