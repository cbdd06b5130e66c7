package kernel

import "fmt"

// DecisionKind discriminates SchedulingDecision.
type DecisionKind int

const (
	DecisionRun DecisionKind = iota
	DecisionSleep
	DecisionDeadlock
	DecisionPanic
	DecisionDone
)

// Decision is the action the scheduler asks the processor to take,
// returned from Scheduler.Next.
type Decision struct {
	Kind      DecisionKind
	Pid       Pid // DecisionRun
	Timeslice int // DecisionRun
	Sleep     int // DecisionSleep
}

func RunDecision(pid Pid, timeslice int) Decision {
	return Decision{Kind: DecisionRun, Pid: pid, Timeslice: timeslice}
}

func SleepDecision(units int) Decision { return Decision{Kind: DecisionSleep, Sleep: units} }
func DeadlockDecision() Decision       { return Decision{Kind: DecisionDeadlock} }
func PanicDecision() Decision          { return Decision{Kind: DecisionPanic} }
func DoneDecision() Decision           { return Decision{Kind: DecisionDone} }

func (d Decision) String() string {
	switch d.Kind {
	case DecisionRun:
		return fmt.Sprintf("Run %s for %d slices", d.Pid, d.Timeslice)
	case DecisionSleep:
		return fmt.Sprintf("Sleep for %d slices", d.Sleep)
	case DecisionDeadlock:
		return "Deadlock, unable to schedule anymore processes"
	case DecisionPanic:
		return "Panic, process 1 has stopped"
	case DecisionDone:
		return "Done, no more processes"
	default:
		return "Unknown"
	}
}
