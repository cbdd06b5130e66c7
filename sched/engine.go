package sched

import "github.com/edirooss/procsim/kernel"

// engine implements the state-machine core shared by all three
// policies (spec §4.1.1–§4.1.2): ready/waiting sets, accounting,
// wake-passes, and the next()/stop() dialogue. Each constructor
// (NewRoundRobin, NewPriorityQueue, NewCFS) builds an engine around one
// policy value, which supplies the points of variation through the
// policy interface: ready-queue ordering, quantum computation, vruntime
// bookkeeping, and the extra log column.
type engine struct {
	ready   []kernel.PCB
	waiting []kernel.PCB
	current *kernel.PCB

	nextPid      kernel.Pid
	minRemaining int
	remaining    int // the currently-granted quantum (spec's "remaining")

	panicLatched      bool
	pendingSleepDelta int

	policy policy
}

func newEngine(initialQuantum, minRemaining int, p policy) *engine {
	return &engine{
		nextPid:      1,
		minRemaining: minRemaining,
		remaining:    initialQuantum,
		policy:       p,
	}
}

// Extra renders the policy-specific log column for pcb. It is not part
// of kernel.Scheduler; callers that want it type-assert for it.
func (e *engine) Extra(pcb kernel.PCB) string {
	return e.policy.extra(pcb)
}

// List returns current first, then ready in policy order, then waiting.
func (e *engine) List() []kernel.PCB {
	out := make([]kernel.PCB, 0, len(e.ready)+len(e.waiting)+1)
	if e.current != nil {
		out = append(out, *e.current)
	}
	out = append(out, e.ready...)
	out = append(out, e.waiting...)
	return out
}

// pushReady inserts pcb at the front or back of the ready queue and
// lets the policy re-establish order. Front placement, combined with a
// stable policy sort, is how a continuing process keeps priority over
// same-priority/zero-vruntime-delta peers; back placement sends it to
// the rear of its bucket.
func (e *engine) pushReady(pcb kernel.PCB, front bool) {
	if front {
		e.ready = append([]kernel.PCB{pcb}, e.ready...)
	} else {
		e.ready = append(e.ready, pcb)
	}
	e.policy.reorderReady(e.ready)
}

// wake promotes sleepers whose SleepRemaining has reached zero (or
// below) into the ready queue, leaving event-waiters untouched.
func (e *engine) wake() {
	kept := e.waiting[:0:0]
	woke := false
	for _, p := range e.waiting {
		if p.State.Sleeping() && p.SleepRemaining <= 0 {
			p.State = kernel.ReadyState()
			e.ready = append(e.ready, p)
			woke = true
			continue
		}
		kept = append(kept, p)
	}
	e.waiting = kept
	if woke {
		e.policy.reorderReady(e.ready)
	}
}

// chargeOthers adds delta to Total for every ready/waiting PCB, and
// additionally drains delta from the SleepRemaining of sleepers (spec
// §4.1.1 step 3).
func (e *engine) chargeOthers(delta int) {
	for i := range e.ready {
		e.ready[i].Total += delta
	}
	for i := range e.waiting {
		e.waiting[i].Total += delta
		if e.waiting[i].State.Sleeping() {
			e.waiting[i].SleepRemaining -= delta
		}
	}
}

// chargeCurrent applies the generic accounting to the running process:
// delta is timeslice_granted minus whatever remained at the stop, and
// unitCost is 1 for a syscall (it consumes one unit itself) or 0 for
// an expired quantum.
func (e *engine) chargeCurrent(delta, unitCost int, syscall bool) {
	e.current.Execute += delta - unitCost
	e.current.Total += delta
	if syscall {
		e.current.Syscalls++
	}
	e.policy.chargeRunning(e.current, delta)
}

// reschedule applies the shared "front if remaining >= threshold, else
// back" rule used by both Fork's parent and Signal's signaler.
func (e *engine) reschedule(pcb kernel.PCB, remaining int) {
	pcb.State = kernel.ReadyState()
	if remaining >= e.minRemaining {
		e.remaining = remaining
		e.pushReady(pcb, true)
	} else {
		e.pushReady(pcb, false)
		e.remaining = e.policy.freshQuantum(e)
	}
}

// Stop implements kernel.Scheduler.Stop (spec §4.1.1).
func (e *engine) Stop(reason kernel.StopReason) kernel.SyscallResult {
	bootstrapFork := e.current == nil && e.nextPid == 1 &&
		!reason.Expired && reason.Syscall.Kind == kernel.Fork

	if e.current == nil && !bootstrapFork {
		return kernel.NoRunningProcessResult()
	}

	if bootstrapFork {
		return e.bootstrap(reason.Syscall.Priority)
	}

	remaining := 0
	unitCost := 0
	isSyscall := !reason.Expired
	if isSyscall {
		remaining = reason.Remaining
		unitCost = 1
	}
	delta := e.remaining - remaining

	e.chargeCurrent(delta, unitCost, isSyscall)
	e.chargeOthers(delta)
	e.wake()

	if reason.Expired {
		pcb := *e.current
		e.current = nil
		pcb.State = kernel.ReadyState()
		e.pushReady(pcb, false)
		e.remaining = e.policy.freshQuantum(e)
		return kernel.SuccessResult()
	}

	switch reason.Syscall.Kind {
	case kernel.Fork:
		return e.doFork(reason.Syscall.Priority, remaining)
	case kernel.Sleep:
		return e.doSleep(reason.Syscall.Units)
	case kernel.Wait:
		return e.doWait(reason.Syscall.Event)
	case kernel.Signal:
		return e.doSignal(reason.Syscall.Event, remaining)
	case kernel.Exit:
		return e.doExit()
	default:
		return kernel.SuccessResult()
	}
}

func (e *engine) bootstrap(priority int8) kernel.SyscallResult {
	pcb := kernel.PCB{
		Pid:      kernel.InitPid,
		State:    kernel.ReadyState(),
		Priority: priority,
		VRuntime: e.policy.childVRuntime(),
	}
	e.nextPid = kernel.InitPid + 1
	e.pushReady(pcb, false)
	return kernel.PidResult(kernel.InitPid)
}

func (e *engine) doFork(priority int8, remaining int) kernel.SyscallResult {
	e.policy.beforeFork(e)
	child := kernel.PCB{
		Pid:      e.nextPid,
		State:    kernel.ReadyState(),
		Priority: priority,
		VRuntime: e.policy.childVRuntime(),
	}
	e.nextPid++
	e.pushReady(child, false)

	parent := *e.current
	e.current = nil
	e.reschedule(parent, remaining)

	return kernel.PidResult(child.Pid)
}

func (e *engine) doSleep(units int) kernel.SyscallResult {
	pcb := *e.current
	e.current = nil
	pcb.State = kernel.SleepingState()
	pcb.SleepRemaining = units
	e.waiting = append(e.waiting, pcb)
	e.remaining = e.policy.freshQuantum(e)
	return kernel.SuccessResult()
}

func (e *engine) doWait(event int) kernel.SyscallResult {
	pcb := *e.current
	e.current = nil
	pcb.State = kernel.WaitingOn(event)
	e.waiting = append(e.waiting, pcb)
	e.remaining = e.policy.freshQuantum(e)
	return kernel.SuccessResult()
}

func (e *engine) doSignal(event, remaining int) kernel.SyscallResult {
	kept := e.waiting[:0:0]
	for _, p := range e.waiting {
		if p.State.Kind == kernel.Waiting && p.State.Event != nil && *p.State.Event == event {
			p.State = kernel.ReadyState()
			e.pushReady(p, false)
			continue
		}
		kept = append(kept, p)
	}
	e.waiting = kept

	signaler := *e.current
	e.current = nil
	e.reschedule(signaler, remaining)

	return kernel.SuccessResult()
}

func (e *engine) doExit() kernel.SyscallResult {
	exiting := e.current.Pid
	e.current = nil
	if exiting == kernel.InitPid && (len(e.ready) > 0 || len(e.waiting) > 0) {
		e.panicLatched = true
	}
	e.remaining = e.policy.freshQuantum(e)
	return kernel.SuccessResult()
}

// Next implements kernel.Scheduler.Next (spec §4.1.2).
func (e *engine) Next() kernel.Decision {
	if e.panicLatched {
		return kernel.PanicDecision()
	}

	sortWaitingBySleep(e.waiting)

	if e.pendingSleepDelta > 0 {
		delta := e.pendingSleepDelta
		e.pendingSleepDelta = 0
		for i := range e.waiting {
			e.waiting[i].Total += delta
			if e.waiting[i].State.Sleeping() {
				e.waiting[i].SleepRemaining -= delta
			}
		}
	}

	e.wake()

	if e.current == nil && len(e.ready) == 0 && len(e.waiting) > 0 {
		smallest := 0
		found := false
		for _, p := range e.waiting {
			if p.State.Sleeping() && (!found || p.SleepRemaining < smallest) {
				smallest = p.SleepRemaining
				found = true
			}
		}
		if !found {
			return kernel.DeadlockDecision()
		}
		e.pendingSleepDelta = smallest
		return kernel.SleepDecision(smallest)
	}

	if len(e.ready) > 0 {
		pcb := e.ready[0]
		e.ready = e.ready[1:]
		pcb.State = kernel.RunningState()
		e.current = &pcb
		return kernel.RunDecision(pcb.Pid, e.remaining)
	}

	if e.current != nil {
		return kernel.RunDecision(e.current.Pid, e.remaining)
	}

	return kernel.DoneDecision()
}

func sortWaitingBySleep(waiting []kernel.PCB) {
	insertionSortBy(waiting, func(a, b kernel.PCB) bool {
		return a.SleepRemaining < b.SleepRemaining
	})
}

// insertionSortBy is a small stable sort; the waiting/ready sets in
// these simulations are tiny (tens of processes at most), so O(n^2)
// worst case is a non-issue and avoids importing sort for a one-line
// comparator no policy needs twice.
func insertionSortBy(s []kernel.PCB, less func(a, b kernel.PCB) bool) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && less(s[j], s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
