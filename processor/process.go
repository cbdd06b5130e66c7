package processor

import (
	"go.uber.org/zap"

	"github.com/edirooss/procsim/kernel"
)

// Process is the surface exposed to simulated process bodies: it turns
// each call into a syscall (or a plain quantum decrement for Exec) and
// re-suspends until the Processor picks this pid again.
type Process struct {
	pid       kernel.Pid
	processor *Processor
}

// Pid returns the simulated process's pid.
func (p *Process) Pid() kernel.Pid { return p.pid }

func (p *Process) suspend() {
	if !p.processor.slot.suspend(p.pid) {
		return
	}
	p.processor.log.Debug("running", zap.Stringer("pid", p.pid))
}

// Exec executes one unit of simulated CPU time. If doing so exhausts
// the process's granted quantum, it yields back to the scheduler and
// blocks until rescheduled.
func (p *Process) Exec() {
	p.processor.log.Debug("exec", zap.Stringer("pid", p.pid))
	if p.processor.execUnit() {
		return
	}
	p.processor.dispatch(kernel.ExpiredReason())
	p.suspend()
}

// Fork spawns a child process running body at the given priority and
// returns its pid. The parent blocks until the scheduler reschedules
// it; the child runs as its own goroutine, racing the parent (and any
// siblings) for the scheduler's next pick.
func (p *Process) Fork(body func(*Process), priority int8) kernel.Pid {
	result := p.processor.dispatch(kernel.SyscallReason(kernel.ForkCall(priority), 0))
	if result.Kind != kernel.ResultPid {
		panic("fork did not return a pid")
	}
	child := result.Pid

	p.processor.log.Debug("fork", zap.Stringer("pid", p.pid), zap.Stringer("child", child))

	p.processor.grp.Go(func() error {
		proc := &Process{pid: child, processor: p.processor}
		proc.suspend()
		body(proc)
		proc.exit()
		return nil
	})

	p.suspend()
	return child
}

// Wait blocks the process until some other process Signals event.
func (p *Process) Wait(event int) {
	p.processor.log.Debug("wait", zap.Stringer("pid", p.pid), zap.Int("event", event))
	p.processor.dispatch(kernel.SyscallReason(kernel.WaitCall(event), 0))
	p.suspend()
}

// Signal wakes every process blocked in Wait(event).
func (p *Process) Signal(event int) {
	p.processor.log.Debug("signal", zap.Stringer("pid", p.pid), zap.Int("event", event))
	p.processor.dispatch(kernel.SyscallReason(kernel.SignalCall(event), 0))
	p.suspend()
}

// Sleep blocks the process for units simulated time units.
func (p *Process) Sleep(units int) {
	p.processor.log.Debug("sleep", zap.Stringer("pid", p.pid), zap.Int("units", units))
	p.processor.dispatch(kernel.SyscallReason(kernel.SleepCall(units), 0))
	p.suspend()
}

// exit is implicit: the goroutine started by Run (for pid 1) or by Fork
// (for a child) calls it once the process body returns.
func (p *Process) exit() {
	p.processor.log.Debug("exit", zap.Stringer("pid", p.pid))
	p.processor.dispatch(kernel.SyscallReason(kernel.ExitCall(), 0))
}
