package processor

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/edirooss/procsim/kernel"
)

// extraSource is implemented by schedulers able to render a
// policy-specific log column (CFS renders vruntime, the priority
// queue renders priority, round-robin renders an empty string). A
// scheduler that doesn't implement this gets an empty column.
type extraSource interface {
	Extra(pcb kernel.PCB) string
}

// Option configures a Processor run.
type Option func(*Processor)

// WithLogger attaches a structured logger to the run. The default is
// zap.NewNop(), matching the teacher's library-mode default: callers
// wire in a real logger only at the command-line edge.
func WithLogger(log *zap.Logger) Option {
	return func(p *Processor) { p.log = log }
}

// Processor drives a kernel.Scheduler against a tree of simulated
// processes, one goroutine per process, serialized through a
// single-owner run slot so that exactly one process executes at a
// time. It owns: the scheduler (exclusive mutation), the run slot
// (mutex + condvar), the granted-quantum counter, and the log buffer.
type Processor struct {
	log   *zap.Logger
	runID uuid.UUID

	mu        sync.Mutex // guards scheduler, remaining, logs
	scheduler kernel.Scheduler
	remaining int
	logs      []Log

	slot *runSlot
	grp  *errgroup.Group
}

// Run starts a simulation: s is the policy to drive, and root is the
// body of the first simulated process (pid 1). It blocks until the
// run ends in Deadlock, Panic, or Done, and returns every iteration
// logged along the way.
func Run(s kernel.Scheduler, root func(*Process), opts ...Option) []Log {
	p := &Processor{
		log:       zap.NewNop(),
		runID:     uuid.New(),
		scheduler: s,
		remaining: 1,
		slot:      newRunSlot(),
	}
	for _, opt := range opts {
		opt(p)
	}

	g, _ := errgroup.WithContext(context.Background())
	p.grp = g
	p.log = p.log.With(zap.String("run_id", p.runID.String()))

	result := p.dispatch(kernel.SyscallReason(kernel.ForkCall(0), 0))
	if result.Kind != kernel.ResultPid {
		panic("bootstrap fork did not return a pid")
	}
	if result.Pid != kernel.InitPid {
		panic(fmt.Sprintf("scheduler did not return pid %s for the first process", kernel.InitPid))
	}

	p.grp.Go(func() error {
		proc := &Process{pid: result.Pid, processor: p}
		proc.suspend()
		root(proc)
		proc.exit()
		return nil
	})

	p.grp.Wait()
	return p.logs
}

// execUnit burns one unit of the granted quantum and reports whether
// the process may keep running (false means the quantum just expired).
func (p *Processor) execUnit() bool {
	if p.slot.stopped() {
		return true
	}
	p.mu.Lock()
	p.remaining--
	notExpired := p.remaining != 0
	p.mu.Unlock()
	return notExpired
}

// dispatch informs the scheduler that the running process stopped
// (syscall or expiry), attaches the outcome to the log entry for the
// interrupted Run decision, releases the run slot, and drains Next()
// until a process is dispatched or the run ends.
func (p *Processor) dispatch(reason kernel.StopReason) kernel.SyscallResult {
	if p.slot.stopped() {
		return kernel.NoRunningProcessResult()
	}

	p.mu.Lock()
	if !reason.Expired {
		// The syscall instruction itself burns one unit of the granted
		// quantum, same as an Exec would, before reporting what's left.
		p.remaining--
		reason.Remaining = p.remaining
	}
	result := p.scheduler.Stop(reason)
	if n := len(p.logs); n > 0 {
		r, res := reason, result
		p.logs[n-1].StopReason = &r
		p.logs[n-1].Result = &res
	}
	p.mu.Unlock()

	p.slot.release()

	for !p.slot.stopped() && !p.slot.owned() {
		decision := p.nextDecision()
		switch decision.Kind {
		case kernel.DecisionRun:
			p.mu.Lock()
			p.remaining = decision.Timeslice
			p.mu.Unlock()
			p.slot.grant(decision.Pid)
		case kernel.DecisionSleep:
			p.log.Debug(decision.String())
		default: // Deadlock, Panic, Done
			p.log.Info(decision.String())
			p.slot.stop()
		}
	}

	return result
}

func (p *Processor) nextDecision() kernel.Decision {
	p.mu.Lock()
	defer p.mu.Unlock()
	d := p.scheduler.Next()
	p.logs = append(p.logs, Log{Decision: d, Processes: p.snapshotLocked()})
	return d
}

// snapshotLocked builds the per-pid process table for a log entry. p.mu
// must be held.
func (p *Processor) snapshotLocked() map[kernel.Pid]ProcessInfo {
	extra, _ := p.scheduler.(extraSource)

	pcbs := p.scheduler.List()
	out := make(map[kernel.Pid]ProcessInfo, len(pcbs))
	for _, pcb := range pcbs {
		info := ProcessInfo{
			Pid:      pcb.Pid,
			State:    pcb.State,
			Priority: pcb.Priority,
			Total:    pcb.Total,
			Syscall:  pcb.Syscalls,
			Execute:  pcb.Execute,
		}
		if extra != nil {
			info.Extra = extra.Extra(pcb)
		}
		out[pcb.Pid] = info
	}
	return out
}
