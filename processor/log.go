package processor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/edirooss/procsim/kernel"
)

// ProcessInfo is a read-only snapshot of one process's scheduling state
// at the moment a Log entry was recorded.
type ProcessInfo struct {
	Pid      kernel.Pid
	State    kernel.ProcessState
	Priority int8
	Total    int
	Syscall  int
	Execute  int
	Extra    string
}

// Log is one iteration of the run: the decision the scheduler made, the
// syscall (if any) that provoked it, and a snapshot of every known
// process right after the decision.
type Log struct {
	Decision   kernel.Decision
	StopReason *kernel.StopReason
	Result     *kernel.SyscallResult
	Processes  map[kernel.Pid]ProcessInfo
}

func (l Log) String() string {
	var b strings.Builder
	fmt.Fprintln(&b, l.Decision)
	fmt.Fprintln(&b, "PID\tSTATE\t\tPRI\tTOTAL\tSYSCALL\tEXECUTE\tEXTRA")

	pids := make([]kernel.Pid, 0, len(l.Processes))
	for pid := range l.Processes {
		pids = append(pids, pid)
	}
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })

	for _, pid := range pids {
		p := l.Processes[pid]
		fmt.Fprintf(&b, "%s\t%s\t\t%d\t%d\t%d\t%d\t%s\n",
			p.Pid, p.State, p.Priority, p.Total, p.Syscall, p.Execute, p.Extra)
	}

	if l.StopReason != nil {
		fmt.Fprintf(&b, "%s -> %s\n", *l.StopReason, *l.Result)
	}
	fmt.Fprintln(&b)
	return b.String()
}
