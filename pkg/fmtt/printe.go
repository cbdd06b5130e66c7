// Package fmtt holds small debug-printing helpers used at the edges of
// the command-line tools, not by the core simulation packages.
package fmtt

import (
	"fmt"
	"io"
	"sort"

	"github.com/davecgh/go-spew/spew"

	"github.com/edirooss/procsim/kernel"
	"github.com/edirooss/procsim/processor"
)

// DumpProcessTable writes a full spew dump of every process in a log
// entry, sorted by pid, to w. Used when a run ends in Deadlock or
// Panic so the last known state is fully visible, not just the
// tab-separated summary line.
func DumpProcessTable(w io.Writer, entry processor.Log) {
	fmt.Fprintf(w, "decision: %s\n", entry.Decision)

	pids := make([]kernel.Pid, 0, len(entry.Processes))
	for pid := range entry.Processes {
		pids = append(pids, pid)
	}
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })

	for _, pid := range pids {
		spew.Fdump(w, entry.Processes[pid])
	}
}
