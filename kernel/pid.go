// Package kernel defines the vocabulary shared between the scheduler
// policies and the processor driver: PIDs, process state, the five
// modeled syscalls, and the scheduler's decision/result types.
package kernel

import "strconv"

// Pid identifies a simulated process. PIDs start at 1; 0 is never valid.
type Pid int

// InitPid is the distinguished init process. Its exit while any other
// process is still alive is a fatal Panic (see Decision).
const InitPid Pid = 1

func (p Pid) String() string { return strconv.Itoa(int(p)) }

// Valid reports whether p is a legal, assigned PID.
func (p Pid) Valid() bool { return p > 0 }
