package processor

import (
	"sync"

	"github.com/edirooss/procsim/kernel"
)

// runSlot is a one-owner gate: exactly one pid may hold it, and every
// other process goroutine blocks on its condvar until the scheduler
// hands the slot to them. It mirrors a single-CPU core: only the pid
// occupying the slot is "running".
type runSlot struct {
	mu      sync.Mutex
	cond    *sync.Cond
	current *kernel.Pid
	done    bool
}

func newRunSlot() *runSlot {
	s := &runSlot{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// grant hands the slot to pid and wakes every waiter so the owner can
// proceed and the rest re-check and go back to sleep.
func (s *runSlot) grant(pid kernel.Pid) {
	s.mu.Lock()
	s.current = &pid
	s.mu.Unlock()
	s.cond.Broadcast()
}

// release clears ownership without naming a successor; used between
// stopping one process and the scheduler deciding the next one.
func (s *runSlot) release() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// stop ends the run: every waiter wakes and observes done, regardless
// of whose turn it was.
func (s *runSlot) stop() {
	s.mu.Lock()
	s.done = true
	s.mu.Unlock()
	s.cond.Broadcast()
}

// suspend blocks the calling goroutine until either pid owns the slot
// or the run has ended. It returns false if the run ended first.
func (s *runSlot) suspend(pid kernel.Pid) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for !s.done && (s.current == nil || *s.current != pid) {
		s.cond.Wait()
	}
	return !s.done
}

func (s *runSlot) stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// owned reports whether some pid currently holds the slot.
func (s *runSlot) owned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}
