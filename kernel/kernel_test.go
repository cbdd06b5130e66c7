package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPidString(t *testing.T) {
	assert.Equal(t, "1", InitPid.String())
	assert.True(t, InitPid.Valid())
	assert.False(t, Pid(0).Valid())
}

func TestProcessStateString(t *testing.T) {
	assert.Equal(t, "READY", ReadyState().String())
	assert.Equal(t, "RUNNING", RunningState().String())
	assert.Equal(t, "SLEEP", SleepingState().String())
	assert.True(t, SleepingState().Sleeping())

	waiting := WaitingOn(7)
	assert.Equal(t, "EVENT 7", waiting.String())
	assert.False(t, waiting.Sleeping())
}

func TestDecisionString(t *testing.T) {
	require.Equal(t, "Run 1 for 2 slices", RunDecision(InitPid, 2).String())
	require.Equal(t, "Sleep for 5 slices", SleepDecision(5).String())
	require.Equal(t, "Deadlock, unable to schedule anymore processes", DeadlockDecision().String())
	require.Equal(t, "Panic, process 1 has stopped", PanicDecision().String())
	require.Equal(t, "Done, no more processes", DoneDecision().String())
}

func TestStopReasonString(t *testing.T) {
	assert.Equal(t, "Expired", ExpiredReason().String())
	assert.Equal(t, "Syscall SLEEP, remaining 3", SyscallReason(SleepCall(10), 3).String())
}

func TestSyscallResultString(t *testing.T) {
	assert.Equal(t, "Pid(1)", PidResult(InitPid).String())
	assert.Equal(t, "Success", SuccessResult().String())
	assert.Equal(t, "NoRunningProcess", NoRunningProcessResult().String())
}
