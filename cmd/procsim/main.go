// Command procsim runs a demo simulation against one of the three
// scheduling policies and prints the resulting log in human-readable
// form.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/edirooss/procsim/internal/goldentest"
	"github.com/edirooss/procsim/kernel"
	"github.com/edirooss/procsim/logfmt"
	"github.com/edirooss/procsim/pkg/fmtt"
	"github.com/edirooss/procsim/processor"
	"github.com/edirooss/procsim/sched"
)

// goldenBaseDir mirrors the reference harness's "../outputs" tree: one
// subdirectory per scheduler, golden files keyed by scenario folder,
// name, and the three quantum knobs.
const goldenBaseDir = "testdata/golden"

func main() {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	log := zap.Must(logConfig.Build())
	defer log.Sync()

	timeslice := envInt("TIMESLICE", 3)
	remaining := envInt("REMAINING", 1)
	cpuSlices := envInt("CPU_SLICES", 10)
	policyName := envString("POLICY", "round-robin")

	var s kernel.Scheduler
	switch policyName {
	case "priority-queue":
		s = sched.NewPriorityQueue(timeslice, remaining)
	case "cfs":
		s = sched.NewCFS(cpuSlices, remaining)
	default:
		s = sched.NewRoundRobin(timeslice, remaining)
	}

	log.Info("starting run",
		zap.String("policy", policyName),
		zap.Int("timeslice", timeslice),
		zap.Int("remaining", remaining),
		zap.Int("cpu_slices", cpuSlices),
	)

	logs := processor.Run(s, demoScenario, processor.WithLogger(log))

	output := logfmt.Format(logs)
	fmt.Print(output)

	goldenParams := goldentest.Params{
		Scheduler: policyName,
		Folder:    "demo",
		Name:      "walkthrough",
		Timeslice: timeslice,
		Remaining: remaining,
		CPUSlices: cpuSlices,
	}
	if goldentest.ShouldWrite() {
		if err := goldentest.Write(goldenBaseDir, goldenParams, output); err != nil {
			log.Error("writing golden output failed", zap.Error(err))
		} else {
			log.Info("golden output regenerated", zap.String("scheduler", policyName))
		}
	} else if reference, err := goldentest.Read(goldenBaseDir, goldenParams); err != nil {
		log.Warn("no golden output to compare against, run with WRITE_OUTPUT=1 to create one",
			zap.Error(err))
	} else if reference != output {
		log.Error("run output diverges from golden output")
		fmt.Fprintln(os.Stderr, "---- golden (expected) ----")
		fmt.Fprint(os.Stderr, reference)
		fmt.Fprintln(os.Stderr, "---- actual ----")
		fmt.Fprint(os.Stderr, output)
		fmt.Fprintln(os.Stderr, "---- decisions (debug) ----")
		spew.Fdump(os.Stderr, logs[len(logs)-1].Decision)
	}

	lastEntry := logs[len(logs)-1]
	if lastEntry.Decision.Kind == kernel.DecisionDeadlock || lastEntry.Decision.Kind == kernel.DecisionPanic {
		log.Warn("run ended abnormally", zap.String("decision", lastEntry.Decision.String()))
		fmt.Fprintln(os.Stderr, "---- process table at failure ----")
		fmtt.DumpProcessTable(os.Stderr, lastEntry)
	}
}

// demoScenario mirrors the fork/wait/signal walkthrough used to
// illustrate the simulator: a child blocks waiting for an event, the
// parent sleeps and then signals it awake.
func demoScenario(p *processor.Process) {
	p.Fork(func(child *processor.Process) {
		child.Exec()
		child.Exec()
		child.Wait(1)
	}, 0)
	p.Sleep(10)
	p.Signal(1)
	p.Exec()
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envString(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return v
}
