// Package logfmt renders a run's logs to the human-readable text format
// used by the command-line tool and golden-file tests: one
// "===== Iteration: N =====" block per logged decision.
package logfmt

import (
	"fmt"
	"strings"

	"github.com/edirooss/procsim/processor"
)

// Format renders every entry of logs as one numbered iteration block.
func Format(logs []processor.Log) string {
	var b strings.Builder
	for i, l := range logs {
		fmt.Fprintf(&b, "===== Iteration: %d =====\n%s\n", i+1, l)
	}
	return b.String()
}
