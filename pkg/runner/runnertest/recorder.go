// Package runnertest provides a recording Runner/Prober for tests.
package runnertest

import (
	"context"
	"slices"

	"github.com/systemstart/stash-init/pkg/runner"
)

// Recorder records every invocation in order. Handler, if set, decides the outcome
// of Run; Outputs maps a probed tool's first argument to the bytes Probe returns.
type Recorder struct {
	Calls   []runner.Invocation
	Handler func(inv runner.Invocation) error
	Outputs map[string]string
}

// Run records inv and returns the handler's verdict.
func (r *Recorder) Run(_ context.Context, inv runner.Invocation) error {
	r.Calls = append(r.Calls, clone(inv))
	if r.Handler != nil {
		return r.Handler(inv)
	}
	return nil
}

// Probe records inv and returns the configured output for its first argument.
func (r *Recorder) Probe(_ context.Context, inv runner.Invocation) ([]byte, error) {
	r.Calls = append(r.Calls, clone(inv))
	if len(inv.Args) == 0 {
		return nil, nil
	}
	return []byte(r.Outputs[inv.Args[0]]), nil
}

// Commands returns the recorded invocations rendered as strings.
func (r *Recorder) Commands() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.String()
	}
	return out
}

// FailWhen returns a handler that fails every invocation matching pred.
func FailWhen(pred func(inv runner.Invocation) bool, err error) func(runner.Invocation) error {
	return func(inv runner.Invocation) error {
		if pred(inv) {
			return err
		}
		return nil
	}
}

func clone(inv runner.Invocation) runner.Invocation {
	inv.Args = slices.Clone(inv.Args)
	return inv
}
