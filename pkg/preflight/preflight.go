// Package preflight verifies the workspace and required tools before anything is mutated.
package preflight

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/systemstart/stash-init/pkg/api"
	"github.com/systemstart/stash-init/pkg/runner"
)

// DefaultLocator is the lookup command used to probe for a tool.
const DefaultLocator = "which"

// Checker runs the preflight checks against one workspace directory.
type Checker struct {
	Dir     string
	Prober  runner.Prober
	Locator string
}

// NewChecker returns a Checker that probes tools with `which`.
func NewChecker(dir string, prober runner.Prober) *Checker {
	return &Checker{Dir: dir, Prober: prober, Locator: DefaultLocator}
}

// CheckWorkspaceEmpty fails if the directory contains any entry, hidden ones included.
func (c *Checker) CheckWorkspaceEmpty() error {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return api.EnvironmentError(fmt.Sprintf("cannot read workspace %s", c.Dir), err)
	}
	if len(entries) != 0 {
		return api.EnvironmentError(fmt.Sprintf("the folder is not empty (%d entries in %s)", len(entries), c.Dir), nil)
	}
	slog.Debug("workspace is empty", "dir", c.Dir)
	return nil
}

// CheckToolAvailable probes for tool. Only the presence of output counts: a probe that
// prints nothing means the tool is not installed, whatever its exit status.
func (c *Checker) CheckToolAvailable(ctx context.Context, tool string) error {
	locator := c.Locator
	if locator == "" {
		locator = DefaultLocator
	}

	out, err := c.Prober.Probe(ctx, runner.Command(locator, tool))
	if err != nil {
		return api.EnvironmentError(fmt.Sprintf("cannot probe for %s with %s", tool, locator), err)
	}
	if len(out) == 0 {
		return api.EnvironmentError(fmt.Sprintf("%s is not installed", tool), nil)
	}

	slog.Debug("tool available", "tool", tool, "path", string(bytes.TrimSpace(out)))
	return nil
}
