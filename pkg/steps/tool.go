package steps

import (
	"fmt"
	"log/slog"

	"github.com/systemstart/stash-init/pkg/api"
	"github.com/systemstart/stash-init/pkg/runner"
)

// ToolArgs builds the invocation of a tool step once the step runs.
type ToolArgs func(ctx StepContext) (runner.Invocation, error)

type toolStep struct {
	name   string
	runner runner.Runner
	build  ToolArgs
	hint   string
}

// NewToolStep creates a step that runs one external tool. hint names the likely cause
// and is included in the failure message.
func NewToolStep(name string, r runner.Runner, build ToolArgs, hint string) Step {
	return &toolStep{name: name, runner: r, build: build, hint: hint}
}

// Fixed returns ToolArgs for an invocation that does not depend on the answers.
func Fixed(name string, args ...string) ToolArgs {
	return func(StepContext) (runner.Invocation, error) {
		return runner.Command(name, args...), nil
	}
}

func (s *toolStep) Name() string { return s.name }

func (s *toolStep) Run(ctx StepContext) (*StepResult, error) {
	inv, err := s.build(ctx)
	if err != nil {
		return nil, fmt.Errorf("building command: %w", err)
	}
	if inv.Dir == "" {
		inv.Dir = ctx.WorkDir
	}

	slog.Debug("running tool step", "step", s.name, "tool", inv.Name)
	if err := s.runner.Run(ctx.Context, inv); err != nil {
		return nil, api.ToolFailure(fmt.Sprintf("%s failed (%s)", inv.Name, s.hint), err)
	}
	return &StepResult{}, nil
}
