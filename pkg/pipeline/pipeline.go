// Package pipeline runs the provisioning phases in order and aborts on the first failure.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/systemstart/stash-init/pkg/steps"
)

// State is a pipeline phase or one of the two terminal states.
type State string

const (
	StatePreflight           State = "preflight"
	StatePrompting           State = "prompting"
	StateValidating          State = "validating"
	StateFetching            State = "fetching"
	StateConfiguring         State = "configuring"
	StateInstalling          State = "installing"
	StateProvisioningPlugins State = "provisioning-plugins"
	StateActivating          State = "activating"
	StateFinalizing          State = "finalizing"

	StateCompleted State = "completed"
	StateAborted   State = "aborted"
)

// Phase is an ordered list of steps. It completes only if every step does.
type Phase struct {
	State State
	Steps []steps.Step
}

// Observer is told when phases start and finish. err is nil for a completed phase.
type Observer interface {
	PhaseStarted(state State)
	PhaseFinished(state State, err error)
}

// Report describes how far a run got.
type Report struct {
	State State    // StateCompleted or StateAborted
	Steps []string // "<phase>/<step>" for every step that completed, in order
}

// PhaseError is returned when a step fails. It names the phase and the step.
type PhaseError struct {
	Phase State
	Step  string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase failed at step %q: %v", e.Phase, e.Step, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

var errAnswersTwice = errors.New("answers were already collected")

// Pipeline executes phases strictly in declaration order, one step at a time.
type Pipeline struct {
	Phases   []Phase
	WorkDir  string
	Observer Observer
}

// Run executes every phase. The first failing step aborts the run; no later step is
// started and nothing already done is rolled back. Cancellation of ctx is honoured
// between steps.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{}
	sctx := steps.StepContext{Context: ctx, WorkDir: p.WorkDir}

	for _, phase := range p.Phases {
		report.State = phase.State
		p.notifyStarted(phase.State)
		slog.Info("entering phase", "phase", phase.State, "steps", len(phase.Steps))

		for _, step := range phase.Steps {
			if err := p.runStep(&sctx, phase.State, step); err != nil {
				report.State = StateAborted
				p.notifyFinished(phase.State, err)
				slog.Error("pipeline aborted", "phase", phase.State, "step", step.Name(), "error", err)
				return report, err
			}
			report.Steps = append(report.Steps, string(phase.State)+"/"+step.Name())
		}

		p.notifyFinished(phase.State, nil)
	}

	report.State = StateCompleted
	return report, nil
}

func (p *Pipeline) runStep(sctx *steps.StepContext, phase State, step steps.Step) error {
	if err := sctx.Context.Err(); err != nil {
		return &PhaseError{Phase: phase, Step: step.Name(), Err: err}
	}

	slog.Info("running step", "phase", phase, "step", step.Name())
	result, err := step.Run(*sctx)
	if err != nil {
		return &PhaseError{Phase: phase, Step: step.Name(), Err: err}
	}

	if result != nil && result.Answers != nil {
		if sctx.Answers != nil {
			return &PhaseError{Phase: phase, Step: step.Name(), Err: errAnswersTwice}
		}
		sctx.Answers = result.Answers
	}
	return nil
}

func (p *Pipeline) notifyStarted(state State) {
	if p.Observer != nil {
		p.Observer.PhaseStarted(state)
	}
}

func (p *Pipeline) notifyFinished(state State, err error) {
	if p.Observer != nil {
		p.Observer.PhaseFinished(state, err)
	}
}
