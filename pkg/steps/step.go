package steps

import (
	"context"

	"github.com/systemstart/stash-init/pkg/api"
)

// StepContext provides the runtime context for a step.
type StepContext struct {
	Context context.Context
	WorkDir string
	Answers *api.AnswerRecord // nil until the answers have been collected
}

// StepResult holds the output of a step.
type StepResult struct {
	Answers *api.AnswerRecord // set only by the step that collects the answers
}

// Step is the interface all pipeline steps implement.
type Step interface {
	Name() string
	Run(ctx StepContext) (*StepResult, error)
}

// RequireAnswers returns the collected answers, or an error for steps scheduled
// before the answers exist.
func (c StepContext) RequireAnswers() (*api.AnswerRecord, error) {
	if c.Answers == nil {
		return nil, errNoAnswers
	}
	return c.Answers, nil
}
