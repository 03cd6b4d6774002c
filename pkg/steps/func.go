package steps

import "errors"

var errNoAnswers = errors.New("answers have not been collected yet")

type funcStep struct {
	name string
	fn   func(ctx StepContext) error
}

// NewFuncStep creates a step that runs fn.
func NewFuncStep(name string, fn func(ctx StepContext) error) Step {
	return &funcStep{name: name, fn: fn}
}

func (s *funcStep) Name() string { return s.name }

func (s *funcStep) Run(ctx StepContext) (*StepResult, error) {
	if err := s.fn(ctx); err != nil {
		return nil, err
	}
	return &StepResult{}, nil
}
