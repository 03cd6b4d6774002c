package steps

import (
	"github.com/systemstart/stash-init/pkg/api"
)

type collectStep struct {
	name    string
	collect func(ctx StepContext) (*api.AnswerRecord, error)
}

// NewCollectStep creates the step that produces the answer record for the rest of the pipeline.
func NewCollectStep(name string, collect func(ctx StepContext) (*api.AnswerRecord, error)) Step {
	return &collectStep{name: name, collect: collect}
}

func (s *collectStep) Name() string { return s.name }

func (s *collectStep) Run(ctx StepContext) (*StepResult, error) {
	answers, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}
	return &StepResult{Answers: answers}, nil
}
