// Package prompt collects the answer record from the user or from pre-filled values.
package prompt

import (
	"fmt"
	"log/slog"

	"github.com/systemstart/stash-init/pkg/api"
)

// Prompter asks a single question and returns its final value: a string for input and
// secret questions, a bool for confirm questions. Defaults are applied by the Prompter.
type Prompter interface {
	Ask(q api.Question) (any, error)
}

// Collect asks every question in order and returns the resulting record.
// Any failure of the prompter means the input channel is unusable.
func Collect(p Prompter, questions []api.Question) (*api.AnswerRecord, error) {
	values := make(map[string]any, len(questions))
	for _, q := range questions {
		v, err := p.Ask(q)
		if err != nil {
			return nil, api.EnvironmentError(fmt.Sprintf("reading answer for %s", q.Name), err)
		}
		if err := checkType(q, v); err != nil {
			return nil, api.EnvironmentError(fmt.Sprintf("answer for %s", q.Name), err)
		}
		values[q.Name] = v
	}

	record, err := api.NewAnswerRecord(values)
	if err != nil {
		return nil, api.EnvironmentError("building answer record", err)
	}
	slog.Debug("answers collected", "names", record.Names())
	return record, nil
}

func checkType(q api.Question, v any) error {
	switch v.(type) {
	case bool:
		if q.Kind == api.KindConfirm {
			return nil
		}
	case string:
		if q.Kind != api.KindConfirm {
			return nil
		}
	}
	return fmt.Errorf("%s question got %T", q.Kind, v)
}
