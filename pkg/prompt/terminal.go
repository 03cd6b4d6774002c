package prompt

import (
	"github.com/pterm/pterm"
	"github.com/systemstart/stash-init/pkg/api"
)

// Terminal prompts interactively with pterm. Secret answers are masked.
type Terminal struct{}

func (Terminal) Ask(q api.Question) (any, error) {
	switch q.Kind {
	case api.KindConfirm:
		return pterm.DefaultInteractiveConfirm.
			WithDefaultValue(q.DefaultBool()).
			Show(q.Message)
	case api.KindSecret:
		v, err := pterm.DefaultInteractiveTextInput.
			WithMask("*").
			Show(q.Message + " (leave empty to generate one)")
		if err != nil {
			return nil, err
		}
		if v == "" {
			return q.DefaultString(), nil
		}
		return v, nil
	default:
		v, err := pterm.DefaultInteractiveTextInput.
			WithDefaultValue(q.DefaultString()).
			Show(q.Message)
		if err != nil {
			return nil, err
		}
		if v == "" {
			return q.DefaultString(), nil
		}
		return v, nil
	}
}
