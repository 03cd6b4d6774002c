package prompt

import "github.com/systemstart/stash-init/pkg/api"

// Static answers from a fixed map. Questions missing from the map go to Fallback,
// or take their default when Fallback is nil. An empty text value takes the default,
// as an empty reply does at the console.
type Static struct {
	Values   map[string]any
	Fallback Prompter
}

func (s *Static) Ask(q api.Question) (any, error) {
	if v, ok := s.Values[q.Name]; ok {
		if v == "" && q.Kind != api.KindConfirm {
			return q.Default, nil
		}
		return v, nil
	}
	if s.Fallback != nil {
		return s.Fallback.Ask(q)
	}
	return q.Default, nil
}
