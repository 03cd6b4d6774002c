package api

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeAnswers checks raw answers against the question set and converts them to
// the value type each question yields. Unknown names are rejected.
func NormalizeAnswers(questions []Question, raw map[string]any) (map[string]any, error) {
	byName := make(map[string]Question, len(questions))
	for _, q := range questions {
		byName[q.Name] = q
	}

	answers := make(map[string]any, len(raw))
	for name, v := range raw {
		q, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown answer %q", name)
		}
		value, err := normalizeValue(q, v)
		if err != nil {
			return nil, fmt.Errorf("answer %q: %w", name, err)
		}
		answers[name] = value
	}
	return answers, nil
}

func normalizeValue(q Question, v any) (any, error) {
	if q.Kind == KindConfirm {
		switch t := v.(type) {
		case bool:
			return t, nil
		case string:
			return ParseConfirm(t, q.DefaultBool())
		default:
			return nil, fmt.Errorf("expected yes/no, got %T", v)
		}
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case nil:
		return "", nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(t), nil
	default:
		return nil, fmt.Errorf("expected text, got %T", v)
	}
}

// ParseConfirm interprets a yes/no reply. An empty reply yields def.
func ParseConfirm(s string, def bool) (bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("not a yes/no answer: %q", s)
	}
	return b, nil
}
