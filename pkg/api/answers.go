package api

import (
	"fmt"
	"maps"
	"slices"
)

// AnswerRecord is the immutable set of answers for one provisioning run.
// Values are either string or bool.
type AnswerRecord struct {
	values map[string]any
}

// NewAnswerRecord copies values into a new record. Only string and bool values are accepted.
func NewAnswerRecord(values map[string]any) (*AnswerRecord, error) {
	copied := make(map[string]any, len(values))
	for name, v := range values {
		switch v.(type) {
		case string, bool:
			copied[name] = v
		default:
			return nil, fmt.Errorf("answer %q: unsupported value type %T", name, v)
		}
	}
	return &AnswerRecord{values: copied}, nil
}

// Has reports whether name was answered (possibly with a default).
func (r *AnswerRecord) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// String returns a text answer. Boolean answers render as "true"/"false"; missing answers as "".
func (r *AnswerRecord) String(name string) string {
	switch v := r.values[name].(type) {
	case string:
		return v
	case bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// Truthy is true for a boolean true or a non-empty string.
func (r *AnswerRecord) Truthy(name string) bool {
	switch v := r.values[name].(type) {
	case bool:
		return v
	case string:
		return v != ""
	default:
		return false
	}
}

// Missing returns the names in want that have no answer, in the order given.
func (r *AnswerRecord) Missing(want ...string) []string {
	var missing []string
	for _, name := range want {
		if !r.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Names returns the answered names in sorted order.
func (r *AnswerRecord) Names() []string {
	var names []string
	for name := range r.values {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Map returns a copy of the answers, suitable as template data.
func (r *AnswerRecord) Map() map[string]any {
	return maps.Clone(r.values)
}
