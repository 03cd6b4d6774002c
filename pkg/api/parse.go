package api

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadAnswersFile reads pre-filled answers from a YAML file (.yaml/.yml) or a
// dotenv-style KEY=value file (anything else) and normalizes them against questions.
func LoadAnswersFile(filename string, questions []Question) (map[string]any, error) {
	raw, err := readAnswersFile(filename)
	if err != nil {
		return nil, err
	}

	answers, err := NormalizeAnswers(questions, raw)
	if err != nil {
		return nil, fmt.Errorf("validating answers file %s: %w", filename, err)
	}
	return answers, nil
}

func readAnswersFile(filename string) (map[string]any, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("reading answers file: %w", err)
		}
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing answers file: %w", err)
		}
		if raw == nil {
			raw = make(map[string]any)
		}
		return raw, nil
	default:
		env, err := godotenv.Read(filename)
		if err != nil {
			return nil, fmt.Errorf("reading answers file: %w", err)
		}
		raw := make(map[string]any, len(env))
		for k, v := range env {
			raw[k] = v
		}
		return raw, nil
	}
}

// MergeAnswers performs a shallow merge of overrides over base.
func MergeAnswers(base, overrides map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(overrides))
	maps.Copy(merged, base)
	maps.Copy(merged, overrides)
	return merged
}
