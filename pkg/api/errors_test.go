package api

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"environment", EnvironmentError("folder not empty", nil), KindEnvironment},
		{"validation", ValidationError("bad key", cause), KindValidation},
		{"io", IOError("write .env", cause), KindIO},
		{"tool", ToolFailure("wp failed", cause), KindToolFailure},
		{"wrapped", fmt.Errorf("step x: %w", IOError("read", cause)), KindIO},
		{"plain", cause, ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := IOError("writing .env", cause)

	if err.Error() != "writing .env: permission denied" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find cause")
	}
	if EnvironmentError("the folder is not empty", nil).Error() != "the folder is not empty" {
		t.Error("message without cause should be Msg only")
	}
}
