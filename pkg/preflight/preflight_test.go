package preflight

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/systemstart/stash-init/pkg/api"
	"github.com/systemstart/stash-init/pkg/runner"
	"github.com/systemstart/stash-init/pkg/runner/runnertest"
)

func TestCheckWorkspaceEmpty(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		wantErr bool
	}{
		{"empty", nil, false},
		{"one file", []string{"index.php"}, true},
		{"hidden file", []string{".env"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				if err := os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			err := NewChecker(dir, &runnertest.Recorder{}).CheckWorkspaceEmpty()
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckWorkspaceEmpty() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && api.KindOf(err) != api.KindEnvironment {
				t.Errorf("expected environment error, got %q", api.KindOf(err))
			}
		})
	}
}

func TestCheckWorkspaceEmpty_MissingDir(t *testing.T) {
	err := NewChecker("/nonexistent/workspace", &runnertest.Recorder{}).CheckWorkspaceEmpty()
	if api.KindOf(err) != api.KindEnvironment {
		t.Fatalf("expected environment error, got %v", err)
	}
}

func TestCheckToolAvailable(t *testing.T) {
	rec := &runnertest.Recorder{Outputs: map[string]string{"wp": "/usr/local/bin/wp\n"}}
	c := NewChecker(t.TempDir(), rec)

	if err := c.CheckToolAvailable(context.Background(), "wp"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.Commands(); len(got) != 1 || got[0] != "which wp" {
		t.Errorf("unexpected probe invocations: %v", got)
	}
}

func TestCheckToolAvailable_NoOutputIsMissing(t *testing.T) {
	// The probe exits zero but prints nothing.
	rec := &runnertest.Recorder{Outputs: map[string]string{"composer": ""}}
	c := NewChecker(t.TempDir(), rec)

	err := c.CheckToolAvailable(context.Background(), "composer")
	if err == nil {
		t.Fatal("expected error when probe prints nothing")
	}
	if api.KindOf(err) != api.KindEnvironment {
		t.Errorf("expected environment error, got %q", api.KindOf(err))
	}
	if !strings.Contains(err.Error(), "composer is not installed") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestCheckToolAvailable_AnyOutputCounts(t *testing.T) {
	rec := &runnertest.Recorder{Outputs: map[string]string{"wp": "\n"}}
	c := NewChecker(t.TempDir(), rec)

	if err := c.CheckToolAvailable(context.Background(), "wp"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheckToolAvailable_CustomLocator(t *testing.T) {
	rec := &runnertest.Recorder{Outputs: map[string]string{"git": "git is /usr/bin/git"}}
	c := &Checker{Dir: t.TempDir(), Prober: rec, Locator: "command-v"}

	if err := c.CheckToolAvailable(context.Background(), "git"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Calls[0].Name != "command-v" {
		t.Errorf("expected custom locator, got %q", rec.Calls[0].Name)
	}
}

func TestCheckToolAvailable_SilentProcessExitingZero(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not in PATH")
	}

	// `true wp` exits zero without printing anything.
	c := &Checker{Dir: t.TempDir(), Prober: &runner.Exec{}, Locator: "true"}
	err := c.CheckToolAvailable(context.Background(), "wp")
	if api.KindOf(err) != api.KindEnvironment {
		t.Fatalf("expected environment error, got %v", err)
	}
}
