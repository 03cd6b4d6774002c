// Package runner spawns external tools and reports how they terminated.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

const (
	stderrTailSize = 2048
	waitDelay      = 2 * time.Second
)

// Invocation names an executable, its ordered arguments and an optional working directory.
type Invocation struct {
	Name string
	Args []string
	Dir  string
}

// Command builds an Invocation.
func Command(name string, args ...string) Invocation {
	return Invocation{Name: name, Args: args}
}

// In returns a copy of inv that runs in dir.
func (inv Invocation) In(dir string) Invocation {
	inv.Dir = dir
	return inv
}

func (inv Invocation) String() string {
	return strings.TrimSpace(inv.Name + " " + strings.Join(inv.Args, " "))
}

// Redacted returns the arguments with the values of --*password*= flags masked.
func (inv Invocation) Redacted() []string {
	out := make([]string, len(inv.Args))
	for i, arg := range inv.Args {
		flag, _, found := strings.Cut(arg, "=")
		if found && strings.HasPrefix(flag, "--") && strings.Contains(strings.ToLower(flag), "password") {
			arg = flag + "=***"
		}
		out[i] = arg
	}
	return out
}

// Runner runs an invocation to completion. A nil error means the tool exited zero.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// Prober runs an invocation and returns whatever it wrote to stdout, ignoring its exit status.
type Prober interface {
	Probe(ctx context.Context, inv Invocation) ([]byte, error)
}

// ExitError describes an invocation that could not start or exited non-zero.
type ExitError struct {
	Invocation Invocation
	ExitCode   int // -1 if the process never started or was killed
	Stderr     string
	Err        error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Invocation.Name, e.ExitCode)
	if e.ExitCode < 0 {
		msg = fmt.Sprintf("%s did not complete: %v", e.Invocation.Name, e.Err)
	}
	if e.Stderr != "" {
		msg += "\nstderr: " + e.Stderr
	}
	return msg
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exec runs invocations through os/exec.
type Exec struct {
	Dir     string        // default working directory
	Stdin   io.Reader     // defaults to os.Stdin, so tools can still ask questions
	Stdout  io.Writer     // defaults to os.Stdout
	Stderr  io.Writer     // defaults to os.Stderr
	Timeout time.Duration // per invocation; 0 waits forever
}

// NewExec returns an Exec attached to the process's own stdin, stdout and stderr.
func NewExec(dir string, timeout time.Duration) *Exec {
	return &Exec{Dir: dir, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr, Timeout: timeout}
}

// Run starts the tool and waits for it to terminate.
func (r *Exec) Run(ctx context.Context, inv Invocation) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cmd := r.command(ctx, inv)

	tail := &tailBuffer{max: stderrTailSize}
	cmd.Stdin = r.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = orDefault(r.Stdout, os.Stdout)
	cmd.Stderr = io.MultiWriter(orDefault(r.Stderr, os.Stderr), tail)

	slog.Info("running tool", "tool", inv.Name, "args", inv.Redacted(), "dir", cmd.Dir)
	start := time.Now()

	if err := cmd.Run(); err != nil {
		return exitError(inv, err, tail.String())
	}

	slog.Debug("tool finished", "tool", inv.Name, "duration", time.Since(start))
	return nil
}

// Probe runs the tool and returns its stdout. Exit status is not considered a failure;
// only a tool that cannot be started at all is.
func (r *Exec) Probe(ctx context.Context, inv Invocation) ([]byte, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cmd := r.command(ctx, inv)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return stdout.Bytes(), exitError(inv, err, "")
	}
	return stdout.Bytes(), nil
}

func (r *Exec) command(ctx context.Context, inv Invocation) *exec.Cmd {
	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	cmd.WaitDelay = waitDelay
	cmd.Dir = r.Dir
	if inv.Dir != "" {
		cmd.Dir = inv.Dir
	}
	return cmd
}

func (r *Exec) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.Timeout > 0 {
		return context.WithTimeout(ctx, r.Timeout)
	}
	return context.WithCancel(ctx)
}

func exitError(inv Invocation, err error, stderr string) *ExitError {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &ExitError{Invocation: inv, ExitCode: code, Stderr: strings.TrimSpace(stderr), Err: err}
}

func orDefault(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	max int
	buf []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = t.buf[over:]
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}
