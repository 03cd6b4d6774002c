package main

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/systemstart/stash-init/pkg/pipeline"
)

// progress prints one line per phase. Without a terminal the lines are plain text.
type progress struct {
	w      io.Writer
	styled bool
}

func newProgress(w io.Writer, styled bool) *progress {
	return &progress{w: w, styled: styled}
}

func (p *progress) PhaseStarted(state pipeline.State) {
	if p.styled {
		_, _ = fmt.Fprint(p.w, pterm.DefaultSection.Sprint(string(state)))
		return
	}
	_, _ = fmt.Fprintf(p.w, "==> %s\n", state)
}

func (p *progress) PhaseFinished(state pipeline.State, err error) {
	switch {
	case err != nil && p.styled:
		_, _ = fmt.Fprintln(p.w, pterm.Error.Sprintf("%s aborted", state))
	case err != nil:
		_, _ = fmt.Fprintf(p.w, "--- %s aborted\n", state)
	case p.styled:
		_, _ = fmt.Fprintln(p.w, pterm.Success.Sprintf("%s done", state))
	default:
		_, _ = fmt.Fprintf(p.w, "--- %s done\n", state)
	}
}
