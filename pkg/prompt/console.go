package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/systemstart/stash-init/pkg/api"
)

// Console is a line-based prompter for input that is not a terminal, such as a pipe.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole reads replies from r and writes prompts to w.
func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{in: bufio.NewReader(r), out: w}
}

func (c *Console) Ask(q api.Question) (any, error) {
	if q.Kind == api.KindConfirm {
		return c.confirm(q)
	}

	hint := q.DefaultString()
	if q.Kind == api.KindSecret && hint != "" {
		hint = "generated"
	}
	if hint != "" {
		fmt.Fprintf(c.out, "? %s (%s): ", q.Message, hint)
	} else {
		fmt.Fprintf(c.out, "? %s: ", q.Message)
	}

	line, err := c.readLine()
	if err != nil {
		return nil, err
	}
	if line == "" {
		return q.DefaultString(), nil
	}
	return line, nil
}

func (c *Console) confirm(q api.Question) (bool, error) {
	marker := "[y/N]"
	if q.DefaultBool() {
		marker = "[Y/n]"
	}

	for {
		fmt.Fprintf(c.out, "? %s %s: ", q.Message, marker)
		line, err := c.readLine()
		if err != nil {
			return false, err
		}
		answer, err := api.ParseConfirm(line, q.DefaultBool())
		if err == nil {
			return answer, nil
		}
		fmt.Fprintln(c.out, "Please answer yes or no.")
	}
}

// readLine returns the next line without its terminator. A final line without a
// newline is accepted; end of input before any text is an error.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
