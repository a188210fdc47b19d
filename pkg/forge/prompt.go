package forge

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinConfirmer asks yes/no questions on an interactive stream. Empty or
// unrecognized input, and end of input, answer no; only an explicit "y" or
// "yes" (any case) answers yes.
type StdinConfirmer struct {
	In  *bufio.Reader
	Out io.Writer
}

// NewStdinConfirmer returns a confirmer reading stdin and prompting on
// stderr, so prompts stay visible when stdout is redirected.
func NewStdinConfirmer() *StdinConfirmer {
	return &StdinConfirmer{In: bufio.NewReader(os.Stdin), Out: os.Stderr}
}

// Confirm implements Confirmer.
func (c *StdinConfirmer) Confirm(prompt string) (bool, error) {
	if _, err := fmt.Fprintf(c.Out, "%s [y/N] ", prompt); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := c.In.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
