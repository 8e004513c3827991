// Package prompt implements terminal interaction: line prompts for the
// enrollment workflow and the approvers that gate the final commit.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/enunezf/studentdb/internal/core/domain"
)

// Console reads answers line by line from a terminal-like reader
type Console struct {
	reader *bufio.Reader
	out    io.Writer
	warn   *color.Color
}

// NewConsole creates a console reading from in and writing prompts to out
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		reader: bufio.NewReader(in),
		out:    out,
		warn:   color.New(color.FgYellow),
	}
}

// Prompt prints label and returns the next line with surrounding whitespace
// removed. A final line without newline is still returned; once the input
// is exhausted ErrInputClosed is returned.
func (c *Console) Prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)

	line, err := c.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read response: %w", err)
		}
		if line == "" {
			fmt.Fprintln(c.out)
			return "", domain.ErrInputClosed
		}
	}

	return strings.TrimSpace(line), nil
}

// Warn prints a highlighted warning line
func (c *Console) Warn(message string) {
	c.warn.Fprintln(c.out, message)
}

// Confirm asks a yes/no question; only "y" or "yes" count as yes
func (c *Console) Confirm(question string) (bool, error) {
	response, err := c.Prompt(question + " [y/N]: ")
	if err != nil {
		return false, err
	}

	response = strings.ToLower(response)
	return response == "y" || response == "yes", nil
}
