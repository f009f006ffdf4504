package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/agusespa/tickduel/pkg/observer"
)

// Console is the line-oriented terminal the players interact with. Every
// input is a line terminated by ENTER.
type Console struct {
	in       *bufio.Reader
	out      io.Writer
	terminal bool
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:       bufio.NewReader(in),
		out:      out,
		terminal: IsTerminal(out),
	}
}

// Stdio returns a console bound to the process standard streams.
func Stdio() *Console {
	return NewConsole(os.Stdin, os.Stdout)
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (c *Console) Terminal() bool {
	return c.terminal
}

// Renderer picks the live counter renderer for this console. Frames are only
// drawn on a real terminal where the line can be rewritten in place.
func (c *Console) Renderer() observer.Renderer {
	if c.terminal {
		return observer.NewTerminalRenderer(c.out)
	}
	return observer.NopRenderer{}
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Heading prints text decorated according to level.
func (c *Console) Heading(text string, level int) {
	switch level {
	case 1:
		c.Printf("##### %s #####\n", text)
	case 2:
		c.Printf("## %s ##\n", text)
	case 3:
		c.Printf("# %s #\n", text)
	default:
		c.Println(text)
	}
}

// ReadLine returns the next line without its line terminator. A final line
// without a newline is returned as-is; io.EOF is only returned when nothing
// was left to read.
func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WaitForEnter blocks until the player presses ENTER.
func (c *Console) WaitForEnter() error {
	if _, err := c.ReadLine(); err != nil {
		return errors.Wrap(err, "failed to read user input")
	}
	return nil
}

// Choice prints numbered options and returns the zero-based index picked.
// Anything that is not a valid option number, a closed input included,
// selects the first option.
func (c *Console) Choice(prompt string, options []string) (int, error) {
	c.Println(prompt)
	for i, option := range options {
		c.Printf("→ %d: %s\n", i+1, option)
	}
	c.Printf(">")

	input, err := c.ReadLine()
	if err != nil && err != io.EOF {
		return 0, errors.Wrap(err, "failed to read user choice")
	}

	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(options) {
		c.Println("Invalid choice. Selecting the first option by default.")
		return 0, nil
	}
	return n - 1, nil
}

// Confirm prints the question and reports whether the answer was y or Y.
// A closed input counts as no.
func (c *Console) Confirm(question string) (bool, error) {
	c.Printf("%s [Y/N]\n>", question)
	input, err := c.ReadLine()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to read confirmation")
	}
	return strings.EqualFold(strings.TrimSpace(input), "y"), nil
}
