package demos

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const ruleWidth = 60

// Console handles demonstration output and pacing. When attached to a
// terminal it pauses between scenes so a presenter can talk through each
// one; piped or captured output runs straight through.
type Console struct {
	out         io.Writer
	in          *bufio.Reader
	interactive bool
}

// NewConsole creates a console on stdin and stdout. Pacing pauses are
// enabled only when stdin is a terminal.
func NewConsole() *Console {
	return &Console{
		out:         os.Stdout,
		in:          bufio.NewReader(os.Stdin),
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// NewTestConsole creates a non-interactive console writing to out.
func NewTestConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Printf writes formatted output.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Println writes a line.
func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Banner prints a title between heavy rules.
func (c *Console) Banner(title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(c.out, "\n%s\n%s\n%s\n", rule, title, rule)
}

// Section prints a title between light rules.
func (c *Console) Section(title string) {
	rule := strings.Repeat("-", ruleWidth)
	fmt.Fprintf(c.out, "\n%s\n%s\n%s\n", rule, title, rule)
}

// Pause prints the prompt and waits for Enter when interactive.
// Non-interactive consoles skip the wait so runs stay unattended.
func (c *Console) Pause(prompt string) {
	if !c.interactive {
		return
	}
	fmt.Fprintf(c.out, "\n%s", prompt)
	_, _ = c.in.ReadString('\n')
}
