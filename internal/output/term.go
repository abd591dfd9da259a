package output

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ClearScreen clears the terminal when stdout is one.
func ClearScreen() {
	if IsTerminal(os.Stdout) {
		os.Stdout.WriteString("\033[2J\033[H")
	}
}
