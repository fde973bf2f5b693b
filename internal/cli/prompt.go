package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// terminalPrompt asks y/N questions on out and reads the answer from in.
// Anything but y or yes declines.
func terminalPrompt(in io.Reader, out io.Writer) func(string) bool {
	reader := bufio.NewReader(in)
	return func(question string) bool {
		fmt.Fprintf(out, "%s\nContinue? [y/N] ", question)
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			fmt.Fprintln(out)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}

// stdinPrompt returns a terminal prompt, or nil when stdin is not a terminal
// so that overwrite questions are declined without blocking.
func stdinPrompt(out io.Writer) func(string) bool {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil
	}
	return terminalPrompt(os.Stdin, out)
}
