package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// terminalPrompter asks on the terminal. Without one attached every answer is no.
type terminalPrompter struct {
	in  *os.File
	out io.Writer
}

func (p terminalPrompter) Confirm(question string) bool {
	if !term.IsTerminal(int(p.in.Fd())) {
		return false
	}

	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
