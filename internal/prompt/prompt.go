// Package prompt provides the operator confirmation callback used by
// remediation and the connectivity override.
package prompt

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
)

// Confirmer answers a yes/no question put to the operator. Test doubles
// substitute deterministic answers without reimplementing terminal I/O.
type Confirmer func(question string) bool

// Always returns a Confirmer that gives the same answer to every question.
func Always(answer bool) Confirmer {
	return func(string) bool { return answer }
}

// IsInteractive checks if we're running in an interactive terminal.
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	// Character device means a terminal, not a pipe or file.
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// Terminal returns the interactive Confirmer. On a TTY it renders a confirm
// form; otherwise it falls back to a plain line read from stdin. Read errors
// and unknown answers count as "no".
func Terminal() Confirmer {
	if IsInteractive() {
		return confirmForm
	}
	return confirmLine
}

func confirmForm(question string) bool {
	var answer bool
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&answer).
		Run()
	if err != nil {
		return false
	}
	return answer
}

func confirmLine(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", question)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
