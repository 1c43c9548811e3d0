package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rsmanito/expense-cards/cardsui"
	"github.com/rsmanito/expense-cards/models"
	"github.com/rsmanito/expense-cards/nav"
)

// terminal is the notification and confirmation surface of the card page.
type terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	return &terminal{in: bufio.NewReader(in), out: out}
}

func (t *terminal) Success(message string) {
	fmt.Fprintf(t.out, "✓ %s\n", message)
}

func (t *terminal) Error(message string) {
	fmt.Fprintf(t.out, "✗ %s\n", message)
}

// Confirm defaults to no, including when input has ended.
func (t *terminal) Confirm(message string) bool {
	answer, err := t.ask(message + " [y/N]")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ask prints prompt and returns the trimmed line typed in reply. A last
// line without a trailing newline is still returned; io.EOF is reported
// only once nothing is left to read.
func (t *terminal) ask(prompt string) (string, error) {
	fmt.Fprintf(t.out, "%s ", prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (t *terminal) renderNav(path string) {
	var parts []string
	for _, item := range nav.Bar(path) {
		label := item.Icon + " " + item.Label
		if item.Active {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	fmt.Fprintln(t.out, strings.Join(parts, "  "))
}

func (t *terminal) renderList(state cardsui.ListState) {
	switch state.Status {
	case cardsui.ListLoading:
		fmt.Fprintln(t.out, "Loading cards...")
		return
	case cardsui.ListEmpty:
		fmt.Fprintln(t.out, "No cards yet. Type \"add\" to register your first card.")
		return
	case cardsui.ListFailed:
		fmt.Fprintf(t.out, "Could not load cards: %v\n", state.Err)
	}

	for i, row := range state.Rows {
		line := fmt.Sprintf("%2d. %-20s %-8s %s", i+1, row.Name, row.Badge, row.MaskedNumber)
		if row.Currency != "" {
			line += "  " + row.Currency
		}
		if row.Deleting {
			line += "  (deleting)"
		}
		fmt.Fprintln(t.out, line)
	}
}

func (t *terminal) renderErrors(errs models.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		fmt.Fprintf(t.out, "  %s: %s\n", field, errs[field].Message)
	}
}
