// Package ui implements the interactive facade as small bubbletea programs,
// one prompt per program: pick one, pick many, confirm, or type a value. Auto
// answers the same four prompts without a terminal for scripted runs.
package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCanceled reports that the user backed out of a prompt.
var ErrCanceled = errors.New("ui: canceled")

// Terminal drives interactive prompts on the controlling terminal.
type Terminal struct {
	run func(tea.Model) (tea.Model, error)
}

// TerminalOption customizes Terminal construction for tests and alternate
// runtimes.
type TerminalOption func(*Terminal)

// WithProgramRunner overrides how prompt programs execute.
func WithProgramRunner(run func(tea.Model) (tea.Model, error)) TerminalOption {
	return func(t *Terminal) {
		if run != nil {
			t.run = run
		}
	}
}

// NewTerminal builds an interactive prompter.
func NewTerminal(opts ...TerminalOption) *Terminal {
	t := &Terminal{run: runProgram}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func runProgram(model tea.Model) (tea.Model, error) {
	return tea.NewProgram(model).Run()
}

// MultiSelect asks the user to toggle any number of options. The answer keeps
// option order regardless of toggle order.
func (t *Terminal) MultiSelect(title string, options []string, preselected []string) ([]string, error) {
	if len(options) == 0 {
		return nil, nil
	}
	out, err := t.run(newMultiModel(title, options, preselected))
	if err != nil {
		return nil, fmt.Errorf("ui: multi-select: %w", err)
	}
	final, ok := out.(multiModel)
	if !ok || final.canceled {
		return nil, ErrCanceled
	}
	return final.chosen(), nil
}

// Select asks the user to pick exactly one option.
func (t *Terminal) Select(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("ui: select %q has no options", title)
	}
	out, err := t.run(newSelectModel(title, options))
	if err != nil {
		return "", fmt.Errorf("ui: select: %w", err)
	}
	final, ok := out.(selectModel)
	if !ok || final.canceled {
		return "", ErrCanceled
	}
	return final.choice, nil
}

// Confirm asks a yes/no question; bare enter answers with fallback.
func (t *Terminal) Confirm(question string, fallback bool) (bool, error) {
	out, err := t.run(newConfirmModel(question, fallback))
	if err != nil {
		return false, fmt.Errorf("ui: confirm: %w", err)
	}
	final, ok := out.(confirmModel)
	if !ok || final.canceled {
		return false, ErrCanceled
	}
	return final.answer, nil
}

// Input asks for a free-text value; an empty submission answers with the
// placeholder.
func (t *Terminal) Input(prompt, placeholder string) (string, error) {
	out, err := t.run(newInputModel(prompt, placeholder))
	if err != nil {
		return "", fmt.Errorf("ui: input: %w", err)
	}
	final, ok := out.(inputModel)
	if !ok || final.canceled {
		return "", ErrCanceled
	}
	return final.value(), nil
}

// Auto answers prompts without a terminal: preselected options stand, the
// first option wins a select, Accept (or the fallback) answers confirms, and
// placeholders answer inputs.
type Auto struct {
	// Accept makes every Confirm answer true. When false, Confirm answers
	// with the caller's fallback.
	Accept bool
}

func (a Auto) MultiSelect(title string, options []string, preselected []string) ([]string, error) {
	return append([]string{}, preselected...), nil
}

func (a Auto) Select(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("ui: select %q has no options", title)
	}
	return options[0], nil
}

func (a Auto) Confirm(question string, fallback bool) (bool, error) {
	if a.Accept {
		return true, nil
	}
	return fallback, nil
}

func (a Auto) Input(prompt, placeholder string) (string, error) {
	return placeholder, nil
}
