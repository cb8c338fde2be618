package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type confirmModel struct {
	question string
	fallback bool
	answer   bool
	done     bool
	canceled bool
}

func newConfirmModel(question string, fallback bool) confirmModel {
	return confirmModel{question: question, fallback: fallback}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.canceled = true
		return m, tea.Quit
	case "y", "Y":
		m.answer = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.answer = false
		m.done = true
		return m, tea.Quit
	case "enter":
		m.answer = m.fallback
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	hint := "(y/N)"
	if m.fallback {
		hint = "(Y/n)"
	}
	return questionStyle.Render(m.question) + " " + hintStyle.Render(hint) + "\n"
}

type inputModel struct {
	prompt   string
	input    textinput.Model
	done     bool
	canceled bool
}

func newInputModel(prompt, placeholder string) inputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	return inputModel{prompt: prompt, input: ti}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	return questionStyle.Render(m.prompt) + "\n" + m.input.View() + "\n"
}

// value returns the typed answer, falling back to the placeholder on an
// empty submission.
func (m inputModel) value() string {
	typed := strings.TrimSpace(m.input.Value())
	if typed == "" {
		return m.input.Placeholder
	}
	return typed
}
