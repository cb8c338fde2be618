package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSelectModelPicksHighlightedOption(t *testing.T) {
	model := drive(t, newSelectModel("Pick one", []string{"alpha", "beta", "gamma"}), "down", "enter")
	final := model.(selectModel)
	if final.canceled {
		t.Fatalf("unexpected cancel")
	}
	if final.choice != "beta" {
		t.Fatalf("choice = %q, want beta", final.choice)
	}
}

func TestSelectModelCancels(t *testing.T) {
	model := drive(t, newSelectModel("Pick one", []string{"alpha"}), "esc")
	if !model.(selectModel).canceled {
		t.Fatalf("esc must cancel")
	}
}

func TestMultiModelTogglesAndKeepsOptionOrder(t *testing.T) {
	model := drive(t,
		newMultiModel("Pick several", []string{"alpha", "beta", "gamma"}, []string{"gamma"}),
		"space", "down", "space", "space", "enter",
	)
	final := model.(multiModel)
	// alpha toggled on, beta toggled on then off, gamma preselected; answer
	// keeps option order.
	got := final.chosen()
	if len(got) != 2 || got[0] != "alpha" || got[1] != "gamma" {
		t.Fatalf("chosen = %v", got)
	}
}

func TestConfirmModelKeysAndFallback(t *testing.T) {
	yes := drive(t, newConfirmModel("Install skills?", false), "y").(confirmModel)
	if !yes.answer {
		t.Fatalf("y must answer true")
	}
	no := drive(t, newConfirmModel("Install skills?", true), "n").(confirmModel)
	if no.answer {
		t.Fatalf("n must answer false")
	}
	def := drive(t, newConfirmModel("Install skills?", true), "enter").(confirmModel)
	if !def.answer {
		t.Fatalf("enter must answer with the fallback")
	}
	if view := newConfirmModel("Install skills?", true).View(); !strings.Contains(view, "(Y/n)") {
		t.Fatalf("view should hint the fallback: %q", view)
	}
}

func TestInputModelFallsBackToPlaceholder(t *testing.T) {
	typed := drive(t, newInputModel("Project name", "demo"), "w", "e", "b", "enter").(inputModel)
	if got := typed.value(); got != "web" {
		t.Fatalf("value = %q, want web", got)
	}
	empty := drive(t, newInputModel("Project name", "demo"), "enter").(inputModel)
	if got := empty.value(); got != "demo" {
		t.Fatalf("empty submission must answer with the placeholder, got %q", got)
	}
}

func TestTerminalRunsModelsThroughRunner(t *testing.T) {
	terminal := NewTerminal(WithProgramRunner(func(model tea.Model) (tea.Model, error) {
		return driveModel(model, "down", "enter"), nil
	}))
	choice, err := terminal.Select("Pick one", []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if choice != "beta" {
		t.Fatalf("choice = %q", choice)
	}
}

func TestTerminalSelectRejectsEmptyOptions(t *testing.T) {
	terminal := NewTerminal(WithProgramRunner(func(model tea.Model) (tea.Model, error) {
		t.Fatalf("runner must not run for empty options")
		return model, nil
	}))
	if _, err := terminal.Select("Pick one", nil); err == nil {
		t.Fatalf("expected error for empty options")
	}
}

func TestAutoPrompterAnswers(t *testing.T) {
	auto := Auto{Accept: true}
	picked, err := auto.MultiSelect("Pick several", []string{"a", "b"}, []string{"b"})
	if err != nil || len(picked) != 1 || picked[0] != "b" {
		t.Fatalf("multi-select = %v, %v", picked, err)
	}
	first, err := auto.Select("Pick one", []string{"a", "b"})
	if err != nil || first != "a" {
		t.Fatalf("select = %q, %v", first, err)
	}
	ok, err := auto.Confirm("Proceed?", false)
	if err != nil || !ok {
		t.Fatalf("accepting prompter must confirm, got %v, %v", ok, err)
	}
	declined, err := Auto{}.Confirm("Proceed?", false)
	if err != nil || declined {
		t.Fatalf("zero prompter must answer with the fallback, got %v, %v", declined, err)
	}
	name, err := auto.Input("Project name", "demo")
	if err != nil || name != "demo" {
		t.Fatalf("input = %q, %v", name, err)
	}
}

func drive(t *testing.T, model tea.Model, keys ...string) tea.Model {
	t.Helper()
	return driveModel(model, keys...)
}

func driveModel(model tea.Model, keys ...string) tea.Model {
	for _, key := range keys {
		model, _ = model.Update(pressKey(key))
	}
	return model
}

func pressKey(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
