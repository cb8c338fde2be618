package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// choiceItem implements list.Item for a plain option label.
type choiceItem struct {
	label string
}

func (i choiceItem) Title() string       { return i.label }
func (i choiceItem) Description() string { return "" }
func (i choiceItem) FilterValue() string { return i.label }

// multiItem is a toggleable option label.
type multiItem struct {
	label   string
	checked bool
}

func (i multiItem) Title() string {
	if i.checked {
		return "[x] " + i.label
	}
	return "[ ] " + i.label
}
func (i multiItem) Description() string { return "" }
func (i multiItem) FilterValue() string { return i.label }

func newPromptList(title string, items []list.Item) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	l := list.New(items, delegate, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}

type selectModel struct {
	list     list.Model
	choice   string
	done     bool
	canceled bool
}

func newSelectModel(title string, options []string) selectModel {
	items := make([]list.Item, len(options))
	for i, option := range options {
		items[i] = choiceItem{label: option}
	}
	return selectModel{list: newPromptList(title, items)}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.canceled = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(choiceItem); ok {
				m.choice = item.label
				m.done = true
				return m, tea.Quit
			}
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	return m.list.View()
}

type multiModel struct {
	list     list.Model
	done     bool
	canceled bool
}

func newMultiModel(title string, options []string, preselected []string) multiModel {
	selected := make(map[string]struct{}, len(preselected))
	for _, option := range preselected {
		selected[option] = struct{}{}
	}
	items := make([]list.Item, len(options))
	for i, option := range options {
		_, checked := selected[option]
		items[i] = multiItem{label: option, checked: checked}
	}
	return multiModel{list: newPromptList(title, items)}
}

func (m multiModel) Init() tea.Cmd { return nil }

func (m multiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.canceled = true
			return m, tea.Quit
		case " ":
			if item, ok := m.list.SelectedItem().(multiItem); ok {
				item.checked = !item.checked
				return m, m.list.SetItem(m.list.Index(), item)
			}
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m multiModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	return m.list.View()
}

// chosen returns checked labels in option order.
func (m multiModel) chosen() []string {
	var out []string
	for _, item := range m.list.Items() {
		if mi, ok := item.(multiItem); ok && mi.checked {
			out = append(out, mi.label)
		}
	}
	return out
}
