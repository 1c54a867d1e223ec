package testutil

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ModelHarness drives a tea.Model the way a program would, without a
// terminal, collecting the commands it returns.
type ModelHarness struct {
	model tea.Model
	cmds  []tea.Cmd
}

// NewModelHarness creates a harness and captures the model's Init command.
func NewModelHarness(m tea.Model) *ModelHarness {
	h := &ModelHarness{model: m}
	if cmd := m.Init(); cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return h
}

// Model returns the current model for type assertion.
func (h *ModelHarness) Model() tea.Model {
	return h.model
}

// View returns the model's rendered content.
func (h *ModelHarness) View() string {
	return h.model.View()
}

// SendMsg sends any message to the model and returns the resulting command.
func (h *ModelHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// SendKey simulates a key press. Named keys such as "right" or "ctrl+c"
// map to their key types; anything else is sent as runes.
func (h *ModelHarness) SendKey(key string) tea.Cmd {
	return h.SendMsg(KeyMsg(key))
}

// KeyMsg builds the key message bubbletea would deliver for key.
func KeyMsg(key string) tea.KeyMsg {
	switch key {
	case " ", "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// Commands returns all commands collected since creation or last ClearCommands.
func (h *ModelHarness) Commands() []tea.Cmd {
	return h.cmds
}

// ClearCommands clears the collected commands.
func (h *ModelHarness) ClearCommands() {
	h.cmds = nil
}

// ExecuteCmd runs a command and returns the resulting message.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// Flatten runs cmd and expands batches, returning every message produced.
// Commands that block (timers, channel watchers) must not be passed here.
func Flatten(cmd tea.Cmd) []tea.Msg {
	msg := ExecuteCmd(cmd)
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Flatten(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// ViewContains checks if the model's view contains the given substring.
func (h *ModelHarness) ViewContains(substr string) bool {
	return ContainsLine(StripANSI(h.View()), substr)
}
