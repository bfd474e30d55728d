// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// CommonKeys are bound in every view.
type CommonKeys struct {
	Quit key.Binding
	Help key.Binding
}

// LandingKeys drive the landing view.
type LandingKeys struct {
	Begin key.Binding
	Quit  key.Binding
}

// WizardKeys drive the registration wizard.
type WizardKeys struct {
	NextField key.Binding
	PrevField key.Binding
	Left      key.Binding
	Right     key.Binding
	Toggle    key.Binding
	Next      key.Binding
	Back      key.Binding
	Leave     key.Binding
}

// ConfirmedKeys drive the confirmed pass view.
type ConfirmedKeys struct {
	Download key.Binding
	Quit     key.Binding
}

// Common holds keybindings active in every view.
var Common = CommonKeys{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
}

// Landing holds landing view keybindings.
var Landing = LandingKeys{
	Begin: key.NewBinding(
		key.WithKeys("enter", "r"),
		key.WithHelp("enter", "begin registration"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// Wizard holds wizard keybindings.
var Wizard = WizardKeys{
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab/↓", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab/↑", "previous field"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "previous option"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next option"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "toggle"),
	),
	Next: key.NewBinding(
		key.WithKeys("enter", "ctrl+n"),
		key.WithHelp("enter", "continue"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "ctrl+b"),
		key.WithHelp("esc", "back"),
	),
	Leave: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "exit wizard"),
	),
}

// Confirmed holds confirmed view keybindings.
var Confirmed = ConfirmedKeys{
	Download: key.NewBinding(
		key.WithKeys("d", "enter"),
		key.WithHelp("d", "download pass (pdf)"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k LandingKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Begin, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k LandingKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Begin, k.Quit}, {Common.Help, Common.Quit}}
}

// ShortHelp implements help.KeyMap.
func (k WizardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Next, k.Back}
}

// FullHelp implements help.KeyMap.
func (k WizardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField},
		{k.Left, k.Right, k.Toggle},
		{k.Next, k.Back, k.Leave},
		{Common.Help, Common.Quit},
	}
}

// ShortHelp implements help.KeyMap.
func (k ConfirmedKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Download, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ConfirmedKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Download, k.Quit}, {Common.Help, Common.Quit}}
}
