package keys

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestBindingsHaveHelp(t *testing.T) {
	bindings := []key.Binding{
		Common.Quit, Common.Help,
		Landing.Begin, Landing.Quit,
		Wizard.NextField, Wizard.PrevField, Wizard.Left, Wizard.Right,
		Wizard.Toggle, Wizard.Next, Wizard.Back, Wizard.Leave,
		Confirmed.Download, Confirmed.Quit,
	}
	for _, b := range bindings {
		require.NotEmpty(t, b.Keys())
		require.NotEmpty(t, b.Help().Key)
		require.NotEmpty(t, b.Help().Desc)
	}
}

func TestMatches(t *testing.T) {
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, Wizard.Next))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, Wizard.Back))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlX}, Wizard.Leave))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, Wizard.Leave))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyTab}, Wizard.NextField))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyShiftTab}, Wizard.PrevField))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, Wizard.Toggle))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}, Confirmed.Download))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, Common.Quit))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, Wizard.Back))
}

func TestHelpKeyMaps(t *testing.T) {
	var _ help.KeyMap = Landing
	var _ help.KeyMap = Wizard
	var _ help.KeyMap = Confirmed

	require.Len(t, Wizard.ShortHelp(), 3)
	require.Len(t, Wizard.FullHelp(), 4)
	require.Contains(t, help.New().View(Confirmed), "download pass")
}
