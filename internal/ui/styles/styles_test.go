package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestRenderFormSection(t *testing.T) {
	tests := []struct {
		name           string
		content        []string
		title          string
		hint           string
		width          int
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:         "title and hint",
			content:      []string{"  Dr. A. Sharma"},
			title:        "Full Name",
			hint:         "required",
			width:        40,
			wantContains: []string{"╭─ Full Name", "(required)", "│", "Dr. A. Sharma", "╰"},
		},
		{
			name:           "empty title renders plain border",
			content:        []string{"x"},
			width:          20,
			wantContains:   []string{"╭", "╮", "│", "╰", "╯"},
			wantNotContain: []string{"╭─ "},
		},
		{
			name:         "narrow width",
			content:      []string{"X"},
			title:        "T",
			width:        3,
			wantContains: []string{"╭", "╮", "╰", "╯"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderFormSection(tt.content, tt.title, tt.hint, tt.width, false, false)
			for _, want := range tt.wantContains {
				require.Contains(t, result, want)
			}
			for _, notWant := range tt.wantNotContain {
				require.NotContains(t, result, notWant)
			}
		})
	}
}

func TestRenderFormSection_StatesRenderDifferently(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	content := []string{"Content"}
	plain := RenderFormSection(content, "Age", "", 30, false, false)
	focused := RenderFormSection(content, "Age", "", 30, true, false)
	invalid := RenderFormSection(content, "Age", "", 30, true, true)

	require.NotEqual(t, plain, focused)
	require.NotEqual(t, focused, invalid)
}

func TestRenderFormSection_PadsContentLines(t *testing.T) {
	result := RenderFormSection([]string{"Short", "A longer row"}, "Title", "", 30, false, false)
	lines := strings.Split(result, "\n")
	require.Len(t, lines, 4)
	for _, l := range lines {
		require.Equal(t, 30, lipgloss.Width(l))
	}
}

func TestButton(t *testing.T) {
	for _, tc := range []struct{ primary, focused bool }{
		{true, true}, {true, false}, {false, true}, {false, false},
	} {
		require.Contains(t, Button("Begin Registration", tc.primary, tc.focused), "Begin Registration")
	}
}

func TestApplyTheme_IgnoresEmpty(t *testing.T) {
	gold, teal, muted := GoldColor, TealColor, MutedColor
	t.Cleanup(func() { ApplyTheme(string(gold), string(teal), string(muted)) })

	ApplyTheme("", "", "")
	require.Equal(t, gold, GoldColor)
	require.Equal(t, teal, TealColor)
	require.Equal(t, muted, MutedColor)

	ApplyTheme("#FFD700", "", "")
	require.Equal(t, lipgloss.Color("#FFD700"), GoldColor)
	require.Equal(t, teal, TealColor)
}
