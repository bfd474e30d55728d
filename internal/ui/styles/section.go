package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderFormSection draws content inside a rounded box whose top edge
// carries the title and hint, e.g. "╭─ Age (years) ─────╮". Each row is
// padded to the inner width. An invalid section is drawn in the error color,
// a focused one in teal.
func RenderFormSection(content []string, title, hint string, width int, focused, invalid bool) string {
	color := MutedColor
	switch {
	case invalid:
		color = ErrorColor
	case focused:
		color = TealColor
	}
	edge := lipgloss.NewStyle().Foreground(color)
	b := lipgloss.RoundedBorder()
	inner := max(width-2, 1)

	var sb strings.Builder
	sb.WriteString(edge.Render(b.TopLeft))
	if title == "" {
		sb.WriteString(edge.Render(strings.Repeat(b.Top, inner)))
	} else {
		label := lipgloss.NewStyle().Bold(true).Foreground(color).Render(title)
		if hint != "" {
			label += " " + MutedStyle.Render("("+hint+")")
		}
		// "─ " + label + " " + fill
		fill := max(inner-lipgloss.Width(label)-3, 0)
		sb.WriteString(edge.Render(b.Top+" ") + label + edge.Render(" "+strings.Repeat(b.Top, fill)))
	}
	sb.WriteString(edge.Render(b.TopRight))

	side := edge.Render(b.Left)
	for _, row := range content {
		sb.WriteString("\n" + side + row + strings.Repeat(" ", max(inner-lipgloss.Width(row), 0)) + edge.Render(b.Right))
	}

	sb.WriteString("\n" + edge.Render(b.BottomLeft+strings.Repeat(b.Bottom, inner)+b.BottomRight))
	return sb.String()
}
