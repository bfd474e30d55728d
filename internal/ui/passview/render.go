package passview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jasicon/jasreg/internal/pass"
	"github.com/jasicon/jasreg/internal/ui/styles"
)

// MinWidth is the narrowest card RenderPass will draw.
const MinWidth = 30

// RenderPass draws the pass as a terminal card width cells wide.
func RenderPass(doc pass.Document, width int) string {
	width = max(width, MinWidth)
	// Border and horizontal padding of PassCardStyle.
	inner := width - 2 - 4

	header := spread(
		styles.TitleStyle.Render(strings.ToUpper(doc.Title)),
		styles.AccentStyle.Render(doc.Status),
		inner,
	)
	sub := spread(
		styles.MutedStyle.Render(strings.ToUpper(doc.Subtitle)),
		styles.MutedStyle.Render("ID: ")+styles.TextStyle.Bold(true).Render(doc.DelegateID),
		inner,
	)

	lines := []string{header, sub, styles.MutedStyle.Render(strings.Repeat("─", inner)), ""}
	for _, f := range doc.Fields {
		lines = append(lines, styles.LabelStyle.Render(strings.ToUpper(f.Label)))
		for _, l := range wrap(f.Value, inner) {
			lines = append(lines, styles.TextStyle.Render(l))
		}
		lines = append(lines, "")
	}

	lines = append(lines, styles.TitleStyle.Render(strings.ToUpper(doc.AddOnsHeading)))
	for _, a := range doc.AddOnLines() {
		for i, l := range wrap(a, inner-2) {
			bullet := "  "
			if i == 0 {
				bullet = styles.MoneyStyle.Render("• ")
			}
			lines = append(lines, bullet+styles.TextStyle.Render(l))
		}
	}
	lines = append(lines, "", styles.MutedStyle.Render(strings.Repeat("─", inner)))

	for _, l := range wrap(`"`+doc.Banner+`"`, inner) {
		lines = append(lines, lipgloss.PlaceHorizontal(inner, lipgloss.Center, styles.TextStyle.Italic(true).Render(l)))
	}
	lines = append(lines, lipgloss.PlaceHorizontal(inner, lipgloss.Center, styles.MutedStyle.Render(ansi.Truncate(strings.ToUpper(doc.Footer), inner, "…"))))

	return styles.PassCardStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// wrap breaks s into lines of at most width cells. Words longer than a line
// are cut.
func wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	out := strings.Split(wordwrap.String(s, width), "\n")
	for i, l := range out {
		if ansi.StringWidth(l) > width {
			out[i] = ansi.Truncate(l, width, "…")
		}
	}
	return out
}

// spread places left and right on one line, or stacks them when they do not fit.
func spread(left, right string, width int) string {
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return left + "\n" + right
	}
	return left + strings.Repeat(" ", gap) + right
}
