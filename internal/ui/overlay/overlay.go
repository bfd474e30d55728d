// Package overlay draws one block of terminal output on top of another.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Anchor selects where the foreground block is placed.
type Anchor int

const (
	// Center places the block in the middle of the viewport.
	Center Anchor = iota
	// Bottom places the block at the bottom center, Margin rows above the edge.
	Bottom
)

// Layer describes the viewport the foreground is composed into.
type Layer struct {
	Width  int
	Height int
	Anchor Anchor
	Margin int
}

// Place composes fg over bg. Both may carry ANSI styling; cells outside the
// foreground keep the background's styling.
func (l Layer) Place(fg, bg string) string {
	rows := strings.Split(bg, "\n")
	for len(rows) < l.Height {
		rows = append(rows, strings.Repeat(" ", l.Width))
	}

	block := strings.Split(fg, "\n")
	x, y := l.origin(lipgloss.Width(fg), len(block))

	for i, line := range block {
		row := y + i
		if row >= len(rows) {
			break
		}
		under := rows[row]

		left := ansi.Truncate(under, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		var right string
		if end := x + ansi.StringWidth(line); end < ansi.StringWidth(under) {
			right = ansi.TruncateLeft(under, end, "")
		}
		rows[row] = left + line + right
	}
	return strings.Join(rows, "\n")
}

func (l Layer) origin(w, h int) (int, int) {
	x := max((l.Width-w)/2, 0)
	y := (l.Height - h) / 2
	if l.Anchor == Bottom {
		y = l.Height - h - l.Margin
	}
	return x, max(y, 0)
}
