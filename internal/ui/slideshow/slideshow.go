// Package slideshow rotates the landing hero captions.
package slideshow

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jasicon/jasreg/internal/ui/styles"
)

// Interval is the time each slide stays up.
const Interval = 3 * time.Second

// Slide is one hero caption.
type Slide struct {
	Title   string
	Caption string
}

// TickMsg advances the slideshow with the given generation.
type TickMsg struct {
	Gen int
}

// Model cycles through slides while running.
type Model struct {
	slides  []Slide
	current int
	gen     int
	running bool
}

// New creates a stopped slideshow.
func New(slides []Slide) Model {
	return Model{slides: slides}
}

// Start begins rotating. A slideshow with fewer than two slides stays put.
func (m Model) Start() (Model, tea.Cmd) {
	m.gen++
	m.running = true
	if len(m.slides) < 2 {
		return m, nil
	}
	return m, m.tick()
}

// Stop ends the rotation and drops any pending tick.
func (m Model) Stop() Model {
	m.gen++
	m.running = false
	return m
}

// Running reports whether the slideshow is active.
func (m Model) Running() bool { return m.running }

// Current returns the index of the visible slide.
func (m Model) Current() int { return m.current }

// Select jumps to slide i; out-of-range indexes are ignored.
func (m Model) Select(i int) Model {
	if i >= 0 && i < len(m.slides) {
		m.current = i
	}
	return m
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(Interval, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen}
	})
}

// Update handles TickMsg for the current generation.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || !m.running || tick.Gen != m.gen || len(m.slides) == 0 {
		return m, nil
	}
	m.current = (m.current + 1) % len(m.slides)
	return m, m.tick()
}

// View renders the visible slide and a row of position dots.
func (m Model) View(width int) string {
	if len(m.slides) == 0 {
		return ""
	}
	s := m.slides[m.current]

	dots := make([]string, len(m.slides))
	for i := range m.slides {
		if i == m.current {
			dots[i] = styles.TitleStyle.Render("━━")
		} else {
			dots[i] = styles.MutedStyle.Render("•")
		}
	}

	block := lipgloss.JoinVertical(lipgloss.Center,
		styles.AccentStyle.Render(strings.ToUpper(s.Title)),
		styles.SubtitleStyle.Render(s.Caption),
		strings.Join(dots, " "),
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
