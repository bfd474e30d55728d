// Package countdown shows the time left until the conference opens.
package countdown

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jasicon/jasreg/internal/ui/styles"
)

// Interval is the refresh period of the countdown.
const Interval = time.Second

// TickMsg advances the countdown with the given generation.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// Remaining is the time left split into display units.
type Remaining struct {
	Days, Hours, Minutes, Seconds int
}

// Until splits target-now into units. A target in the past yields zeros.
func Until(target, now time.Time) Remaining {
	d := target.Sub(now)
	if d <= 0 {
		return Remaining{}
	}
	secs := int(d / time.Second)
	return Remaining{
		Days:    secs / 86400,
		Hours:   secs / 3600 % 24,
		Minutes: secs / 60 % 60,
		Seconds: secs % 60,
	}
}

// Model is a countdown that owns its tick loop. Ticks carry the generation
// they were scheduled under; Stop bumps it so in-flight ticks are dropped.
type Model struct {
	target  time.Time
	now     time.Time
	clock   func() time.Time
	gen     int
	running bool
}

// New creates a stopped countdown towards target.
func New(target time.Time) Model {
	return Model{target: target, clock: time.Now, now: time.Now()}
}

// WithClock replaces the clock used by Start.
func (m Model) WithClock(clock func() time.Time) Model {
	m.clock = clock
	m.now = clock()
	return m
}

// Start begins ticking. Starting a running countdown restarts its loop.
func (m Model) Start() (Model, tea.Cmd) {
	m.gen++
	m.running = true
	m.now = m.clock()
	return m, m.tick()
}

// Stop ends the tick loop.
func (m Model) Stop() Model {
	m.gen++
	m.running = false
	return m
}

// Running reports whether the loop is active.
func (m Model) Running() bool { return m.running }

// Remaining returns the time left as of the last tick.
func (m Model) Remaining() Remaining { return Until(m.target, m.now) }

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(Interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// Update handles TickMsg for the current generation.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || !m.running || tick.Gen != m.gen {
		return m, nil
	}
	m.now = tick.Time
	return m, m.tick()
}

// View renders four boxes: days, hours, minutes, seconds.
func (m Model) View() string {
	r := m.Remaining()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderColor).
		Width(8).
		Align(lipgloss.Center)

	units := []struct {
		v     int
		label string
	}{{r.Days, "Days"}, {r.Hours, "Hours"}, {r.Minutes, "Mins"}, {r.Seconds, "Secs"}}

	cells := make([]string, 0, len(units))
	for _, u := range units {
		body := strings.Join([]string{
			styles.TitleStyle.Render(fmt.Sprintf("%02d", u.v)),
			styles.MutedStyle.Render(strings.ToUpper(u.label)),
		}, "\n")
		cells = append(cells, box.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
