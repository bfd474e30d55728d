// Package landing renders the conference welcome screen: hero slideshow,
// countdown, fee table and the Begin Registration button.
package landing

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/jasicon/jasreg/internal/keys"
	"github.com/jasicon/jasreg/internal/log"
	"github.com/jasicon/jasreg/internal/pricing"
	"github.com/jasicon/jasreg/internal/ui/countdown"
	"github.com/jasicon/jasreg/internal/ui/markdown"
	"github.com/jasicon/jasreg/internal/ui/slideshow"
	"github.com/jasicon/jasreg/internal/ui/styles"
)

// ZoneBegin marks the Begin Registration button.
const ZoneBegin = "landing-begin"

// BeginMsg is sent when the user starts the wizard.
type BeginMsg struct{}

// Config carries the conference details shown on the landing view.
type Config struct {
	Name          string
	Subtitle      string
	Dates         string
	Venue         string
	Notice        string
	MarkdownStyle string
	StartsAt      time.Time
	Slides        []slideshow.Slide
}

// Model is the landing view.
type Model struct {
	cfg       Config
	countdown countdown.Model
	slides    slideshow.Model
	width     int
	height    int

	notice      string
	noticeWidth int
}

// New creates the landing view. Timers stay stopped until Start.
func New(cfg Config) Model {
	return Model{
		cfg:       cfg,
		countdown: countdown.New(cfg.StartsAt),
		slides:    slideshow.New(cfg.Slides),
	}
}

// WithClock sets the clock used by the countdown.
func (m Model) WithClock(clock func() time.Time) Model {
	m.countdown = m.countdown.WithClock(clock)
	return m
}

// Start launches the countdown and slideshow loops.
func (m Model) Start() (Model, tea.Cmd) {
	var cdCmd, slCmd tea.Cmd
	m.countdown, cdCmd = m.countdown.Start()
	m.slides, slCmd = m.slides.Start()
	return m, tea.Batch(cdCmd, slCmd)
}

// Stop halts both timers. Ticks already in flight are discarded on arrival.
func (m Model) Stop() Model {
	m.countdown = m.countdown.Stop()
	m.slides = m.slides.Stop()
	return m
}

// Running reports whether the timers are active.
func (m Model) Running() bool {
	return m.countdown.Running() || m.slides.Running()
}

// SetSize updates the view dimensions and re-renders the notice when the
// width changed.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	if w := m.contentWidth(); w != m.noticeWidth {
		m.notice = renderNotice(m.cfg.Notice, w, m.cfg.MarkdownStyle)
		m.noticeWidth = w
	}
	return m
}

func (m Model) contentWidth() int {
	return max(min(m.width-4, 72), 20)
}

func renderNotice(md string, width int, style string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := markdown.New(width, style)
	if err != nil {
		log.ErrorErr(log.CatUI, "Notice renderer failed", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.ErrorErr(log.CatUI, "Notice render failed", err)
		return md
	}
	return out
}

// Update handles timer ticks, keys and clicks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case countdown.TickMsg:
		var cmd tea.Cmd
		m.countdown, cmd = m.countdown.Update(msg)
		return m, cmd
	case slideshow.TickMsg:
		var cmd tea.Cmd
		m.slides, cmd = m.slides.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if key.Matches(msg, keys.Landing.Begin) {
			return m, begin
		}
		if key.Matches(msg, keys.Landing.Quit) {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			if z := zone.Get(ZoneBegin); z != nil && z.InBounds(msg) {
				return m, begin
			}
		}
	}
	return m, nil
}

func begin() tea.Msg { return BeginMsg{} }

// View renders the landing screen.
func (m Model) View() string {
	w := m.contentWidth()
	center := func(s string) string { return lipgloss.PlaceHorizontal(w, lipgloss.Center, s) }

	sections := []string{
		center(styles.TitleStyle.Render(strings.ToUpper(m.cfg.Name))),
		center(styles.SubtitleStyle.Render(m.cfg.Subtitle)),
		center(styles.AccentStyle.Render(m.cfg.Dates + " • " + m.cfg.Venue)),
		"",
		m.slides.View(w),
		"",
		center(m.countdown.View()),
		"",
		center(feeTable()),
	}
	if m.notice != "" {
		sections = append(sections, "", center(noticeCard(m.notice)))
	}
	sections = append(sections, "",
		center(zone.Mark(ZoneBegin, styles.Button("Begin Registration", true, false))),
		"",
		center(styles.MutedStyle.Render("enter begin • q quit")),
	)

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, body)
}

func feeTable() string {
	rows := pricing.Table()
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, styles.LabelStyle.Render(fmt.Sprintf("%-14s %16s", "CATEGORY", "FEES")))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s %s",
			styles.TextStyle.Render(fmt.Sprintf("%-14s", r.Category)),
			styles.MoneyStyle.Render(fmt.Sprintf("%16s", r.Label()))))
	}
	return styles.CardStyle.Render(strings.Join(lines, "\n"))
}

func noticeCard(notice string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.GoldColor).
		Padding(0, 1).
		Render(styles.WarningStyle.Render("IMPORTANT NOTICE") + "\n" + notice)
}
