package landing

import (
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/jasicon/jasreg/internal/ui/countdown"
	"github.com/jasicon/jasreg/internal/ui/slideshow"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

var startsAt = time.Date(2026, 11, 12, 0, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{
		Name:     "JASICON 2026",
		Subtitle: "National Conference of OBGYN",
		Dates:    "Nov 20-22, 2026",
		Venue:    "Baidyanath Dham, Deoghar",
		Notice:   "**Note:** On-spot registration: No guarantee of kit bag.",
		StartsAt: startsAt,
		Slides: []slideshow.Slide{
			{Title: "Scientific halls", Caption: "Three days of plenaries"},
			{Title: "Workshops", Caption: "Hands-on masterclasses"},
		},
	}
}

func newModel() Model {
	now := startsAt.Add(-(3*24*time.Hour + 2*time.Hour))
	return New(testConfig()).WithClock(func() time.Time { return now }).SetSize(100, 60)
}

func TestView(t *testing.T) {
	view := newModel().View()

	for _, want := range []string{
		"JASICON 2026",
		"National Conference of OBGYN",
		"Baidyanath Dham, Deoghar",
		"SCIENTIFIC HALLS",
		"DAYS",
		"Doctor",
		"PG Student",
		"₹3,000 + GST",
		"₹2,000 + GST",
		"IMPORTANT NOTICE",
		"guarantee",
		"Begin Registration",
	} {
		require.Contains(t, view, want)
	}
}

func TestView_BlankNoticeIsOmitted(t *testing.T) {
	cfg := testConfig()
	cfg.Notice = "  "
	view := New(cfg).SetSize(100, 60).View()
	require.NotContains(t, view, "IMPORTANT NOTICE")
}

func TestBeginKey(t *testing.T) {
	_, cmd := newModel().Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Equal(t, BeginMsg{}, cmd())
}

func TestStartStop(t *testing.T) {
	m, cmd := newModel().Start()
	require.NotNil(t, cmd)
	require.True(t, m.Running())

	m, cmd = m.Update(slideshow.TickMsg{Gen: 1})
	require.NotNil(t, cmd)

	m = m.Stop()
	require.False(t, m.Running())

	_, cmd = m.Update(slideshow.TickMsg{Gen: 1})
	require.Nil(t, cmd)
	_, cmd = m.Update(countdown.TickMsg{Gen: 1, Time: startsAt})
	require.Nil(t, cmd)
}
