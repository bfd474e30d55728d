package passview

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/jasicon/jasreg/internal/money"
	"github.com/jasicon/jasreg/internal/pass"
	"github.com/jasicon/jasreg/internal/registration"
	"github.com/jasicon/jasreg/internal/ui/toaster"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func testDocument(addOns ...string) pass.Document {
	id := registration.Identity{DisplayName: "Dr. Asha Rao", Email: "asha@example.com", UniqueID: "user-4821"}
	d := registration.NewDraft(id).
		With(registration.FieldMobile, "9876543210").
		With(registration.FieldInstitution, "AIIMS Delhi")
	for _, a := range addOns {
		d = d.ToggleAddOn(a)
	}
	c := registration.Confirm(id, d, "guid-1", time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
	catalog := registration.Catalog{{ID: "w1", Title: "Advanced Laparoscopy Masterclass", Price: money.Rupees(15000)}}
	return pass.Build(c, catalog, pass.Conference{
		Name:     "JASICON 2026",
		Subtitle: "National Conference of OBGYN",
		Dates:    "Nov 20-22, 2026",
		Venue:    "Baidyanath Dham, Deoghar",
	})
}

func TestRenderPass(t *testing.T) {
	out := RenderPass(testDocument("w1"), 70)

	for _, want := range []string{
		"JASICON 2026",
		"Status: Confirmed",
		"JAS26-10821",
		"DELEGATE NAME",
		"Dr. Asha Rao",
		"AIIMS Delhi",
		"+919876543210",
		"ACADEMIC CURRICULUM",
		"Advanced Laparoscopy Masterclass",
		"gala dinner",
		"BAIDYANATH DHAM",
	} {
		require.Contains(t, out, want)
	}
	for _, l := range strings.Split(out, "\n") {
		require.Equal(t, 70, lipgloss.Width(l))
	}
}

func TestRenderPass_AttendanceOnly(t *testing.T) {
	require.Contains(t, RenderPass(testDocument(), 60), "Conference Attendance Only")
}

func TestRenderPass_WrapsLongValues(t *testing.T) {
	doc := testDocument()
	doc.Fields[2].Value = strings.Repeat("Institute of Medical Sciences ", 6)
	doc.Fields[0].Value = strings.Repeat("X", 200)

	out := RenderPass(doc, 40)
	for _, l := range strings.Split(out, "\n") {
		require.Equal(t, 40, lipgloss.Width(l))
	}
	require.Contains(t, out, "…")
}

func TestRenderPass_ClampsWidth(t *testing.T) {
	out := RenderPass(testDocument(), 5)
	require.Equal(t, MinWidth, lipgloss.Width(strings.Split(out, "\n")[0]))
}

func TestDownload_BusyGate(t *testing.T) {
	calls := 0
	export := func(_ context.Context, doc pass.Document) (string, error) {
		calls++
		return "/tmp/" + pass.FileName(doc.DelegateID), nil
	}
	m := New(context.Background(), testDocument(), export)
	require.Contains(t, m.View(), DownloadLabel)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	require.NotNil(t, cmd)
	require.True(t, m.Exporting())
	require.Contains(t, m.View(), GeneratingLabel)

	m, again := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, again)

	result := cmd()
	require.Equal(t, 1, calls)

	m, cmd = m.Update(result)
	require.False(t, m.Exporting())
	require.Equal(t, "/tmp/JASICON2026_Registration_Pass_JAS26-10821.pdf", m.LastPath())
	require.Equal(t, toaster.ShowMsg{
		Message: "Pass saved to /tmp/JASICON2026_Registration_Pass_JAS26-10821.pdf",
		Style:   toaster.StyleSuccess,
	}, cmd())
	require.Contains(t, m.View(), DownloadLabel)
}

func TestDownload_FailureClearsBusy(t *testing.T) {
	export := func(context.Context, pass.Document) (string, error) {
		return "", errors.Join(pass.ErrEmbed, errors.New("encoder"))
	}
	doc := testDocument()
	m := New(context.Background(), doc, export)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd = m.Update(cmd())

	require.False(t, m.Exporting())
	require.Empty(t, m.LastPath())
	require.Equal(t, toaster.ShowMsg{Message: ExportFailedMessage, Style: toaster.StyleError}, cmd())
	require.Equal(t, doc, m.Document())
}
