// Package passview shows the confirmed registration and exports its pass.
package passview

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/jasicon/jasreg/internal/keys"
	"github.com/jasicon/jasreg/internal/log"
	"github.com/jasicon/jasreg/internal/pass"
	"github.com/jasicon/jasreg/internal/ui/styles"
	"github.com/jasicon/jasreg/internal/ui/toaster"
)

// ZoneDownload marks the download button.
const ZoneDownload = "pass-download"

// Button labels.
const (
	DownloadLabel   = "Download Pass (PDF)"
	GeneratingLabel = "Generating PDF..."
)

// ExportFailedMessage is shown when the PDF could not be produced.
const ExportFailedMessage = "Could not generate the PDF. Please try again."

// ExportFunc writes the pass and returns the file path. pass.Exporter.Export
// satisfies it.
type ExportFunc func(ctx context.Context, doc pass.Document) (string, error)

// ExportResultMsg carries the outcome of an export.
type ExportResultMsg struct {
	Path string
	Err  error
}

// Model is the confirmed view.
type Model struct {
	ctx       context.Context
	doc       pass.Document
	export    ExportFunc
	exporting bool
	lastPath  string
	width     int
	height    int
}

// New creates the confirmed view for doc.
func New(ctx context.Context, doc pass.Document, export ExportFunc) Model {
	return Model{ctx: ctx, doc: doc, export: export}
}

// SetSize updates the view dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Document returns the pass being shown.
func (m Model) Document() pass.Document { return m.doc }

// Exporting reports whether an export is in flight.
func (m Model) Exporting() bool { return m.exporting }

// LastPath is the file written by the most recent successful export.
func (m Model) LastPath() string { return m.lastPath }

// Update handles the download key, clicks and export results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ExportResultMsg:
		m.exporting = false
		if msg.Err != nil {
			log.ErrorErr(log.CatExport, "Download failed", msg.Err)
			return m, toast(ExportFailedMessage, toaster.StyleError)
		}
		m.lastPath = msg.Path
		return m, toast("Pass saved to "+msg.Path, toaster.StyleSuccess)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Confirmed.Download):
			return m.startExport()
		case key.Matches(msg, keys.Confirmed.Quit):
			return m, tea.Quit
		}
	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			if z := zone.Get(ZoneDownload); z != nil && z.InBounds(msg) {
				return m.startExport()
			}
		}
	}
	return m, nil
}

// startExport runs one export at a time. Presses while busy are dropped.
func (m Model) startExport() (Model, tea.Cmd) {
	if m.exporting {
		return m, nil
	}
	m.exporting = true
	ctx, doc, export := m.ctx, m.doc, m.export
	return m, func() tea.Msg {
		path, err := export(ctx, doc)
		return ExportResultMsg{Path: path, Err: err}
	}
}

func toast(text string, style toaster.Style) tea.Cmd {
	return func() tea.Msg { return toaster.ShowMsg{Message: text, Style: style} }
}

// View renders the confirmation header, the pass card and the download button.
func (m Model) View() string {
	cardWidth := 64
	if m.width > 0 {
		cardWidth = max(min(m.width-4, 72), MinWidth)
	}

	label := DownloadLabel
	button := styles.PrimaryButtonStyle.Render(label)
	if m.exporting {
		label = GeneratingLabel
		button = styles.DisabledButtonStyle.Render(label)
	}

	parts := []string{
		styles.AccentStyle.Render("✓ Registration Confirmed"),
		styles.SubtitleStyle.Render("Your official Delegate Pass is ready for download. Please present this at the venue."),
		"",
		RenderPass(m.doc, cardWidth),
		"",
		zone.Mark(ZoneDownload, button),
	}
	if m.lastPath != "" {
		parts = append(parts, styles.MutedStyle.Render("Saved: "+m.lastPath))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	if m.width == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, content)
}
