// Package app contains the root application model.
package app

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"

	"github.com/jasicon/jasreg/internal/keys"
	"github.com/jasicon/jasreg/internal/log"
	"github.com/jasicon/jasreg/internal/pass"
	"github.com/jasicon/jasreg/internal/registration"
	"github.com/jasicon/jasreg/internal/session"
	"github.com/jasicon/jasreg/internal/ui/landing"
	"github.com/jasicon/jasreg/internal/ui/passview"
	"github.com/jasicon/jasreg/internal/ui/styles"
	"github.com/jasicon/jasreg/internal/ui/toaster"
	"github.com/jasicon/jasreg/internal/ui/wizardview"
	"github.com/jasicon/jasreg/internal/validate"
	"github.com/jasicon/jasreg/internal/wizard"
)

// IdentitySource resolves the signed-in delegate. session.Provider implements it.
type IdentitySource interface {
	Current(ctx context.Context) (registration.Identity, error)
}

// CatalogSource loads the add-on catalog. catalog.Source implements it.
type CatalogSource interface {
	Load(ctx context.Context) (registration.Catalog, error)
	Invalidate(ctx context.Context)
}

// Exporter writes a pass to disk. pass.Exporter implements it.
type Exporter interface {
	Export(ctx context.Context, doc pass.Document) (string, error)
}

// Services are the collaborators the root model drives.
type Services struct {
	Identities IdentitySource
	Persister  wizard.Persister
	Catalog    CatalogSource
	Exporter   Exporter
	Validator  validate.Validator
	Tracer     trace.Tracer

	Conference pass.Conference
	Landing    landing.Config

	// CatalogChanges signals that the catalog file changed on disk. Nil
	// disables hot reload.
	CatalogChanges <-chan struct{}
}

type screen int

const (
	screenLoading screen = iota
	screenLanding
	screenWizard
	screenConfirmed
)

func (s screen) String() string {
	switch s {
	case screenLoading:
		return "loading"
	case screenLanding:
		return "landing"
	case screenWizard:
		return "wizard"
	case screenConfirmed:
		return "confirmed"
	}
	return "unknown"
}

type identityLoadedMsg struct {
	identity registration.Identity
	err      error
}

type catalogLoadedMsg struct {
	catalog registration.Catalog
	err     error
	reload  bool
}

type catalogChangedMsg struct{}

// Model is the root application state.
type Model struct {
	ctx       context.Context
	svc       Services
	submitter wizard.Submitter

	screen   screen
	identity registration.Identity
	catalog  registration.Catalog

	landing   landing.Model
	wizard    wizardview.Model
	confirmed passview.Model

	// Centralized toaster, owned by the app rather than the views.
	toaster  toaster.Model
	help     help.Model
	showHelp bool

	width  int
	height int
}

// New creates the root model. ctx bounds every submission and export.
func New(ctx context.Context, svc Services) Model {
	return Model{
		ctx:       ctx,
		svc:       svc,
		submitter: wizard.NewSubmitter(svc.Persister, svc.Tracer),
		landing:   landing.New(svc.Landing),
		toaster:   toaster.New(),
		help:      help.New(),
	}
}

// Init loads the catalog, then the identity, and starts watching for catalog
// edits. The catalog comes first so a stored pass renders add-on titles.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.Sequence(m.loadCatalog(false), m.loadIdentity()),
		waitForCatalogChange(m.svc.CatalogChanges),
	)
}

func (m Model) loadIdentity() tea.Cmd {
	ctx, src := m.ctx, m.svc.Identities
	return func() tea.Msg {
		id, err := src.Current(ctx)
		return identityLoadedMsg{identity: id, err: err}
	}
}

func (m Model) loadCatalog(reload bool) tea.Cmd {
	ctx, src := m.ctx, m.svc.Catalog
	return func() tea.Msg {
		if reload {
			src.Invalidate(ctx)
		}
		c, err := src.Load(ctx)
		return catalogLoadedMsg{catalog: c, err: err, reload: reload}
	}
}

// waitForCatalogChange blocks on the watcher channel off the update loop and
// turns one signal into one message.
func waitForCatalogChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return catalogChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m = m.resize()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Common.Quit) {
			return m, tea.Quit
		}
		// The wizard has text inputs, so "?" is left to them there.
		if m.screen != screenWizard && key.Matches(msg, keys.Common.Help) {
			m.showHelp = !m.showHelp
			return m, nil
		}

	case identityLoadedMsg:
		return m.handleIdentity(msg)

	case catalogLoadedMsg:
		return m.handleCatalog(msg)

	case catalogChangedMsg:
		log.Info(log.CatCatalog, "Catalog file changed, reloading")
		return m, tea.Batch(m.loadCatalog(true), waitForCatalogChange(m.svc.CatalogChanges))

	case landing.BeginMsg:
		return m.startWizard()

	case wizardview.LeaveMsg:
		log.Info(log.CatUI, "Leaving wizard", "from", m.screen)
		return m.showLanding()

	case wizardview.RegisteredMsg:
		c := msg.Confirmed
		m.identity.RegistrationStatus = c.Status
		m.identity.Details = &c
		var cmd tea.Cmd
		m, cmd = m.showConfirmed(c)
		return m, tea.Batch(cmd, toast("Registration confirmed: "+c.DelegateID, toaster.StyleSuccess))

	case toaster.ShowMsg, toaster.DismissMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Update(msg)
		return m, cmd
	}

	return m.delegate(msg)
}

// delegate routes msg to the active screen.
func (m Model) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenLanding:
		m.landing, cmd = m.landing.Update(msg)
	case screenWizard:
		m.wizard, cmd = m.wizard.Update(msg)
	case screenConfirmed:
		m.confirmed, cmd = m.confirmed.Update(msg)
	}
	return m, cmd
}

func (m Model) handleIdentity(msg identityLoadedMsg) (tea.Model, tea.Cmd) {
	m.identity = msg.identity
	if msg.err != nil {
		log.ErrorErr(log.CatSession, "Failed to resolve identity", msg.err)
		text := "Could not load your registration status."
		if errors.Is(msg.err, session.ErrNoIdentity) {
			text = "Not signed in: set your identity with `jasreg login`."
		}
		var cmd tea.Cmd
		m, cmd = m.showLanding()
		return m, tea.Batch(cmd, toast(text, toaster.StyleWarn))
	}
	if m.identity.Registered() {
		return m.showConfirmed(*m.identity.Details)
	}
	if m.screen == screenLoading {
		return m.showLanding()
	}
	return m, nil
}

func (m Model) handleCatalog(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatCatalog, "Failed to load catalog", msg.err)
		if msg.reload {
			return m, toast("Workshop catalog is invalid; keeping the previous one.", toaster.StyleError)
		}
		return m, toast("Workshop catalog could not be loaded.", toaster.StyleError)
	}
	m.catalog = msg.catalog
	log.Debug(log.CatCatalog, "Catalog loaded", "add_ons", len(msg.catalog), "reload", msg.reload)
	if m.screen == screenWizard {
		m.wizard = m.wizard.SetCatalog(msg.catalog)
	}
	if msg.reload {
		return m, toast("Workshop catalog updated", toaster.StyleInfo)
	}
	return m, nil
}

func (m Model) showLanding() (Model, tea.Cmd) {
	m.screen = screenLanding
	var cmd tea.Cmd
	m.landing, cmd = m.landing.SetSize(m.width, m.contentHeight()).Start()
	return m, cmd
}

func (m Model) startWizard() (tea.Model, tea.Cmd) {
	m.landing = m.landing.Stop()
	machine := wizard.New(m.identity, m.catalog, m.svc.Validator)
	m.wizard = wizardview.New(m.ctx, machine, m.submitter.Run).SetSize(m.width, m.contentHeight())
	m.screen = screenWizard
	log.Info(log.CatUI, "Wizard started", "unique_id", m.identity.UniqueID)
	return m, nil
}

func (m Model) showConfirmed(c registration.Confirmed) (Model, tea.Cmd) {
	m.landing = m.landing.Stop()
	doc := pass.Build(c, m.catalog, m.svc.Conference)
	m.confirmed = passview.New(m.ctx, doc, m.svc.Exporter.Export).SetSize(m.width, m.contentHeight())
	m.screen = screenConfirmed
	return m, nil
}

func (m Model) resize() Model {
	h := m.contentHeight()
	m.landing = m.landing.SetSize(m.width, h)
	m.wizard = m.wizard.SetSize(m.width, h)
	m.confirmed = m.confirmed.SetSize(m.width, h)
	return m
}

// contentHeight leaves one row for the help line.
func (m Model) contentHeight() int {
	return max(m.height-1, 0)
}

func (m Model) helpKeys() help.KeyMap {
	switch m.screen {
	case screenWizard:
		return keys.Wizard
	case screenConfirmed:
		return keys.Confirmed
	}
	return keys.Landing
}

// View implements tea.Model.
func (m Model) View() string {
	var view string
	switch m.screen {
	case screenLanding:
		view = m.landing.View()
	case screenWizard:
		view = m.wizard.View()
	case screenConfirmed:
		view = m.confirmed.View()
	default:
		view = lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center,
			styles.MutedStyle.Render("Loading your registration..."))
	}

	helpView := m.help.ShortHelpView(m.helpKeys().ShortHelp())
	if m.showHelp {
		helpView = m.help.FullHelpView(m.helpKeys().FullHelp())
	}
	view = lipgloss.JoinVertical(lipgloss.Left, view, helpView)

	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	return zone.Scan(view)
}

func toast(text string, style toaster.Style) tea.Cmd {
	return func() tea.Msg { return toaster.ShowMsg{Message: text, Style: style} }
}
