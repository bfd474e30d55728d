// Package wizardview is the Bubble Tea front end of the registration wizard.
// All state transitions go through wizard.Machine; this package only maps
// keys, clicks and text input onto it.
package wizardview

import (
	"context"
	"maps"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/jasicon/jasreg/internal/keys"
	"github.com/jasicon/jasreg/internal/log"
	"github.com/jasicon/jasreg/internal/registration"
	"github.com/jasicon/jasreg/internal/ui/toaster"
	"github.com/jasicon/jasreg/internal/validate"
	"github.com/jasicon/jasreg/internal/wizard"
)

// Zone IDs for clickable controls.
const (
	ZoneNext = "wizard-next"
	ZoneBack = "wizard-back"

	zoneCategoryPrefix = "wizard-category-"
	zoneAddOnPrefix    = "wizard-addon-"
)

// FailureMessage is shown when the registration could not be stored.
const FailureMessage = "Registration failed. Please try again."

// SubmitFunc persists a draft. wizard.Submitter.Run satisfies it.
type SubmitFunc func(ctx context.Context, d registration.Draft) (registration.Confirmed, error)

// SubmitResultMsg carries the outcome of a submission back to the loop.
type SubmitResultMsg struct {
	Confirmed registration.Confirmed
	Err       error
}

// RegisteredMsg is sent once the registration is confirmed.
type RegisteredMsg struct {
	Confirmed registration.Confirmed
}

// LeaveMsg is sent when the user exits the wizard. The draft is discarded.
type LeaveMsg struct{}

type itemKind int

const (
	itemInput itemKind = iota
	itemCategory
	itemAddOn
)

// item is one focusable control on the current step.
type item struct {
	kind  itemKind
	field registration.Field
	addOn string
}

// Model is the wizard view.
type Model struct {
	ctx     context.Context
	machine wizard.Machine
	submit  SubmitFunc
	inputs  map[registration.Field]textinput.Model
	focus   int
	width   int
	height  int
}

// New creates the view around a fresh machine.
func New(ctx context.Context, m wizard.Machine, submit SubmitFunc) Model {
	v := Model{
		ctx:     ctx,
		machine: m,
		submit:  submit,
		inputs:  newInputs(m.Draft()),
	}
	return v.syncFocus()
}

func newInputs(d registration.Draft) map[registration.Field]textinput.Model {
	mk := func(f registration.Field, placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholder
		if limit > 0 {
			in.CharLimit = limit
		}
		in.SetValue(d.Value(f))
		return in
	}

	inputs := map[registration.Field]textinput.Model{
		registration.FieldFullName: mk(registration.FieldFullName, "Name Surname", 120),
		registration.FieldAge:      mk(registration.FieldAge, "e.g. 35", 3),
	}

	// Pasted numbers may carry separators, so the input takes more than
	// MobileDigits and SetField trims the stored value.
	mobile := mk(registration.FieldMobile, "9876543210", 32)
	mobile.Prompt = registration.MobilePrefix + " "
	mobile.SetValue(registration.MobileLocal(d.Mobile))
	inputs[registration.FieldMobile] = mobile

	for _, c := range registration.Categories() {
		for _, req := range validate.Requirements(c) {
			if _, ok := inputs[req.Field]; !ok {
				inputs[req.Field] = mk(req.Field, req.Placeholder, 120)
			}
		}
	}
	return inputs
}

// SetSize updates the view dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	w := max(min(width-10, 60), 16)
	m.inputs = maps.Clone(m.inputs)
	for f, in := range m.inputs {
		in.Width = w
		m.inputs[f] = in
	}
	return m
}

// Machine exposes the underlying state machine.
func (m Model) Machine() wizard.Machine { return m.machine }

// SetCatalog swaps the add-on catalog after a reload.
func (m Model) SetCatalog(c registration.Catalog) Model {
	m.machine = m.machine.SetCatalog(c)
	return m.clampFocus()
}

// RefreshIdentity forwards a refreshed identity to the machine.
func (m Model) RefreshIdentity(id registration.Identity) Model {
	m.machine = m.machine.RefreshIdentity(id)
	return m
}

// items lists the focusable controls of the current step.
func (m Model) items() []item {
	switch m.machine.Step() {
	case validate.StepProfile:
		return []item{
			{kind: itemInput, field: registration.FieldFullName},
			{kind: itemInput, field: registration.FieldAge},
			{kind: itemInput, field: registration.FieldMobile},
		}
	case validate.StepScientific:
		out := []item{{kind: itemCategory, field: registration.FieldCategory}}
		for _, req := range validate.Requirements(m.machine.Draft().Category) {
			out = append(out, item{kind: itemInput, field: req.Field})
		}
		return out
	case validate.StepCurriculum:
		var out []item
		for _, a := range m.machine.Catalog() {
			out = append(out, item{kind: itemAddOn, addOn: a.ID})
		}
		return out
	}
	return nil
}

func (m Model) focused() (item, bool) {
	items := m.items()
	if m.focus < 0 || m.focus >= len(items) {
		return item{}, false
	}
	return items[m.focus], true
}

func (m Model) clampFocus() Model {
	if n := len(m.items()); m.focus >= n {
		m.focus = max(n-1, 0)
	}
	return m.syncFocus()
}

// syncFocus focuses the text input under the cursor and blurs the rest.
func (m Model) syncFocus() Model {
	cur, ok := m.focused()
	m.inputs = maps.Clone(m.inputs)
	for f, in := range m.inputs {
		if ok && cur.kind == itemInput && cur.field == f {
			in.Focus()
		} else {
			in.Blur()
		}
		m.inputs[f] = in
	}
	return m
}

func (m Model) moveFocus(delta int) Model {
	n := len(m.items())
	if n == 0 {
		return m
	}
	m.focus = (m.focus + delta + n) % n
	return m.syncFocus()
}

// Update handles keys, clicks, submission results and input blinking.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SubmitResultMsg:
		return m.handleResult(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			return m.handleClick(msg)
		}
		return m, nil
	}

	if cur, ok := m.focused(); ok && cur.kind == itemInput {
		in, cmd := m.inputs[cur.field].Update(msg)
		return m.withInput(cur.field, in), cmd
	}
	return m, nil
}

func (m Model) handleResult(msg SubmitResultMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.machine = m.machine.SubmitFailed(msg.Err)
		return m, showToast(FailureMessage, toaster.StyleError)
	}
	m.machine = m.machine.SubmitSucceeded(msg.Confirmed)
	c := msg.Confirmed
	return m, func() tea.Msg { return RegisteredMsg{Confirmed: c} }
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.machine.Phase() != wizard.PhaseEditing {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Wizard.Next):
		return m.advance()
	case key.Matches(msg, keys.Wizard.Back):
		return m.back()
	case key.Matches(msg, keys.Wizard.Leave):
		return m, func() tea.Msg { return LeaveMsg{} }
	case key.Matches(msg, keys.Wizard.NextField):
		return m.moveFocus(1), nil
	case key.Matches(msg, keys.Wizard.PrevField):
		return m.moveFocus(-1), nil
	}

	cur, ok := m.focused()
	if !ok {
		return m, nil
	}
	switch cur.kind {
	case itemCategory:
		switch {
		case key.Matches(msg, keys.Wizard.Left):
			return m.cycleCategory(-1), nil
		case key.Matches(msg, keys.Wizard.Right):
			return m.cycleCategory(1), nil
		}
	case itemAddOn:
		if key.Matches(msg, keys.Wizard.Toggle) {
			m.machine = m.machine.ToggleAddOn(cur.addOn)
		}
	case itemInput:
		return m.editInput(cur.field, msg)
	}
	return m, nil
}

func (m Model) editInput(f registration.Field, msg tea.Msg) (Model, tea.Cmd) {
	in, cmd := m.inputs[f].Update(msg)
	m.machine = m.machine.SetField(f, in.Value())

	// The stored value may be filtered, so the input shows what was kept.
	shown := m.machine.Draft().Value(f)
	if f == registration.FieldMobile {
		shown = registration.MobileLocal(shown)
	}
	if in.Value() != shown {
		in.SetValue(shown)
	}
	return m.withInput(f, in), cmd
}

// withInput stores in without touching the map shared with earlier copies.
func (m Model) withInput(f registration.Field, in textinput.Model) Model {
	m.inputs = maps.Clone(m.inputs)
	m.inputs[f] = in
	return m
}

func (m Model) cycleCategory(delta int) Model {
	cats := registration.Categories()
	cur := m.machine.Draft().Category
	i := 0
	for j, c := range cats {
		if c == cur {
			i = j
		}
	}
	next := cats[(i+delta+len(cats))%len(cats)]
	return m.selectCategory(next)
}

func (m Model) selectCategory(c registration.Category) Model {
	m.machine = m.machine.SetField(registration.FieldCategory, string(c))
	return m.clampFocus()
}

func (m Model) advance() (Model, tea.Cmd) {
	if m.machine.Step() == validate.LastStep {
		return m.confirm()
	}
	var moved bool
	m.machine, moved = m.machine.Next()
	if !moved {
		log.Debug(log.CatWizard, "Step rejected", "step", m.machine.Step(), "errors", len(m.machine.Errors()))
		if msg := m.machine.Error(registration.FieldEmail); msg != "" {
			return m, showToast(msg, toaster.StyleWarn)
		}
		return m, nil
	}
	m.focus = 0
	return m.syncFocus(), nil
}

func (m Model) back() (Model, tea.Cmd) {
	if m.machine.Step() == validate.FirstStep {
		return m, nil
	}
	m.machine = m.machine.Back()
	m.focus = 0
	return m.syncFocus(), nil
}

func (m Model) confirm() (Model, tea.Cmd) {
	var (
		d  registration.Draft
		ok bool
	)
	m.machine, d, ok = m.machine.BeginSubmit()
	if !ok {
		return m, nil
	}
	ctx, submit := m.ctx, m.submit
	return m, func() tea.Msg {
		c, err := submit(ctx, d)
		return SubmitResultMsg{Confirmed: c, Err: err}
	}
}

func (m Model) handleClick(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.machine.Phase() != wizard.PhaseEditing {
		return m, nil
	}
	if z := zone.Get(ZoneNext); z != nil && z.InBounds(msg) {
		return m.advance()
	}
	if z := zone.Get(ZoneBack); z != nil && z.InBounds(msg) {
		return m.back()
	}
	for i, it := range m.items() {
		switch it.kind {
		case itemAddOn:
			if z := zone.Get(zoneAddOnPrefix + it.addOn); z != nil && z.InBounds(msg) {
				m.focus = i
				m.machine = m.machine.ToggleAddOn(it.addOn)
				return m.syncFocus(), nil
			}
		case itemCategory:
			for _, c := range registration.Categories() {
				if z := zone.Get(zoneCategoryPrefix + string(c)); z != nil && z.InBounds(msg) {
					m.focus = i
					return m.selectCategory(c), nil
				}
			}
		}
	}
	return m, nil
}

func showToast(text string, style toaster.Style) tea.Cmd {
	return func() tea.Msg { return toaster.ShowMsg{Message: text, Style: style} }
}
