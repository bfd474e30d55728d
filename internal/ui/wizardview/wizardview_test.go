package wizardview

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/jasicon/jasreg/internal/money"
	"github.com/jasicon/jasreg/internal/registration"
	"github.com/jasicon/jasreg/internal/ui/toaster"
	"github.com/jasicon/jasreg/internal/validate"
	"github.com/jasicon/jasreg/internal/wizard"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

var testCatalog = registration.Catalog{
	{ID: "w1", Title: "Advanced Laparoscopy Masterclass", Price: money.Rupees(15000)},
	{ID: "w2", Title: "Infertility & IVF Management", Price: money.Rupees(12000)},
}

var testIdentity = registration.Identity{DisplayName: "Dr. Asha Rao", Email: "asha@example.com", UniqueID: "user-4821"}

type fakeSubmit struct {
	calls int
	err   error
}

func (f *fakeSubmit) run(_ context.Context, d registration.Draft) (registration.Confirmed, error) {
	f.calls++
	if f.err != nil {
		return registration.Confirmed{}, f.err
	}
	return registration.Confirm(testIdentity, d, "guid-1", time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)), nil
}

func newView(id registration.Identity, submit *fakeSubmit) Model {
	m := wizard.New(id, testCatalog, validate.New(validate.Options{}))
	return New(context.Background(), m, submit.run).SetSize(100, 50)
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	return m.Update(msg)
}

func typeText(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	right = tea.KeyMsg{Type: tea.KeyRight}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

// fillProfile enters a valid age and mobile; the name comes from the identity.
func fillProfile(m Model) Model {
	m, _ = press(m, tab)
	m = typeText(m, "34")
	m, _ = press(m, tab)
	return typeText(m, "9876543210")
}

func toSummary(t *testing.T, m Model) Model {
	t.Helper()
	m = fillProfile(m)
	for range 3 {
		m, _ = press(m, enter)
	}
	require.Equal(t, validate.StepSummary, m.Machine().Step())
	return m
}

func TestNew_PrefillsFromIdentity(t *testing.T) {
	m := newView(testIdentity, &fakeSubmit{})
	view := m.View()

	require.Equal(t, validate.StepProfile, m.Machine().Step())
	require.Contains(t, view, "Dr. Asha Rao")
	require.Contains(t, view, "asha@example.com")
	require.Contains(t, view, "Delegate Profile")
}

func TestProfile_TypingUpdatesDraft(t *testing.T) {
	m := fillProfile(newView(testIdentity, &fakeSubmit{}))

	d := m.Machine().Draft()
	require.Equal(t, "34", d.Age)
	require.Equal(t, "+919876543210", d.Mobile)
}

func TestProfile_MobileDropsNonDigits(t *testing.T) {
	m := newView(testIdentity, &fakeSubmit{})
	m, _ = press(m, tab)
	m, _ = press(m, tab)
	m = typeText(m, "98a76")

	require.Equal(t, "+919876", m.Machine().Draft().Mobile)
	require.Equal(t, "9876", m.inputs[registration.FieldMobile].Value())
}

func TestProfile_MobilePasteWithSeparators(t *testing.T) {
	tests := []struct {
		name  string
		paste string
	}{
		{name: "space", paste: "98765 43210"},
		{name: "dashes", paste: "98765-43210"},
		{name: "extra digits", paste: "98765-43210-99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newView(testIdentity, &fakeSubmit{})
			m, _ = press(m, tab)
			m, _ = press(m, tab)
			m = typeText(m, tt.paste)

			require.Equal(t, "+919876543210", m.Machine().Draft().Mobile)
			require.Equal(t, "9876543210", m.inputs[registration.FieldMobile].Value())
		})
	}
}

func TestProfile_MobileStopsAtTenDigits(t *testing.T) {
	m := newView(testIdentity, &fakeSubmit{})
	m, _ = press(m, tab)
	m, _ = press(m, tab)
	m = typeText(m, "9876543210")
	m = typeText(m, "5")

	require.Equal(t, "+919876543210", m.Machine().Draft().Mobile)
	require.Equal(t, "9876543210", m.inputs[registration.FieldMobile].Value())
}

func TestNext_InvalidStepShowsErrors(t *testing.T) {
	m := newView(testIdentity, &fakeSubmit{})
	m, _ = press(m, tab)
	m = typeText(m, "12")

	m, cmd := press(m, enter)
	require.Nil(t, cmd)
	require.Equal(t, validate.StepProfile, m.Machine().Step())

	view := m.View()
	require.Contains(t, view, "Age must be at least 18")
	require.Contains(t, view, "Mobile number is required")
}

func TestNext_MissingEmailShowsToast(t *testing.T) {
	id := testIdentity
	id.Email = ""
	m := fillProfile(newView(id, &fakeSubmit{}))

	m, cmd := press(m, enter)
	require.NotNil(t, cmd)
	require.Equal(t, toaster.ShowMsg{Message: validate.MissingEmailMessage, Style: toaster.StyleWarn}, cmd())
	require.Equal(t, validate.StepProfile, m.Machine().Step())
}

func TestScientific_CategoryChangesFields(t *testing.T) {
	m := fillProfile(newView(testIdentity, &fakeSubmit{}))
	m, _ = press(m, enter)
	require.Equal(t, validate.StepScientific, m.Machine().Step())
	require.Contains(t, m.View(), "Medical Reg No / License")
	require.NotContains(t, m.View(), "Designation")

	m, _ = press(m, right)
	require.Equal(t, registration.CategoryDelegate, m.Machine().Draft().Category)
	require.Contains(t, m.View(), "Designation")

	m, _ = press(m, right)
	require.Equal(t, registration.CategoryPGStudent, m.Machine().Draft().Category)
	require.NotContains(t, m.View(), "Medical Reg No")

	m, _ = press(m, right)
	require.Equal(t, registration.CategoryDoctor, m.Machine().Draft().Category)
}

func TestCurriculum_ToggleAddOn(t *testing.T) {
	m := fillProfile(newView(testIdentity, &fakeSubmit{}))
	m, _ = press(m, enter)
	m, _ = press(m, enter)
	require.Equal(t, validate.StepCurriculum, m.Machine().Step())

	m, _ = press(m, space)
	require.True(t, m.Machine().Draft().HasAddOn("w1"))
	require.Contains(t, m.View(), "[x] Advanced Laparoscopy Masterclass")

	m, _ = press(m, tab)
	m, _ = press(m, space)
	m, _ = press(m, tab)
	m, _ = press(m, space)
	require.Equal(t, []string{"w2"}, m.Machine().Draft().SelectedAddOns)
}

func TestSummary_ShowsBreakdown(t *testing.T) {
	m := toSummary(t, newView(testIdentity, &fakeSubmit{}))
	view := m.View()

	for _, want := range []string{"Conference Fee (Doctor)", "₹3,000", "Subtotal", "GST (18%)", "₹540", "₹3,540", "Confirm & Pay"} {
		require.Contains(t, view, want)
	}
}

func TestBack(t *testing.T) {
	m := fillProfile(newView(testIdentity, &fakeSubmit{}))
	m, _ = press(m, enter)

	m, cmd := press(m, esc)
	require.Nil(t, cmd)
	require.Equal(t, validate.StepProfile, m.Machine().Step())

	m, cmd = press(m, esc)
	require.Nil(t, cmd)
	require.Equal(t, validate.StepProfile, m.Machine().Step())
	require.Equal(t, "34", m.Machine().Draft().Age)
}

func TestLeave(t *testing.T) {
	m := fillProfile(newView(testIdentity, &fakeSubmit{}))
	m, _ = press(m, enter)

	_, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.NotNil(t, cmd)
	require.Equal(t, LeaveMsg{}, cmd())
}

func TestView_NoBackButtonOnFirstStep(t *testing.T) {
	m := newView(testIdentity, &fakeSubmit{})
	require.NotContains(t, m.View(), "Back")

	m, _ = press(fillProfile(m), enter)
	require.Contains(t, m.View(), "Back")
}

func TestConfirm_Success(t *testing.T) {
	submit := &fakeSubmit{}
	m := toSummary(t, newView(testIdentity, submit))

	m, cmd := press(m, enter)
	require.NotNil(t, cmd)
	require.True(t, m.Machine().Submitting())
	require.Contains(t, m.View(), "Processing...")

	m, again := press(m, enter)
	require.Nil(t, again)

	result := cmd()
	require.Equal(t, 1, submit.calls)

	m, cmd = m.Update(result)
	require.NotNil(t, cmd)
	registered, ok := cmd().(RegisteredMsg)
	require.True(t, ok)
	require.Equal(t, "JAS26-10821", registered.Confirmed.DelegateID)
	require.Equal(t, wizard.PhaseConfirmed, m.Machine().Phase())
}

func TestConfirm_FailureKeepsDraft(t *testing.T) {
	submit := &fakeSubmit{err: errors.New("network down")}
	m := toSummary(t, newView(testIdentity, submit))
	before := m.Machine().Draft()

	m, cmd := press(m, enter)
	m, cmd = m.Update(cmd())
	require.NotNil(t, cmd)
	require.Equal(t, toaster.ShowMsg{Message: FailureMessage, Style: toaster.StyleError}, cmd())

	require.Equal(t, wizard.PhaseEditing, m.Machine().Phase())
	require.Equal(t, validate.StepSummary, m.Machine().Step())
	require.Equal(t, before, m.Machine().Draft())

	_, cmd = press(m, enter)
	require.NotNil(t, cmd)
	cmd()
	require.Equal(t, 2, submit.calls)
}

func TestSetCatalog_DropsRemovedSelection(t *testing.T) {
	m := fillProfile(newView(testIdentity, &fakeSubmit{}))
	m, _ = press(m, enter)
	m, _ = press(m, enter)
	m, _ = press(m, tab)
	m, _ = press(m, space)
	require.True(t, m.Machine().Draft().HasAddOn("w2"))

	m = m.SetCatalog(testCatalog[:1])
	require.Empty(t, m.Machine().Draft().SelectedAddOns)
	require.NotContains(t, m.View(), "Infertility")
}
