package wizardview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/jasicon/jasreg/internal/money"
	"github.com/jasicon/jasreg/internal/registration"
	"github.com/jasicon/jasreg/internal/ui/styles"
	"github.com/jasicon/jasreg/internal/validate"
	"github.com/jasicon/jasreg/internal/wizard"
)

func (m Model) formWidth() int {
	if m.width == 0 {
		return 64
	}
	return max(min(m.width-4, 68), 24)
}

// View renders the step indicator, the current step and the action buttons.
func (m Model) View() string {
	w := m.formWidth()

	var body []string
	switch m.machine.Step() {
	case validate.StepProfile:
		body = m.viewProfile(w)
	case validate.StepScientific:
		body = m.viewScientific(w)
	case validate.StepCurriculum:
		body = m.viewCurriculum(w)
	case validate.StepSummary:
		body = m.viewSummary(w)
	}

	parts := []string{
		styles.TitleStyle.Render("Registration"),
		styles.SubtitleStyle.Render("Join the national elite in medical excellence."),
		"",
		m.viewSteps(),
		"",
	}
	parts = append(parts, body...)
	parts = append(parts, "", m.viewButtons())

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if m.width == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, content)
}

func (m Model) viewSteps() string {
	cur := m.machine.Step()
	cells := make([]string, 0, len(validate.Steps()))
	for _, s := range validate.Steps() {
		label := fmt.Sprintf("%d %s", s, s.Label())
		switch {
		case s == cur:
			cells = append(cells, styles.StepActiveStyle.Render(label))
		case s < cur:
			cells = append(cells, styles.StepDoneStyle.Render("✓ "+s.Label()))
		default:
			cells = append(cells, styles.StepPendingStyle.Render(label))
		}
	}
	return strings.Join(cells, styles.MutedStyle.Render("─"))
}

func heading(title, subtitle string) string {
	return styles.AccentStyle.Render(title) + "  " + styles.MutedStyle.Render(strings.ToUpper(subtitle))
}

// inputSection renders a text input with its label and any error below it.
func (m Model) inputSection(f registration.Field, label, hint string, w int) string {
	cur, _ := m.focused()
	focused := cur.kind == itemInput && cur.field == f
	msg := m.machine.Error(f)

	lines := []string{" " + m.inputs[f].View()}
	section := styles.RenderFormSection(lines, label, hint, w, focused, msg != "")
	if msg != "" {
		section += "\n" + styles.ErrorStyle.Render("  "+msg)
	}
	return section
}

func (m Model) viewProfile(w int) []string {
	d := m.machine.Draft()

	email := d.Email
	emailMsg := m.machine.Error(registration.FieldEmail)
	if email == "" {
		email = styles.MutedStyle.Render("(not provided)")
	}
	emailSection := styles.RenderFormSection([]string{" " + email}, "Email Address", "from your profile", w, false, emailMsg != "")
	if emailMsg != "" {
		emailSection += "\n" + styles.ErrorStyle.Render("  "+emailMsg)
	}

	return []string{
		heading("Delegate Profile", "Identity verification"),
		"",
		m.inputSection(registration.FieldFullName, "Full Name *", "", w),
		emailSection,
		m.inputSection(registration.FieldAge, "Age *", "", w),
		m.inputSection(registration.FieldMobile, "Mobile Number *", "10 digits", w),
	}
}

func (m Model) viewScientific(w int) []string {
	d := m.machine.Draft()
	cur, _ := m.focused()

	opts := make([]string, 0, len(registration.Categories()))
	for _, c := range registration.Categories() {
		mark := "( )"
		style := styles.TextStyle
		if c == d.Category {
			mark = "(•)"
			style = styles.AccentStyle
		}
		opts = append(opts, zone.Mark(zoneCategoryPrefix+string(c), style.Render(mark+" "+string(c))))
	}
	catMsg := m.machine.Error(registration.FieldCategory)
	catSection := styles.RenderFormSection([]string{" " + strings.Join(opts, "   ")},
		"Delegate Category *", "←/→", w, cur.kind == itemCategory, catMsg != "")
	if catMsg != "" {
		catSection += "\n" + styles.ErrorStyle.Render("  "+catMsg)
	}

	out := []string{heading("Scientific Details", "Professional credentials"), "", catSection}
	for _, req := range validate.Requirements(d.Category) {
		out = append(out, m.inputSection(req.Field, req.Label, "", w))
	}
	return out
}

func (m Model) viewCurriculum(w int) []string {
	d := m.machine.Draft()
	cur, _ := m.focused()

	out := []string{heading("Curriculum Selection", "Academic workshops"), ""}
	for _, a := range m.machine.Catalog() {
		box := "[ ]"
		if d.HasAddOn(a.ID) {
			box = "[x]"
		}
		prefix := "  "
		if cur.kind == itemAddOn && cur.addOn == a.ID {
			prefix = styles.SelectionIndicatorStyle.Render("> ")
		}
		line := fmt.Sprintf("%s%s %s  %s", prefix, box, styles.TextStyle.Render(a.Title), styles.MoneyStyle.Render(a.Price.String()))
		out = append(out, zone.Mark(zoneAddOnPrefix+a.ID, line))
	}
	if len(m.machine.Catalog()) == 0 {
		out = append(out, styles.MutedStyle.Render("  No workshops are open for registration."))
	}

	pass := fmt.Sprintf("You have selected the %s category. This includes full access to all scientific sessions, halls, and networking areas.", d.Category)
	card := styles.CardStyle.Width(w).Render(
		styles.TextStyle.Render(pass) + "\n\n" +
			styles.LabelStyle.Render("ACCESS LEVEL  ") + styles.TitleStyle.Render("FULL SCIENTIFIC PASS"))
	return append(out, "", card)
}

func (m Model) viewSummary(w int) []string {
	d := m.machine.Draft()
	b := m.machine.Pricing()

	row := func(label string, amount money.Money, style lipgloss.Style) string {
		amt := amount.String()
		gap := max(w-4-lipgloss.Width(label)-lipgloss.Width(amt), 1)
		return style.Render(label + strings.Repeat(" ", gap) + amt)
	}

	lines := []string{row(fmt.Sprintf("Conference Fee (%s)", d.Category), b.Base, styles.MutedStyle)}
	if n := len(d.SelectedAddOns); n > 0 {
		lines = append(lines, row(fmt.Sprintf("Workshops (%d)", n), b.AddOns, styles.MutedStyle))
		for _, id := range d.SelectedAddOns {
			lines = append(lines, styles.MutedStyle.Render("  • "+m.machine.Catalog().Title(id)))
		}
	}
	lines = append(lines,
		row("Subtotal", b.Subtotal, styles.MutedStyle),
		row("GST (18%)", b.Tax, styles.MutedStyle),
		"",
		row("Total (Incl. GST)", b.Total, styles.TitleStyle),
	)

	return []string{
		heading("Checkout Summary", "Review and confirm"),
		"",
		styles.CardStyle.Width(w).Padding(0, 1).Render(strings.Join(lines, "\n")),
	}
}

func (m Model) viewButtons() string {
	var label string
	switch {
	case m.machine.Phase() == wizard.PhaseSubmitting:
		label = "Processing..."
	case m.machine.Step() == validate.LastStep:
		label = "Confirm & Pay"
	default:
		label = "Next Step"
	}

	next := styles.PrimaryButtonStyle.Render(label)
	if m.machine.Phase() != wizard.PhaseEditing {
		next = styles.DisabledButtonStyle.Render(label)
	}
	next = zone.Mark(ZoneNext, next)

	if m.machine.Step() == validate.FirstStep {
		return next
	}
	back := zone.Mark(ZoneBack, styles.Button("Back", false, false))
	return lipgloss.JoinHorizontal(lipgloss.Top, back, "  ", next)
}
