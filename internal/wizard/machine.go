// Package wizard implements the registration wizard state machine.
//
// Machine is a value type: every transition returns a new Machine and leaves
// the receiver untouched, so a rejected transition can never leave a
// partially advanced state behind.
//
//	Editing(n) --Next(valid)--> Editing(n+1)        n < 4
//	Editing(n) --Back-------->  Editing(n-1)        n > 1
//	Editing(4) --BeginSubmit--> Submitting
//	Submitting --SubmitFailed--> Editing(4)
//	Submitting --SubmitSucceeded--> Confirmed       terminal
package wizard

import (
	"maps"

	"github.com/jasicon/jasreg/internal/pricing"
	"github.com/jasicon/jasreg/internal/registration"
	"github.com/jasicon/jasreg/internal/validate"
)

// Phase is the coarse state of the machine.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSubmitting
	PhaseConfirmed
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseConfirmed:
		return "confirmed"
	}
	return "unknown"
}

// Machine holds the wizard state for one draft.
type Machine struct {
	step      validate.Step
	phase     Phase
	draft     registration.Draft
	errors    validate.Errors
	validator validate.Validator
	catalog   registration.Catalog

	lastErr   error
	confirmed registration.Confirmed
}

// New starts a wizard at the first step with a draft prefilled from the identity.
func New(id registration.Identity, catalog registration.Catalog, v validate.Validator) Machine {
	return Machine{
		step:      validate.FirstStep,
		phase:     PhaseEditing,
		draft:     registration.NewDraft(id),
		errors:    validate.Errors{},
		validator: v,
		catalog:   catalog,
	}
}

// WithDraft replaces the draft. Used to resume from a stored record.
func (m Machine) WithDraft(d registration.Draft) Machine {
	m.draft = d.Clone()
	return m
}

func (m Machine) Step() validate.Step { return m.step }
func (m Machine) Phase() Phase        { return m.phase }
func (m Machine) Submitting() bool    { return m.phase == PhaseSubmitting }

// Draft returns a copy of the current draft.
func (m Machine) Draft() registration.Draft { return m.draft.Clone() }

// Catalog returns the add-on catalog the machine prices against.
func (m Machine) Catalog() registration.Catalog { return m.catalog }

// Errors returns a copy of the current field errors.
func (m Machine) Errors() validate.Errors { return maps.Clone(m.errors) }

// Error returns the message for a field, or "".
func (m Machine) Error(f registration.Field) string { return m.errors[f] }

// LastError is the cause of the most recent failed submission.
func (m Machine) LastError() error { return m.lastErr }

// Confirmed returns the persisted registration once the machine is confirmed.
func (m Machine) Confirmed() (registration.Confirmed, bool) {
	return m.confirmed, m.phase == PhaseConfirmed
}

// Pricing computes the fee breakdown for the current draft.
func (m Machine) Pricing() pricing.Breakdown {
	return pricing.ComputeTotal(m.draft.Category, m.draft.SelectedAddOns, m.catalog)
}

func (m Machine) editable() bool {
	return m.phase == PhaseEditing
}

// SetField updates one field and clears only that field's error.
func (m Machine) SetField(f registration.Field, value string) Machine {
	if !m.editable() || f == registration.FieldEmail {
		return m
	}
	next := m.draft.With(f, value)
	if next.Value(f) != m.draft.Value(f) {
		m.errors = m.errors.Without(f)
	}
	m.draft = next
	return m
}

// ToggleAddOn flips an add-on. Ids not in the catalog are ignored.
func (m Machine) ToggleAddOn(id string) Machine {
	if !m.editable() {
		return m
	}
	if _, ok := m.catalog.Lookup(id); !ok {
		return m
	}
	m.draft = m.draft.ToggleAddOn(id)
	return m
}

// SetCatalog swaps the catalog, dropping selections that no longer exist.
func (m Machine) SetCatalog(c registration.Catalog) Machine {
	m.catalog = c
	d := m.draft.Clone()
	for _, id := range m.draft.SelectedAddOns {
		if _, ok := c.Lookup(id); !ok {
			d = d.ToggleAddOn(id)
		}
	}
	m.draft = d
	return m
}

// RefreshIdentity fills the email from a refreshed identity when the draft
// has none yet.
func (m Machine) RefreshIdentity(id registration.Identity) Machine {
	if m.draft.Email != "" || id.Email == "" {
		return m
	}
	m.draft.Email = id.Email
	m.errors = m.errors.Without(registration.FieldEmail)
	return m
}

// Next validates the current step and advances when it is valid. It reports
// whether the step changed.
func (m Machine) Next() (Machine, bool) {
	if !m.editable() {
		return m, false
	}
	errs := m.validator.Check(m.step, m.draft)
	if m.step == validate.StepProfile {
		if err := validate.Preconditions(m.draft); err != nil {
			errs[registration.FieldEmail] = validate.MissingEmailMessage
		}
	}
	m.errors = errs
	if !errs.Empty() {
		return m, false
	}
	if m.step >= validate.LastStep {
		return m, false
	}
	m.step++
	return m, true
}

// Back moves one step back without validating.
func (m Machine) Back() Machine {
	if !m.editable() || m.step <= validate.FirstStep {
		return m
	}
	m.step--
	return m
}

// BeginSubmit enters Submitting from the last step and returns the draft to
// persist. It reports false, changing nothing, when a submission is already
// in flight or the wizard is not on the summary step.
func (m Machine) BeginSubmit() (Machine, registration.Draft, bool) {
	if !m.editable() || m.step != validate.LastStep {
		return m, registration.Draft{}, false
	}
	m.phase = PhaseSubmitting
	m.lastErr = nil
	return m, m.draft.Clone(), true
}

// SubmitFailed returns to the summary step so the user can retry.
func (m Machine) SubmitFailed(err error) Machine {
	if m.phase != PhaseSubmitting {
		return m
	}
	m.phase = PhaseEditing
	m.lastErr = err
	return m
}

// SubmitSucceeded makes the machine terminal.
func (m Machine) SubmitSucceeded(c registration.Confirmed) Machine {
	if m.phase != PhaseSubmitting {
		return m
	}
	m.phase = PhaseConfirmed
	m.confirmed = c
	return m
}
