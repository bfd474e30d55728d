// Package validate holds the per-step field rules of the registration wizard.
package validate

import (
	"errors"
	"maps"
	"strconv"
	"strings"

	"github.com/jasicon/jasreg/internal/registration"
)

// MinimumAge is the youngest age accepted at registration.
const MinimumAge = 18

// ErrMissingEmail is reported when the identity did not supply an email.
var ErrMissingEmail = errors.New("identity has no email")

// MissingEmailMessage is shown to the user for ErrMissingEmail.
const MissingEmailMessage = "Email is missing from your profile. Please refresh the page or contact support."

// Step is a wizard step, numbered from 1.
type Step int

const (
	StepProfile Step = iota + 1
	StepScientific
	StepCurriculum
	StepSummary
)

// FirstStep and LastStep bound the wizard.
const (
	FirstStep = StepProfile
	LastStep  = StepSummary
)

// Label returns the step name shown in the progress bar.
func (s Step) Label() string {
	switch s {
	case StepProfile:
		return "Profile"
	case StepScientific:
		return "Scientific"
	case StepCurriculum:
		return "Curriculum"
	case StepSummary:
		return "Summary"
	}
	return ""
}

// Steps returns all steps in order.
func Steps() []Step {
	return []Step{StepProfile, StepScientific, StepCurriculum, StepSummary}
}

// Errors maps a field to its message. An empty map means the step is valid.
type Errors map[registration.Field]string

// Empty reports whether there are no errors.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Without returns a copy of e with the field's entry removed. The receiver is
// left untouched.
func (e Errors) Without(f registration.Field) Errors {
	if _, ok := e[f]; !ok {
		return e
	}
	out := maps.Clone(e)
	delete(out, f)
	return out
}

// Options tunes the validator.
type Options struct {
	// Strict makes the per-category credential fields blocking.
	Strict bool
}

// Validator checks a draft against the rules of one step.
type Validator struct {
	opts Options
}

// New returns a Validator.
func New(opts Options) Validator {
	return Validator{opts: opts}
}

// Check validates the draft for a step with the lenient default rules.
func Check(step Step, d registration.Draft) Errors {
	return Validator{}.Check(step, d)
}

// Check validates the draft for a step. Only failing fields appear in the result.
func (v Validator) Check(step Step, d registration.Draft) Errors {
	errs := Errors{}
	switch step {
	case StepProfile:
		checkProfile(d, errs)
	case StepScientific:
		checkScientific(d, errs, v.opts.Strict)
	}
	return errs
}

func checkProfile(d registration.Draft, errs Errors) {
	if strings.TrimSpace(d.FullName) == "" {
		errs[registration.FieldFullName] = "Name is required"
	}

	if d.Age == "" {
		errs[registration.FieldAge] = "Age is required"
	} else if age, err := strconv.Atoi(strings.TrimSpace(d.Age)); err != nil || age < MinimumAge {
		errs[registration.FieldAge] = "Age must be at least 18"
	}

	switch {
	case d.Mobile == "" || d.Mobile == registration.MobilePrefix:
		errs[registration.FieldMobile] = "Mobile number is required"
	case len(d.Mobile) != len(registration.MobilePrefix)+registration.MobileDigits:
		errs[registration.FieldMobile] = "Mobile number must be exactly 10 digits"
	}
}

func checkScientific(d registration.Draft, errs Errors, strict bool) {
	if d.Category == "" {
		errs[registration.FieldCategory] = "Category is required"
		return
	}
	for _, req := range Requirements(d.Category) {
		if !(strict || req.Hard) {
			continue
		}
		if strings.TrimSpace(d.Value(req.Field)) == "" {
			errs[req.Field] = req.Label + " is required"
		}
	}
}

// Preconditions reports conditions the user cannot fix from the form.
func Preconditions(d registration.Draft) error {
	if d.Email == "" {
		return ErrMissingEmail
	}
	return nil
}
