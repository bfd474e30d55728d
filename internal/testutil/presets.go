package testutil

import (
	"time"

	"github.com/jasicon/jasreg/internal/registration"
)

// WithStandardRegistrations adds one registration per category.
// user-4821 is a Doctor with the laparoscopy workshop (JAS26-10821),
// user-1002 a Delegate with no workshops and no email, and user-7315 a PG
// Student with both workshops.
func (b *Builder) WithStandardRegistrations() *Builder {
	day := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return b.
		WithRegistration("user-4821",
			Name("Dr. Asha Rao"),
			Field(registration.FieldMedicalRegNo, "MCI-1234"),
			AddOns("w1"),
			ConfirmedAt(day)).
		WithRegistration("user-1002",
			Name("Ravi Kumar"),
			Email(""),
			Category(registration.CategoryDelegate),
			Field(registration.FieldInstitution, "AIIMS Deoghar"),
			ConfirmedAt(day.Add(time.Hour))).
		WithRegistration("user-7315",
			Name("Dr. Meera Iyer"),
			Category(registration.CategoryPGStudent),
			Field(registration.FieldInstitution, "RIMS Ranchi"),
			Field(registration.FieldDesignation, "Resident"),
			AddOns("w1", "w2"),
			ConfirmedAt(day.Add(2*time.Hour)))
}
