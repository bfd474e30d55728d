package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasicon/jasreg/internal/registration"
)

func validProfile() registration.Draft {
	return registration.Draft{
		FullName: "A B",
		Email:    "a@b.in",
		Age:      "30",
		Mobile:   "+919876543210",
		Category: registration.CategoryDoctor,
	}
}

func TestCheck_ValidProfile(t *testing.T) {
	require.True(t, Check(StepProfile, validProfile()).Empty())
}

func TestCheck_Age(t *testing.T) {
	tests := []struct {
		age     string
		wantErr string
	}{
		{"17", "Age must be at least 18"},
		{"", "Age is required"},
		{"abc", "Age must be at least 18"},
		{"-4", "Age must be at least 18"},
		{"18", ""},
		{"65", ""},
	}
	for _, tt := range tests {
		t.Run("age="+tt.age, func(t *testing.T) {
			d := validProfile()
			d.Age = tt.age
			errs := Check(StepProfile, d)
			if tt.wantErr == "" {
				assert.NotContains(t, errs, registration.FieldAge)
				return
			}
			assert.Equal(t, tt.wantErr, errs[registration.FieldAge])
		})
	}
}

func TestCheck_FullName(t *testing.T) {
	d := validProfile()
	d.FullName = "   "
	errs := Check(StepProfile, d)
	require.Equal(t, Errors{registration.FieldFullName: "Name is required"}, errs)
}

func TestCheck_Mobile(t *testing.T) {
	d := validProfile()

	d.Mobile = "+91"
	require.Equal(t, "Mobile number is required", Check(StepProfile, d)[registration.FieldMobile])

	d.Mobile = ""
	require.Equal(t, "Mobile number is required", Check(StepProfile, d)[registration.FieldMobile])

	d.Mobile = "+91987654"
	require.Equal(t, "Mobile number must be exactly 10 digits", Check(StepProfile, d)[registration.FieldMobile])
}

func TestCheck_ScientificIsLenient(t *testing.T) {
	for _, c := range registration.Categories() {
		d := validProfile()
		d.Category = c
		require.True(t, Check(StepScientific, d).Empty(), "category %s must not block on empty credentials", c)
	}
}

func TestCheck_ScientificCategoryRequired(t *testing.T) {
	d := validProfile()
	d.Category = ""
	require.Equal(t, Errors{registration.FieldCategory: "Category is required"}, Check(StepScientific, d))
}

func TestCheck_Strict(t *testing.T) {
	v := New(Options{Strict: true})

	d := validProfile()
	d.Category = registration.CategoryDelegate
	errs := v.Check(StepScientific, d)
	require.Len(t, errs, 3)
	require.Equal(t, "Designation is required", errs[registration.FieldDesignation])

	d.Category = registration.CategoryPGStudent
	d.Institution = "AIIMS Delhi"
	require.True(t, v.Check(StepScientific, d).Empty())
}

func TestCheck_LaterStepsHaveNoRules(t *testing.T) {
	require.True(t, Check(StepCurriculum, registration.Draft{}).Empty())
	require.True(t, Check(StepSummary, registration.Draft{}).Empty())
}

func TestRequirements(t *testing.T) {
	fields := func(c registration.Category) []registration.Field {
		var out []registration.Field
		for _, r := range Requirements(c) {
			out = append(out, r.Field)
		}
		return out
	}
	require.Equal(t, []registration.Field{registration.FieldMedicalRegNo}, fields(registration.CategoryDoctor))
	require.Equal(t, []registration.Field{registration.FieldInstitution}, fields(registration.CategoryPGStudent))
	require.Equal(t, []registration.Field{
		registration.FieldMedicalRegNo, registration.FieldInstitution, registration.FieldDesignation,
	}, fields(registration.CategoryDelegate))
	require.Empty(t, Requirements("Nurse"))
}

func TestErrorsWithout(t *testing.T) {
	e := Errors{registration.FieldAge: "x", registration.FieldMobile: "y"}
	out := e.Without(registration.FieldAge)
	require.Len(t, out, 1)
	require.Len(t, e, 2, "receiver is not modified")
}

func TestPreconditions(t *testing.T) {
	require.NoError(t, Preconditions(validProfile()))
	require.ErrorIs(t, Preconditions(registration.Draft{}), ErrMissingEmail)
}
