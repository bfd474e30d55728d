package validate

import "github.com/jasicon/jasreg/internal/registration"

// Requirement is a credential field requested for a category.
type Requirement struct {
	Field       registration.Field
	Label       string
	Placeholder string
	// Hard requirements block advancement. None are hard today; Options.Strict
	// promotes all of them.
	Hard bool
}

var (
	medicalRegNo = Requirement{Field: registration.FieldMedicalRegNo, Label: "Medical Reg No / License", Placeholder: "MCI / State Council No"}
	institution  = Requirement{Field: registration.FieldInstitution, Label: "Institution", Placeholder: "e.g. AIIMS Delhi"}
	designation  = Requirement{Field: registration.FieldDesignation, Label: "Designation", Placeholder: "e.g. Senior Resident"}
)

var requirements = map[registration.Category][]Requirement{
	registration.CategoryDoctor:    {medicalRegNo},
	registration.CategoryDelegate:  {medicalRegNo, institution, designation},
	registration.CategoryPGStudent: {institution},
}

// Requirements lists the credential fields shown for a category, in display order.
func Requirements(c registration.Category) []Requirement {
	return requirements[c]
}
