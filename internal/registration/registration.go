// Package registration defines the delegate registration data model shared by
// the wizard, the pricing engine, the pass renderer and the store.
package registration

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jasicon/jasreg/internal/money"
)

var (
	// ErrInvalidCategory is returned when a category name is not recognized.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrNotFound is returned by stores when no registration exists.
	ErrNotFound = errors.New("registration not found")
)

// Category is the delegate class that drives pricing and the credential fields.
type Category string

const (
	CategoryDoctor    Category = "Doctor"
	CategoryDelegate  Category = "Delegate"
	CategoryPGStudent Category = "PG Student"
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{CategoryDoctor, CategoryDelegate, CategoryPGStudent}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories(), c)
}

// ParseCategory resolves a category name, ignoring case and surrounding space.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Field names a draft field. The values double as keys in validation errors.
type Field string

const (
	FieldFullName     Field = "fullName"
	FieldEmail        Field = "email"
	FieldAge          Field = "age"
	FieldMobile       Field = "mobile"
	FieldInstitution  Field = "institution"
	FieldDesignation  Field = "designation"
	FieldMedicalRegNo Field = "medicalRegNo"
	FieldCategory     Field = "category"
)

// Draft is the in-progress registration form.
type Draft struct {
	FullName     string   `json:"fullName"`
	Email        string   `json:"email"`
	Age          string   `json:"age"`
	Mobile       string   `json:"mobile"`
	Institution  string   `json:"institution"`
	Designation  string   `json:"designation"`
	MedicalRegNo string   `json:"medicalRegNo"`
	Category     Category `json:"category"`

	// SelectedAddOns is kept sorted and free of duplicates.
	SelectedAddOns []string `json:"selectedAddOns"`
}

// NewDraft returns an empty draft prefilled from the identity.
func NewDraft(id Identity) Draft {
	return Draft{
		FullName: id.DisplayName,
		Email:    id.Email,
		Mobile:   MobilePrefix,
		Category: CategoryDoctor,
	}
}

// Value returns the string value of a field.
func (d Draft) Value(f Field) string {
	switch f {
	case FieldFullName:
		return d.FullName
	case FieldEmail:
		return d.Email
	case FieldAge:
		return d.Age
	case FieldMobile:
		return d.Mobile
	case FieldInstitution:
		return d.Institution
	case FieldDesignation:
		return d.Designation
	case FieldMedicalRegNo:
		return d.MedicalRegNo
	case FieldCategory:
		return string(d.Category)
	}
	return ""
}

// With returns a copy of d with field f set to value. Mobile values are
// normalized and the email field is read-only.
func (d Draft) With(f Field, value string) Draft {
	switch f {
	case FieldFullName:
		d.FullName = value
	case FieldAge:
		d.Age = value
	case FieldMobile:
		d.Mobile = NormalizeMobile(value)
	case FieldInstitution:
		d.Institution = value
	case FieldDesignation:
		d.Designation = value
	case FieldMedicalRegNo:
		d.MedicalRegNo = value
	case FieldCategory:
		d.Category = Category(value)
	}
	return d
}

// HasAddOn reports whether the add-on id is selected.
func (d Draft) HasAddOn(id string) bool {
	_, found := slices.BinarySearch(d.SelectedAddOns, id)
	return found
}

// ToggleAddOn returns a copy of d with the add-on selection flipped.
func (d Draft) ToggleAddOn(id string) Draft {
	ids := slices.Clone(d.SelectedAddOns)
	if i, found := slices.BinarySearch(ids, id); found {
		ids = slices.Delete(ids, i, i+1)
	} else {
		ids = slices.Insert(ids, i, id)
	}
	d.SelectedAddOns = ids
	return d
}

// Clone returns a deep copy of d.
func (d Draft) Clone() Draft {
	d.SelectedAddOns = slices.Clone(d.SelectedAddOns)
	return d
}

// AddOn is an optional paid item such as a workshop.
type AddOn struct {
	ID    string
	Title string
	Price money.Money
}

// Catalog is the ordered list of add-ons on offer.
type Catalog []AddOn

// Lookup finds an add-on by id.
func (c Catalog) Lookup(id string) (AddOn, bool) {
	for _, a := range c {
		if a.ID == id {
			return a, true
		}
	}
	return AddOn{}, false
}

// Title returns the add-on title, or the id itself when it is not in the catalog.
func (c Catalog) Title(id string) string {
	if a, ok := c.Lookup(id); ok {
		return a.Title
	}
	return id
}

// Status is the registration status attached to an identity.
type Status string

const (
	StatusNone      Status = "none"
	StatusCompleted Status = "completed"
)

// Identity is the authenticated user as supplied by the session provider.
type Identity struct {
	DisplayName        string
	Email              string
	UniqueID           string
	RegistrationStatus Status
	Details            *Confirmed
}

// Registered reports whether the identity already holds a confirmed registration.
func (i Identity) Registered() bool {
	return i.RegistrationStatus == StatusCompleted && i.Details != nil
}

// Confirmed is the persisted, immutable snapshot of a draft.
type Confirmed struct {
	GUID        string
	UniqueID    string
	DelegateID  string
	Draft       Draft
	Status      Status
	ConfirmedAt time.Time
}

// Confirm snapshots the draft for the given identity.
func Confirm(id Identity, d Draft, guid string, at time.Time) Confirmed {
	return Confirmed{
		GUID:        guid,
		UniqueID:    id.UniqueID,
		DelegateID:  DelegateID(id.UniqueID),
		Draft:       d.Clone(),
		Status:      StatusCompleted,
		ConfirmedAt: at,
	}
}
