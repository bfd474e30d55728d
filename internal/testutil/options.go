package testutil

import (
	"time"

	"github.com/jasicon/jasreg/internal/registration"
)

// RegistrationOption configures a registration built by Registration.
type RegistrationOption func(*registrationData)

// registrationData holds everything needed to confirm a registration.
type registrationData struct {
	identity    registration.Identity
	fields      map[registration.Field]string
	addOns      []string
	guid        string
	confirmedAt time.Time
}

// Name sets the delegate name.
func Name(name string) RegistrationOption {
	return func(d *registrationData) { d.identity.DisplayName = name }
}

// Email sets the identity email. An empty email leaves the draft without one.
func Email(email string) RegistrationOption {
	return func(d *registrationData) { d.identity.Email = email }
}

// Field sets one draft field.
func Field(f registration.Field, value string) RegistrationOption {
	return func(d *registrationData) { d.fields[f] = value }
}

// Category sets the delegate category.
func Category(c registration.Category) RegistrationOption {
	return Field(registration.FieldCategory, string(c))
}

// AddOns selects workshops. The draft keeps them sorted by id.
func AddOns(ids ...string) RegistrationOption {
	return func(d *registrationData) { d.addOns = append(d.addOns, ids...) }
}

// GUID sets the record id.
func GUID(guid string) RegistrationOption {
	return func(d *registrationData) { d.guid = guid }
}

// ConfirmedAt sets the confirmation time.
func ConfirmedAt(at time.Time) RegistrationOption {
	return func(d *registrationData) { d.confirmedAt = at }
}

func defaultRegistration(uid string) registrationData {
	return registrationData{
		identity: registration.Identity{
			DisplayName: "Dr. Asha Rao",
			Email:       uid + "@example.com",
			UniqueID:    uid,
		},
		fields: map[registration.Field]string{
			registration.FieldAge:      "40",
			registration.FieldMobile:   "9876543210",
			registration.FieldCategory: string(registration.CategoryDoctor),
		},
		guid:        "guid-" + uid,
		confirmedAt: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
	}
}

// Registration returns a confirmed registration for uid. Without options it
// is a Doctor with no workshops.
func Registration(uid string, opts ...RegistrationOption) registration.Confirmed {
	data := defaultRegistration(uid)
	for _, opt := range opts {
		opt(&data)
	}
	d := registration.NewDraft(data.identity)
	for f, v := range data.fields {
		d = d.With(f, v)
	}
	for _, id := range data.addOns {
		d = d.ToggleAddOn(id)
	}
	return registration.Confirm(data.identity, d, data.guid, data.confirmedAt)
}
