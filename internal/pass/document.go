// Package pass renders a confirmed registration as a delegate pass and
// exports it as a downloadable PDF.
//
// Export is two separately failable steps, Rasterize then Embed, followed by
// the file write. None of them touch the registration itself.
package pass

import (
	"strings"

	"github.com/jasicon/jasreg/internal/registration"
)

// Conference carries the event details printed on every pass.
type Conference struct {
	Name     string
	Subtitle string
	Dates    string
	Venue    string
}

// Field is one labelled value on the pass.
type Field struct {
	Label string
	Value string
}

const (
	statusLine    = "Status: Confirmed"
	addOnsHeading = "Academic Curriculum"
	noAddOns      = "Conference Attendance Only"
	banner        = "Access to all scientific halls, networking hub, and gala dinner is activated."
	registeredTag = "Status: Registered"
	emptyValue    = "-"
)

// Document is the fixed layout of a pass, independent of the output medium.
type Document struct {
	Title      string
	Subtitle   string
	Status     string
	DelegateID string

	Fields []Field

	AddOnsHeading string
	// AddOns holds add-on titles. Empty means attendance only.
	AddOns []string

	Banner string
	Footer string
}

// AddOnLines returns the add-on titles or the attendance-only placeholder.
func (d Document) AddOnLines() []string {
	if len(d.AddOns) == 0 {
		return []string{noAddOns}
	}
	return d.AddOns
}

// Build lays out a confirmed registration.
func Build(c registration.Confirmed, catalog registration.Catalog, conf Conference) Document {
	d := c.Draft

	var contact []string
	if registration.MobileLocal(d.Mobile) != "" {
		contact = append(contact, d.Mobile)
	}
	if d.Email != "" {
		contact = append(contact, d.Email)
	}

	addOns := make([]string, 0, len(d.SelectedAddOns))
	for _, id := range d.SelectedAddOns {
		addOns = append(addOns, catalog.Title(id))
	}

	footer := conf.Dates
	if conf.Venue != "" {
		footer += " • " + conf.Venue
	}

	return Document{
		Title:      conf.Name,
		Subtitle:   conf.Subtitle,
		Status:     statusLine,
		DelegateID: c.DelegateID,
		Fields: []Field{
			{Label: "Delegate Name", Value: orEmpty(d.FullName)},
			{Label: "Medical Reg No / License", Value: orEmpty(d.MedicalRegNo)},
			{Label: "Institution", Value: orEmpty(d.Institution)},
			{Label: "Designation", Value: orEmpty(d.Designation)},
			{Label: "Contact Particulars", Value: orEmpty(strings.Join(contact, "  "))},
			{Label: "Registration Class", Value: orEmpty(string(d.Category)) + "  (" + registeredTag + ")"},
		},
		AddOnsHeading: addOnsHeading,
		AddOns:        addOns,
		Banner:        banner,
		Footer:        footer,
	}
}

func orEmpty(s string) string {
	if s == "" {
		return emptyValue
	}
	return s
}

// FileName is the download name for a delegate's pass.
func FileName(delegateID string) string {
	return "JASICON2026_Registration_Pass_" + delegateID + ".pdf"
}
