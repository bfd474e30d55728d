// Package presentation renders registrations and the add-on catalog for the
// command line.
package presentation

import (
	"time"

	"github.com/jasicon/jasreg/internal/pricing"
	"github.com/jasicon/jasreg/internal/registration"
)

// RegistrationDTO is a confirmed registration as printed by
// `jasreg registrations list`.
type RegistrationDTO struct {
	DelegateID  string     `json:"delegate_id"`
	UniqueID    string     `json:"unique_id"`
	GUID        string     `json:"guid"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email,omitempty"`
	Mobile      string     `json:"mobile"`
	Category    string     `json:"category"`
	AddOns      []AddOnDTO `json:"add_ons"`
	Status      string     `json:"status"`
	Total       string     `json:"total"`
	TotalPaise  int64      `json:"total_paise"`
	ConfirmedAt time.Time  `json:"confirmed_at"`
}

// AddOnDTO is one workshop. Titles missing from the catalog fall back to
// the id.
type AddOnDTO struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Price      string `json:"price,omitempty"`
	PricePaise int64  `json:"price_paise,omitempty"`
}

// ExportDTO reports one written pass.
type ExportDTO struct {
	UniqueID   string `json:"unique_id,omitempty"`
	DelegateID string `json:"delegate_id"`
	Path       string `json:"path,omitempty"`
	Error      string `json:"error,omitempty"`
}

// FromCatalog converts the catalog to DTOs in catalog order.
func FromCatalog(c registration.Catalog) []AddOnDTO {
	out := make([]AddOnDTO, len(c))
	for i, a := range c {
		out[i] = AddOnDTO{ID: a.ID, Title: a.Title, Price: a.Price.String(), PricePaise: int64(a.Price)}
	}
	return out
}

// FromConfirmed converts a registration, pricing it against catalog.
func FromConfirmed(c registration.Confirmed, catalog registration.Catalog) RegistrationDTO {
	d := c.Draft
	addOns := make([]AddOnDTO, 0, len(d.SelectedAddOns))
	for _, id := range d.SelectedAddOns {
		dto := AddOnDTO{ID: id, Title: catalog.Title(id)}
		if a, ok := catalog.Lookup(id); ok {
			dto.Price, dto.PricePaise = a.Price.String(), int64(a.Price)
		}
		addOns = append(addOns, dto)
	}
	total := pricing.ComputeTotal(d.Category, d.SelectedAddOns, catalog).Total
	return RegistrationDTO{
		DelegateID:  c.DelegateID,
		UniqueID:    c.UniqueID,
		GUID:        c.GUID,
		FullName:    d.FullName,
		Email:       d.Email,
		Mobile:      d.Mobile,
		Category:    string(d.Category),
		AddOns:      addOns,
		Status:      string(c.Status),
		Total:       total.String(),
		TotalPaise:  int64(total),
		ConfirmedAt: c.ConfirmedAt.UTC(),
	}
}

// FromRegistrations converts a list of registrations.
func FromRegistrations(cs []registration.Confirmed, catalog registration.Catalog) []RegistrationDTO {
	out := make([]RegistrationDTO, len(cs))
	for i, c := range cs {
		out[i] = FromConfirmed(c, catalog)
	}
	return out
}
