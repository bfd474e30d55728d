package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jasicon/jasreg/internal/registration"
)

// RegistrationModel represents a row of the registrations table.
// Time values are Unix timestamps.
type RegistrationModel struct {
	ID           int64
	GUID         string
	UniqueID     string
	DelegateID   string
	FullName     string
	Email        string
	Age          string
	Mobile       string
	Institution  string
	Designation  string
	MedicalRegNo string
	Category     string
	AddOns       string // JSON encoded
	Status       string
	ConfirmedAt  int64
	UpdatedAt    int64
}

func toRegistrationModel(c registration.Confirmed, now time.Time) (*RegistrationModel, error) {
	addOns := c.Draft.SelectedAddOns
	if addOns == nil {
		addOns = []string{}
	}
	raw, err := json.Marshal(addOns)
	if err != nil {
		return nil, fmt.Errorf("failed to encode add-ons: %w", err)
	}
	d := c.Draft
	return &RegistrationModel{
		GUID:         c.GUID,
		UniqueID:     c.UniqueID,
		DelegateID:   c.DelegateID,
		FullName:     d.FullName,
		Email:        d.Email,
		Age:          d.Age,
		Mobile:       d.Mobile,
		Institution:  d.Institution,
		Designation:  d.Designation,
		MedicalRegNo: d.MedicalRegNo,
		Category:     string(d.Category),
		AddOns:       string(raw),
		Status:       string(c.Status),
		ConfirmedAt:  c.ConfirmedAt.Unix(),
		UpdatedAt:    now.Unix(),
	}, nil
}

func (m *RegistrationModel) toDomain() (registration.Confirmed, error) {
	var addOns []string
	if err := json.Unmarshal([]byte(m.AddOns), &addOns); err != nil {
		return registration.Confirmed{}, fmt.Errorf("failed to decode add-ons: %w", err)
	}
	if len(addOns) == 0 {
		addOns = nil
	}
	return registration.Confirmed{
		GUID:       m.GUID,
		UniqueID:   m.UniqueID,
		DelegateID: m.DelegateID,
		Draft: registration.Draft{
			FullName:       m.FullName,
			Email:          m.Email,
			Age:            m.Age,
			Mobile:         m.Mobile,
			Institution:    m.Institution,
			Designation:    m.Designation,
			MedicalRegNo:   m.MedicalRegNo,
			Category:       registration.Category(m.Category),
			SelectedAddOns: addOns,
		},
		Status:      registration.Status(m.Status),
		ConfirmedAt: time.Unix(m.ConfirmedAt, 0).UTC(),
	}, nil
}
