package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jasicon/jasreg/internal/registration"
	"github.com/jasicon/jasreg/internal/session"
)

// RegistrationNotFoundError is returned when no registration exists for a
// unique id. It matches registration.ErrNotFound.
type RegistrationNotFoundError struct {
	UniqueID string
}

func (e *RegistrationNotFoundError) Error() string {
	return fmt.Sprintf("registration not found: %s", e.UniqueID)
}

func (e *RegistrationNotFoundError) Unwrap() error {
	return registration.ErrNotFound
}

const registrationColumns = `id, guid, unique_id, delegate_id, full_name, email, age, mobile,
	institution, designation, medical_reg_no, category, add_ons, status, confirmed_at, updated_at`

// RegistrationRepository stores one confirmed registration per identity.
type RegistrationRepository struct {
	db  *sql.DB
	now func() time.Time
}

func newRegistrationRepository(db *sql.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db, now: time.Now}
}

var _ session.Store = (*RegistrationRepository)(nil)

func scanRegistration(scanner interface{ Scan(...any) error }) (*RegistrationModel, error) {
	var m RegistrationModel
	err := scanner.Scan(
		&m.ID, &m.GUID, &m.UniqueID, &m.DelegateID, &m.FullName, &m.Email, &m.Age, &m.Mobile,
		&m.Institution, &m.Designation, &m.MedicalRegNo, &m.Category, &m.AddOns, &m.Status,
		&m.ConfirmedAt, &m.UpdatedAt,
	)
	return &m, err
}

// Save inserts the registration, replacing any earlier one for the same
// unique id.
func (r *RegistrationRepository) Save(ctx context.Context, c registration.Confirmed) error {
	m, err := toRegistrationModel(c, r.now())
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO registrations (
			guid, unique_id, delegate_id, full_name, email, age, mobile,
			institution, designation, medical_reg_no, category, add_ons, status, confirmed_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(unique_id) DO UPDATE SET
			guid = excluded.guid,
			delegate_id = excluded.delegate_id,
			full_name = excluded.full_name,
			email = excluded.email,
			age = excluded.age,
			mobile = excluded.mobile,
			institution = excluded.institution,
			designation = excluded.designation,
			medical_reg_no = excluded.medical_reg_no,
			category = excluded.category,
			add_ons = excluded.add_ons,
			status = excluded.status,
			confirmed_at = excluded.confirmed_at,
			updated_at = excluded.updated_at`,
		m.GUID, m.UniqueID, m.DelegateID, m.FullName, m.Email, m.Age, m.Mobile,
		m.Institution, m.Designation, m.MedicalRegNo, m.Category, m.AddOns, m.Status,
		m.ConfirmedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save registration: %w", err)
	}
	return nil
}

// FindByUniqueID returns the registration for an identity.
// Returns RegistrationNotFoundError if none exists.
func (r *RegistrationRepository) FindByUniqueID(ctx context.Context, uniqueID string) (registration.Confirmed, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE unique_id = ?`, uniqueID)
	m, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return registration.Confirmed{}, &RegistrationNotFoundError{UniqueID: uniqueID}
	}
	if err != nil {
		return registration.Confirmed{}, fmt.Errorf("failed to find registration: %w", err)
	}
	return m.toDomain()
}

// List returns all registrations ordered by confirmation time.
func (r *RegistrationRepository) List(ctx context.Context) ([]registration.Confirmed, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations ORDER BY confirmed_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []registration.Confirmed
	for rows.Next() {
		m, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		c, err := m.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return out, nil
}

// Delete removes the registration for an identity. Deleting a missing
// registration returns RegistrationNotFoundError.
func (r *RegistrationRepository) Delete(ctx context.Context, uniqueID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE unique_id = ?`, uniqueID)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return &RegistrationNotFoundError{UniqueID: uniqueID}
	}
	return nil
}
