// Package session supplies the signed-in identity and persists completed
// registrations on its behalf.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jasicon/jasreg/internal/log"
	"github.com/jasicon/jasreg/internal/registration"
)

var (
	// ErrRegistration wraps every failure to complete a registration.
	ErrRegistration = errors.New("registration failed")
	// ErrNoIdentity is returned when no unique id is configured.
	ErrNoIdentity = errors.New("no identity configured")
)

// Store persists confirmed registrations keyed by the identity's unique id.
type Store interface {
	Save(ctx context.Context, c registration.Confirmed) error
	FindByUniqueID(ctx context.Context, uniqueID string) (registration.Confirmed, error)
}

// Provider is the identity provider and registration persister.
type Provider struct {
	identity registration.Identity
	store    Store
	now      func() time.Time
	newGUID  func() string
}

// Option configures a Provider.
type Option func(*Provider)

// WithClock sets the time source for confirmation timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// WithGUIDs sets the record id generator.
func WithGUIDs(fn func() string) Option {
	return func(p *Provider) { p.newGUID = fn }
}

// NewProvider creates a provider for a fixed identity backed by store.
func NewProvider(identity registration.Identity, store Store, opts ...Option) *Provider {
	p := &Provider{
		identity: identity,
		store:    store,
		now:      time.Now,
		newGUID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Current returns the identity with its registration status resolved from
// the store.
func (p *Provider) Current(ctx context.Context) (registration.Identity, error) {
	id := p.identity
	if id.UniqueID == "" {
		return id, ErrNoIdentity
	}
	c, err := p.store.FindByUniqueID(ctx, id.UniqueID)
	switch {
	case errors.Is(err, registration.ErrNotFound):
		id.RegistrationStatus = registration.StatusNone
		id.Details = nil
		return id, nil
	case err != nil:
		return id, fmt.Errorf("failed to load registration: %w", err)
	}
	id.RegistrationStatus = c.Status
	id.Details = &c
	log.Debug(log.CatSession, "Loaded prior registration", "delegate_id", c.DelegateID)
	return id, nil
}

// CompleteRegistration snapshots d for the current identity and stores it.
// Any failure is reported as ErrRegistration wrapping the cause.
func (p *Provider) CompleteRegistration(ctx context.Context, d registration.Draft) (registration.Confirmed, error) {
	if p.identity.UniqueID == "" {
		return registration.Confirmed{}, fmt.Errorf("%w: %w", ErrRegistration, ErrNoIdentity)
	}
	if err := ctx.Err(); err != nil {
		return registration.Confirmed{}, fmt.Errorf("%w: %w", ErrRegistration, err)
	}

	c := registration.Confirm(p.identity, d, p.newGUID(), p.now().UTC())
	if err := p.store.Save(ctx, c); err != nil {
		return registration.Confirmed{}, fmt.Errorf("%w: %w", ErrRegistration, err)
	}
	log.Info(log.CatSession, "Registration stored", "delegate_id", c.DelegateID, "guid", c.GUID)
	return c, nil
}
