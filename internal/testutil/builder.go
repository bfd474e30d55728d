package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jasicon/jasreg/internal/registration"
)

// Store receives the registrations a Builder creates.
type Store interface {
	Save(ctx context.Context, c registration.Confirmed) error
}

// Builder accumulates registrations and saves them in order.
type Builder struct {
	t     *testing.T
	store Store
	regs  []registration.Confirmed
}

// NewBuilder creates a builder for the given store.
func NewBuilder(t *testing.T, store Store) *Builder {
	t.Helper()
	return &Builder{t: t, store: store}
}

// WithRegistration adds a registration for uid.
func (b *Builder) WithRegistration(uid string, opts ...RegistrationOption) *Builder {
	b.regs = append(b.regs, Registration(uid, opts...))
	return b
}

// Build saves every registration and returns them in insertion order.
func (b *Builder) Build() []registration.Confirmed {
	b.t.Helper()
	for _, c := range b.regs {
		require.NoError(b.t, b.store.Save(context.Background(), c), "saving %s", c.UniqueID)
	}
	return b.regs
}
