package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/require"

	"github.com/jasicon/jasreg/internal/registration"
)

type memStore struct {
	mu      sync.Mutex
	records map[string]registration.Confirmed
	saveErr error
	findErr error
	saves   int
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]registration.Confirmed)}
}

func (s *memStore) Save(_ context.Context, c registration.Confirmed) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records[c.UniqueID] = c
	return nil
}

func (s *memStore) FindByUniqueID(_ context.Context, uid string) (registration.Confirmed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return registration.Confirmed{}, s.findErr
	}
	c, ok := s.records[uid]
	if !ok {
		return registration.Confirmed{}, registration.ErrNotFound
	}
	return c, nil
}

var testIdentity = registration.Identity{DisplayName: "Dr. Asha Rao", Email: "asha@example.com", UniqueID: "user-4821"}

var fixedTime = time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

func newTestProvider(store Store) *Provider {
	return NewProvider(testIdentity, store,
		WithClock(func() time.Time { return fixedTime }),
		WithGUIDs(func() string { return "guid-1" }))
}

func TestCurrent_NoPriorRegistration(t *testing.T) {
	p := newTestProvider(newMemStore())

	id, err := p.Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, registration.StatusNone, id.RegistrationStatus)
	require.Nil(t, id.Details)
	require.False(t, id.Registered())
	require.Equal(t, "asha@example.com", id.Email)
}

func TestCompleteRegistration_ThenCurrent(t *testing.T) {
	store := newMemStore()
	p := newTestProvider(store)
	d := registration.NewDraft(testIdentity).With(registration.FieldAge, "40").ToggleAddOn("w1")

	c, err := p.CompleteRegistration(context.Background(), d)
	require.NoError(t, err)
	require.Equal(t, "guid-1", c.GUID)
	require.Equal(t, "JAS26-10821", c.DelegateID)
	require.Equal(t, registration.StatusCompleted, c.Status)
	require.Equal(t, fixedTime, c.ConfirmedAt)
	require.Equal(t, []string{"w1"}, c.Draft.SelectedAddOns)

	id, err := p.Current(context.Background())
	require.NoError(t, err)
	require.True(t, id.Registered())
	require.Equal(t, c, *id.Details)
}

func TestCompleteRegistration_StoreFailure(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("disk full")
	p := newTestProvider(store)

	_, err := p.CompleteRegistration(context.Background(), registration.NewDraft(testIdentity))
	require.ErrorIs(t, err, ErrRegistration)
	require.ErrorContains(t, err, "disk full")
	require.Equal(t, 1, store.saves)
}

func TestCompleteRegistration_NoIdentity(t *testing.T) {
	store := newMemStore()
	p := NewProvider(registration.Identity{Email: "a@b.c"}, store)

	_, err := p.CompleteRegistration(context.Background(), registration.Draft{})
	require.ErrorIs(t, err, ErrRegistration)
	require.ErrorIs(t, err, ErrNoIdentity)
	require.Zero(t, store.saves)

	_, err = p.Current(context.Background())
	require.ErrorIs(t, err, ErrNoIdentity)
}

func TestCompleteRegistration_CancelledContext(t *testing.T) {
	store := newMemStore()
	p := newTestProvider(store)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.CompleteRegistration(ctx, registration.Draft{})
	require.ErrorIs(t, err, ErrRegistration)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, store.saves)
}

func TestCurrent_StoreFailure(t *testing.T) {
	store := newMemStore()
	store.findErr = errors.New("locked")
	p := newTestProvider(store)

	_, err := p.Current(context.Background())
	require.ErrorContains(t, err, "locked")
}

func TestNewProvider_DefaultGUIDs(t *testing.T) {
	store := newMemStore()
	p := NewProvider(testIdentity, store)

	a, err := p.CompleteRegistration(context.Background(), registration.Draft{})
	require.NoError(t, err)
	b, err := p.CompleteRegistration(context.Background(), registration.Draft{})
	require.NoError(t, err)
	require.Len(t, a.GUID, 36)
	require.NotEqual(t, a.GUID, b.GUID)
}

func TestIdentityFromEnv(t *testing.T) {
	base := registration.Identity{DisplayName: "Config Name", Email: "config@example.com", UniqueID: "cfg-001"}

	id, err := identityFromEnv(base, env.Options{Environment: map[string]string{
		"JASREG_EMAIL": "env@example.com",
		"JASREG_UID":   "env-777",
	}})
	require.NoError(t, err)
	require.Equal(t, "Config Name", id.DisplayName)
	require.Equal(t, "env@example.com", id.Email)
	require.Equal(t, "env-777", id.UniqueID)

	id, err = identityFromEnv(base, env.Options{Environment: map[string]string{}})
	require.NoError(t, err)
	require.Equal(t, base, id)
}

func TestIdentityFromEnv_ProcessEnvironment(t *testing.T) {
	t.Setenv("JASREG_DISPLAY_NAME", "Dr. Env")
	id, err := IdentityFromEnv(registration.Identity{UniqueID: "x"})
	require.NoError(t, err)
	require.Equal(t, "Dr. Env", id.DisplayName)
	require.Equal(t, "x", id.UniqueID)
}
