package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jasicon/jasreg/internal/money"
	"github.com/jasicon/jasreg/internal/registration"
)

const sample = `
add_ons:
  - id: w1
    title: Advanced Laparoscopy Masterclass
    price: 15000
  - id: w3
    title: Obstetric Ultrasound Hands-on
    price: 8000
`

func TestDefault(t *testing.T) {
	c := Default()
	require.Len(t, c, 2)
	require.Equal(t, registration.AddOn{ID: "w1", Title: "Advanced Laparoscopy Masterclass", Price: money.Rupees(15000)}, c[0])
	require.Equal(t, registration.AddOn{ID: "w2", Title: "Infertility & IVF Management", Price: money.Rupees(12000)}, c[1])
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Equal(t, registration.Catalog{
		{ID: "w1", Title: "Advanced Laparoscopy Masterclass", Price: money.Rupees(15000)},
		{ID: "w3", Title: "Obstetric Ultrasound Hands-on", Price: money.Rupees(8000)},
	}, c)
}

func TestParse_Empty(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	require.Empty(t, c)

	c, err = Parse([]byte("add_ons: []\n"))
	require.NoError(t, err)
	require.Empty(t, c)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"missing id", "add_ons:\n  - title: X\n    price: 1\n", "has no id"},
		{"duplicate id", "add_ons:\n  - {id: a, title: A, price: 1}\n  - {id: a, title: B, price: 2}\n", "duplicate"},
		{"missing title", "add_ons:\n  - {id: a, price: 1}\n", "has no title"},
		{"negative price", "add_ons:\n  - {id: a, title: A, price: -5}\n", "negative price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, ErrInvalid)
			require.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("add_ons:\n  - {id: a, title: A, price: 1, cost: 2}\n"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalid)

	_, err = Parse([]byte("add_ons: [:"))
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	c, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, Default(), c)
}

func TestSource_DefaultWhenNoPath(t *testing.T) {
	s := NewSource("", 0)
	c, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, Default(), c)
	require.Empty(t, s.Path())
}

func TestSource_CachesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "addons.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	s := NewSource(path, 0)
	c, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, c, 2)

	require.NoError(t, os.WriteFile(path, []byte("add_ons:\n  - {id: w1, title: Only, price: 1}\n"), 0o644))
	c, err = s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, c, 2, "cached catalog is served until invalidated")

	s.Invalidate(ctx)
	c, err = s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, registration.Catalog{{ID: "w1", Title: "Only", Price: money.Rupees(1)}}, c)
}

func TestSource_TTL(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "addons.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	s := NewSource(path, 20*time.Millisecond)
	_, err := s.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("add_ons: []\n"), 0o644))
	require.Eventually(t, func() bool {
		c, err := s.Load(ctx)
		return err == nil && len(c) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestSource_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "addons.yaml")

	s := NewSource(path, 0)
	_, err := s.Load(ctx)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	c, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, c, 2)
}
