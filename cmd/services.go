package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/jasicon/jasreg/internal/catalog"
	"github.com/jasicon/jasreg/internal/config"
	"github.com/jasicon/jasreg/internal/infrastructure/sqlite"
	"github.com/jasicon/jasreg/internal/pass"
	"github.com/jasicon/jasreg/internal/registration"
	"github.com/jasicon/jasreg/internal/session"
	"github.com/jasicon/jasreg/internal/tracing"
)

// services are the collaborators shared by the TUI and the subcommands.
type services struct {
	db       *sqlite.DB
	sessions *session.Provider
	catalog  *catalog.Source
	tracing  *tracing.Provider
	exporter *pass.Exporter
}

// openServices opens the registration store and builds the collaborators
// for c. Close releases them.
func openServices(ctx context.Context, c config.Config) (*services, error) {
	identity, err := identityFor(c)
	if err != nil {
		return nil, err
	}

	db, err := sqlite.NewDB(c.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening registration database: %w", err)
	}

	tp, err := tracing.NewProvider(ctx, c.Tracing)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("starting tracing: %w", err)
	}

	return &services{
		db:       db,
		sessions: session.NewProvider(identity, db.Registrations()),
		catalog:  catalog.NewSource(c.Catalog.Path, c.Catalog.CacheTTL),
		tracing:  tp,
		exporter: pass.NewExporter(c.Export.Dir, c.Export.PixelRatio, pass.WithTracer(tp.Tracer())),
	}, nil
}

// Close flushes traces and closes the database.
func (s *services) Close(ctx context.Context) error {
	return errors.Join(s.tracing.Shutdown(ctx), s.db.Close())
}

// identityFor returns the configured identity with JASREG_* overrides.
func identityFor(c config.Config) (registration.Identity, error) {
	return session.IdentityFromEnv(registration.Identity{
		DisplayName: c.Identity.DisplayName,
		Email:       c.Identity.Email,
		UniqueID:    c.Identity.UniqueID,
	})
}

func conferenceFor(c config.Config) pass.Conference {
	return pass.Conference{
		Name:     c.Conference.Name,
		Subtitle: c.Conference.Subtitle,
		Dates:    c.Conference.Dates,
		Venue:    c.Conference.Venue,
	}
}
