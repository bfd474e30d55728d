package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jasicon/jasreg/internal/app"
	"github.com/jasicon/jasreg/internal/config"
	"github.com/jasicon/jasreg/internal/log"
	"github.com/jasicon/jasreg/internal/ui/landing"
	"github.com/jasicon/jasreg/internal/ui/slideshow"
	"github.com/jasicon/jasreg/internal/validate"
	"github.com/jasicon/jasreg/internal/watcher"
)

func runApp(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	svc, err := openServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := svc.Close(context.Background()); closeErr != nil {
			log.ErrorErr(log.CatDB, "Closing services failed", closeErr)
		}
	}()

	changes, stopWatch := watchCatalog(cfg.Catalog)
	defer stopWatch()

	startsAt, err := cfg.Conference.StartTime()
	if err != nil {
		return err
	}

	model := app.New(ctx, app.Services{
		Identities:     svc.sessions,
		Persister:      svc.sessions,
		Catalog:        svc.catalog,
		Exporter:       svc.exporter,
		Validator:      validate.New(validate.Options{Strict: cfg.Validation.Strict}),
		Tracer:         svc.tracing.Tracer(),
		Conference:     conferenceFor(cfg),
		Landing:        landingConfig(cfg, startsAt),
		CatalogChanges: changes,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// watchCatalog starts a watcher on the catalog file when hot reload is on.
// The returned channel is nil when nothing is watched.
func watchCatalog(c config.CatalogConfig) (<-chan struct{}, func()) {
	noop := func() {}
	if !c.Watch || c.Path == "" {
		return nil, noop
	}
	w, err := watcher.New(watcher.DefaultConfig(c.Path))
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Catalog watcher unavailable", err, "path", c.Path)
		return nil, noop
	}
	changes, err := w.Start()
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Catalog watcher failed to start", err, "path", c.Path)
		return nil, noop
	}
	return changes, func() {
		if err := w.Stop(); err != nil {
			log.ErrorErr(log.CatWatcher, "Stopping catalog watcher failed", err)
		}
	}
}

func landingConfig(c config.Config, startsAt time.Time) landing.Config {
	slides := make([]slideshow.Slide, len(c.UI.Slides))
	for i, s := range c.UI.Slides {
		slides[i] = slideshow.Slide{Title: s.Title, Caption: s.Caption}
	}
	return landing.Config{
		Name:          c.Conference.Name,
		Subtitle:      c.Conference.Subtitle,
		Dates:         c.Conference.Dates,
		Venue:         c.Conference.Venue,
		Notice:        c.Conference.Notice,
		MarkdownStyle: c.UI.MarkdownStyle,
		StartsAt:      startsAt,
		Slides:        slides,
	}
}
