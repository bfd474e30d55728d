package cmd

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jasicon/jasreg/internal/config"
	"github.com/jasicon/jasreg/internal/log"
	"github.com/jasicon/jasreg/internal/pass"
	"github.com/jasicon/jasreg/internal/presentation"
	"github.com/jasicon/jasreg/internal/registration"
	"github.com/jasicon/jasreg/internal/session"
)

var (
	passOutDir string
	passAll    bool
)

var passCmd = &cobra.Command{
	Use:   "pass",
	Short: "Work with registration passes",
}

var passExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save registration passes as PDF",
	Long: `Save the signed-in delegate's pass as a PDF, or every stored pass with --all.

Results are printed as JSON. With --all a failed pass does not stop the others;
the command exits non-zero when any pass failed.

Examples:
  jasreg pass export
  jasreg pass export --out ./passes --all`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c := cfg
		if passOutDir != "" {
			c.Export.Dir = config.ExpandHome(passOutDir)
		}
		svc, err := openServices(cmd.Context(), c)
		if err != nil {
			return err
		}
		defer func() { _ = svc.Close(context.Background()) }()

		regs, err := passesToExport(cmd.Context(), svc)
		if err != nil {
			return err
		}
		addOns, err := svc.catalog.Load(cmd.Context())
		if err != nil {
			return err
		}

		results, err := exportPasses(cmd.Context(), svc.exporter, regs, addOns, conferenceFor(c))
		if fmtErr := presentation.NewFormatter(cmd.OutOrStdout()).FormatExports(results); fmtErr != nil {
			return fmtErr
		}
		return err
	},
}

func init() {
	passExportCmd.Flags().StringVarP(&passOutDir, "out", "o", "", "directory to write PDFs to (default: export.dir)")
	passExportCmd.Flags().BoolVar(&passAll, "all", false, "export every stored registration")
	passCmd.AddCommand(passExportCmd)
	rootCmd.AddCommand(passCmd)
}

func passesToExport(ctx context.Context, svc *services) ([]registration.Confirmed, error) {
	if passAll {
		return svc.db.Registrations().List(ctx)
	}
	id, err := svc.sessions.Current(ctx)
	if errors.Is(err, session.ErrNoIdentity) {
		return nil, errors.New("not signed in: run `jasreg login` or use --all")
	}
	if err != nil {
		return nil, err
	}
	if !id.Registered() {
		return nil, fmt.Errorf("%s has no confirmed registration", id.UniqueID)
	}
	return []registration.Confirmed{*id.Details}, nil
}

type passExporter interface {
	Export(ctx context.Context, doc pass.Document) (string, error)
}

// exportPasses writes one PDF per registration, a few at a time. Every
// registration gets a result; the returned error counts the failures.
// Registrations whose delegate ids collide would write the same file, so
// none of them is exported.
func exportPasses(ctx context.Context, e passExporter, regs []registration.Confirmed,
	addOns registration.Catalog, conf pass.Conference) ([]presentation.ExportDTO, error) {
	results := make([]presentation.ExportDTO, len(regs))
	docs := make([]pass.Document, len(regs))
	owners := make(map[string][]string, len(regs))
	for i, c := range regs {
		docs[i] = pass.Build(c, addOns, conf)
		results[i] = presentation.ExportDTO{UniqueID: c.UniqueID, DelegateID: docs[i].DelegateID}
		owners[docs[i].DelegateID] = append(owners[docs[i].DelegateID], c.UniqueID)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range regs {
		if shared := owners[docs[i].DelegateID]; len(shared) > 1 {
			results[i].Error = fmt.Sprintf("delegate id %s is shared by %s; export each pass to its own --out directory",
				docs[i].DelegateID, strings.Join(shared, ", "))
			log.Warn(log.CatExport, "Skipping colliding pass", "delegate_id", docs[i].DelegateID, "unique_id", results[i].UniqueID)
			continue
		}
		g.Go(func() error {
			path, err := e.Export(gctx, docs[i])
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Path = path
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("%d of %d passes failed", failed, len(results))
	}
	return results, nil
}
