package pass

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jasicon/jasreg/internal/log"
)

// ErrWrite is returned when the finished PDF cannot be saved.
var ErrWrite = errors.New("failed to write pass")

// Exporter turns a Document into a PDF file in its export directory.
type Exporter struct {
	dir       string
	ratio     float64
	fs        afero.Fs
	rasterize func(Document, float64) (image.Image, error)
	embed     func(image.Image) ([]byte, error)
	tracer    trace.Tracer
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithFs sets the filesystem the PDF is written to.
func WithFs(fs afero.Fs) ExporterOption {
	return func(e *Exporter) { e.fs = fs }
}

// WithRasterizer replaces the rasterize step.
func WithRasterizer(fn func(Document, float64) (image.Image, error)) ExporterOption {
	return func(e *Exporter) { e.rasterize = fn }
}

// WithEmbedder replaces the embed step.
func WithEmbedder(fn func(image.Image) ([]byte, error)) ExporterOption {
	return func(e *Exporter) { e.embed = fn }
}

// WithTracer records a span per export.
func WithTracer(t trace.Tracer) ExporterOption {
	return func(e *Exporter) {
		if t != nil {
			e.tracer = t
		}
	}
}

// NewExporter creates an exporter writing into dir. A non-positive ratio
// falls back to DefaultPixelRatio.
func NewExporter(dir string, pixelRatio float64, opts ...ExporterOption) *Exporter {
	if pixelRatio <= 0 {
		pixelRatio = DefaultPixelRatio
	}
	e := &Exporter{
		dir:       dir,
		ratio:     pixelRatio,
		fs:        afero.NewOsFs(),
		rasterize: Rasterize,
		embed:     Embed,
		tracer:    noop.NewTracerProvider().Tracer("pass"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dir returns the export directory.
func (e *Exporter) Dir() string { return e.dir }

// Export rasterizes doc, embeds it in a PDF and writes it to
// Dir()/FileName(doc.DelegateID). It returns the written path.
func (e *Exporter) Export(ctx context.Context, doc Document) (string, error) {
	_, span := e.tracer.Start(ctx, "pass.export",
		trace.WithAttributes(attribute.String("registration.delegate_id", doc.DelegateID)))
	defer span.End()

	path, err := e.export(ctx, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatExport, "Pass export failed", err, "delegate_id", doc.DelegateID)
		return "", err
	}
	span.SetAttributes(attribute.String("pass.path", path))
	log.Info(log.CatExport, "Pass exported", "path", path)
	return path, nil
}

func (e *Exporter) export(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	img, err := e.rasterize(doc, e.ratio)
	if err != nil {
		return "", wrapStep(ErrRasterize, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := e.embed(img)
	if err != nil {
		return "", wrapStep(ErrEmbed, err)
	}

	if err := e.fs.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}
	path := filepath.Join(e.dir, FileName(doc.DelegateID))
	if err := afero.WriteFile(e.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return path, nil
}

// wrapStep tags err with the step sentinel unless it already carries it.
func wrapStep(sentinel, err error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
