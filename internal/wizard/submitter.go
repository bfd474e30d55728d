package wizard

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jasicon/jasreg/internal/log"
	"github.com/jasicon/jasreg/internal/registration"
)

// Persister is the external operation that stores a registration.
type Persister interface {
	CompleteRegistration(ctx context.Context, d registration.Draft) (registration.Confirmed, error)
}

// Submitter is the command the UI invokes once per confirm press. It never
// retries; calling Run again is the retry.
type Submitter struct {
	persister Persister
	tracer    trace.Tracer
}

// NewSubmitter wraps a persister. A nil tracer disables spans.
func NewSubmitter(p Persister, tracer trace.Tracer) Submitter {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("wizard")
	}
	return Submitter{persister: p, tracer: tracer}
}

// Run calls the persister exactly once.
func (s Submitter) Run(ctx context.Context, d registration.Draft) (registration.Confirmed, error) {
	ctx, span := s.tracer.Start(ctx, "registration.submit",
		trace.WithAttributes(
			attribute.String("registration.category", string(d.Category)),
			attribute.Int("registration.add_ons", len(d.SelectedAddOns)),
		))
	defer span.End()

	log.Info(log.CatWizard, "Submitting registration", "category", d.Category)
	c, err := s.persister.CompleteRegistration(ctx, d)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatWizard, "Registration failed", err)
		return registration.Confirmed{}, err
	}
	span.SetAttributes(attribute.String("registration.delegate_id", c.DelegateID))
	log.Info(log.CatWizard, "Registration confirmed", "delegate_id", c.DelegateID)
	return c, nil
}
