package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
)

const instrumentationName = "github.com/andrescamacho/homestead-go/internal/application/mediator"

type farmScoped interface {
	GetFarmID() int
}

// Middleware wraps every mediator request in a span named after the request.
// provider may be nil to use the global provider.
func Middleware(provider trace.TracerProvider) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		tp := provider
		if tp == nil {
			tp = otel.GetTracerProvider()
		}

		name := logging.RequestName(request)
		ctx, span := tp.Tracer(instrumentationName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
		defer span.End()

		span.SetAttributes(attribute.String("mediator.request", name))
		if scoped, ok := request.(farmScoped); ok {
			span.SetAttributes(attribute.Int("farm.id", scoped.GetFarmID()))
		}

		resp, err := next(ctx, request)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return resp, err
	}
}
