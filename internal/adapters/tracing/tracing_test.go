package tracing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/andrescamacho/homestead-go/internal/adapters/tracing"
	farmQueries "github.com/andrescamacho/homestead-go/internal/application/farm/queries"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
)

func recordingProvider() (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)), recorder
}

func TestMiddleware_RecordsSpan(t *testing.T) {
	provider, recorder := recordingProvider()
	mw := tracing.Middleware(provider)

	_, err := mw(context.Background(), &farmQueries.GetFarmQuery{FarmID: 7},
		func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
			return &farmQueries.GetFarmResponse{}, nil
		})

	require.NoError(t, err)
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GetFarmQuery", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.Int("farm.id", 7))
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestMiddleware_RecordsError(t *testing.T) {
	provider, recorder := recordingProvider()
	mw := tracing.Middleware(provider)

	_, err := mw(context.Background(), &farmQueries.GetFarmQuery{FarmID: 1},
		func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
			return nil, errors.New("farm not found")
		})

	require.Error(t, err)
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "farm not found", spans[0].Status().Description)
}

type stubHandler struct{}

func (stubHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return &farmQueries.GetFarmResponse{}, nil
}

func TestMiddleware_WrapsMediatorSend(t *testing.T) {
	provider, recorder := recordingProvider()
	med := mediator.NewMediator()
	med.RegisterMiddleware(tracing.Middleware(provider))

	require.NoError(t, mediator.RegisterHandler[*farmQueries.GetFarmQuery](med, stubHandler{}))

	_, err := med.Send(context.Background(), &farmQueries.GetFarmQuery{FarmID: 1})
	require.NoError(t, err)
	assert.Len(t, recorder.Ended(), 1)
}

func TestSetup_NoopWhenDisabled(t *testing.T) {
	shutdown, err := tracing.Setup(context.Background(), config.TracingConfig{Endpoint: "http://localhost:4318"})

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_CreatesProvider(t *testing.T) {
	// non-routable address: nothing is exported
	shutdown, err := tracing.Setup(context.Background(), config.TracingConfig{
		Enabled:     true,
		Endpoint:    "http://192.0.2.1:4318",
		ServiceName: "homestead-test",
	})

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
