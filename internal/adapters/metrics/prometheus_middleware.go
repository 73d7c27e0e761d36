package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
)

// PrometheusMiddleware creates a middleware that records command execution
// duration and success/failure counts. Request names drop the package prefix:
// "*commands.DispatchActionCommand" is recorded as "DispatchActionCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(logging.RequestName(request), time.Since(start).Seconds(), err == nil)

		return response, err
	}
}
