package logging

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/homestead-go/internal/application/mediator"
)

// Middleware injects logger into the request context and logs every command
// with its outcome. Rejected game actions are logged as warnings, not errors.
func Middleware(logger GameLogger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		ctx = WithLogger(ctx, logger)
		name := RequestName(request)

		start := time.Now()
		response, err := next(ctx, request)
		elapsed := time.Since(start)

		if err != nil {
			logger.Log(LevelWarn, "request failed", map[string]interface{}{
				"request":     name,
				"error":       err.Error(),
				"duration_ms": elapsed.Milliseconds(),
			})
			return response, err
		}

		logger.Log(LevelDebug, "request handled", map[string]interface{}{
			"request":     name,
			"duration_ms": elapsed.Milliseconds(),
		})
		return response, nil
	}
}

// RequestName returns the bare type name of a request, e.g. "DispatchActionCommand"
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
