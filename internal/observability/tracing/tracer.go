// Package tracing provides OpenTelemetry tracing for HTTP requests:
// a shared tracer and server middleware that extracts and propagates
// W3C trace context.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the application's global tracer.
var tracer = otel.Tracer("technews")

// GetTracer returns the global tracer for creating spans.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
