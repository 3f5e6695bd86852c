/*
Package tracing provides lightweight request tracing.

# Overview

Every HTTP request gets a span, and every backend command issued while
serving it gets a child span. The trace context travels to the disk backend
in request headers so backend logs can be joined with ours.

# Features

- Trace context propagation via HTTP headers
- Span creation and management with parent-child relationships
- Automatic trace ID generation
- Gin middleware for automatic instrumentation
- Structured logging integration
- Buffered, asynchronous span collection

# Usage

	// Create tracer
	tracer := tracing.New("godisk", logger)
	defer tracer.Close()

	// HTTP middleware
	router.Use(tracing.HTTPMiddleware(tracer))

	// Manual span creation
	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

	span.SetTag("key", "value")

	// Outgoing request headers
	headers := map[string]string{}
	tracing.InjectTraceContext(ctx, headers)

# Trace Format

Traces use standard HTTP headers for propagation:
- X-Trace-ID: Unique identifier for entire request flow
- X-Span-ID: Identifier for current operation
*/
package tracing
