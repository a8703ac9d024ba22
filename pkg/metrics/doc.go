// Package metrics provides observability primitives for the photonica
// simulation library.
//
// The package includes:
//   - Structured logging with levels and text/JSON output
//   - A Tracer interface with a no-op default and an OpenTelemetry adapter
//     behind the "otel" build tag
//   - Atomic counters for simulation runs
//
// Key material is never passed to any facility in this package; callers log
// key lengths and error rates, not bits.
package metrics
