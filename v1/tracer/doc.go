// Package tracer provides distributed tracing for the bootstrap tool using
// OpenTelemetry.
//
// A bootstrap run produces a single short trace with one span per stage,
// giving a timeline of wait-for-ready, schema work, the count gate, the
// embedding merge, and the bulk load. Export is opt-in (TRACER_ENABLE_EXPORT)
// through OTLP/HTTP; without export, spans still exist so the logger can
// correlate entries via trace/span IDs.
package tracer
