// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// for callers of the reconciliation engine.
//
// The engine itself performs no I/O and records nothing; integrators and
// the bench runner wrap their diff/render cycles with Metrics and Tracer
// from here.
package telemetry
