// Package tracing wraps OpenTelemetry so the runtime can open one span per
// processed step without importing the SDK directly.
package tracing
