// Package pkglog sets up the process-wide slog logger.
//
// Records are JSON with stable keys (ts, severity, file) and carry the
// service name plus the request correlation id when the context has one.
package pkglog
