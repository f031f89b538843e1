// Package logger provides structured logging for MicroSpring.
//
// This package wraps log/slog:
//
//   - logger.go: Logger interface, handler selection, dynamic level
//   - context.go: Context-aware logging with request IDs
//   - redact.go: Sensitive data redaction
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering, adjustable at runtime
//   - Redaction of values whose key suggests a secret
//   - Per-connection request ID propagation
package logger
