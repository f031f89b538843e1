// Package connection provides the HTTP client the CLI uses to query a
// running server's side listener (/health, /routes).
package connection
