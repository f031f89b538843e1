// Package main provides the entry point for microspring-server.
//
// The server provides:
//
//   - A sequential HTTP listener for registered GET routes and static files
//   - An optional side listener with /health, /routes and /metrics
//
// Usage:
//
//	microspring-server [flags] [web-root]
//	microspring-server serve --config /path/to/microspring.yaml
//	microspring-server routes -o json
//	microspring-server version
//
// Without a web root the bundled demo site is served.
package main
