// Package webserver provides the raw-socket HTTP server for MicroSpring.
//
// This package implements the small HTTP/1.0-style subset the framework
// needs, directly on top of net.Listener (no net/http):
//
//   - wire.go: Request line / header parsing, query decoding, response writing
//   - dispatcher.go: Route match vs static file fallback for one connection
//   - server.go: Sequential accept loop and cooperative shutdown
//
// Connections are served strictly one at a time: a connection is fully read,
// dispatched and closed before the next one is accepted. Every response
// carries "Connection: close" and permissive CORS headers. Request bodies are
// never read.
package webserver
