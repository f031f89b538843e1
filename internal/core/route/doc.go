// Package route provides the route table and handler invocation for MicroSpring.
//
// A route binds a (method, path) pair to a handler function and an ordered
// list of parameter specifications. Handlers receive their arguments as plain
// strings resolved from the request query by parameter name:
//
//   - table.go: Route table (exact-string match, last registration wins)
//   - invoke.go: Parameter binding and fault isolation
//   - errors.go: Registration and invocation errors
//
// Routes are registered once during startup. The table performs no locking
// and must not be mutated once the server starts accepting connections.
package route
