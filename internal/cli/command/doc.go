// Package command defines the microspring-server command line.
//
// It uses urfave/cli/v2:
//
//   - serve (default): run the web server until SIGINT/SIGTERM
//   - routes: print the built-in route table
//   - status: query a running server's side listener
//   - version: print build information
package command
