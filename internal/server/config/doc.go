// Package config defines the MicroSpring server configuration.
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Validation and path resolution
//   - sanitize.go: Rendering the effective config for the startup log
//
// Configuration is loaded via internal/infra/confloader from a YAML file,
// MICROSPRING_* environment variables, the bare PORT variable and CLI flags.
package config
