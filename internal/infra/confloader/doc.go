// Package confloader loads MicroSpring configuration.
//
// koanf merges the sources below into one tree, later sources overriding
// earlier ones, and unmarshals it into config.ServerConfig:
//
//  1. Default values (the target struct as passed in)
//  2. YAML configuration file
//  3. MICROSPRING_* environment variables and the bare PORT variable
//  4. Command-line flags, loaded via LoadMap
//
// A Watcher reports writes to the configuration file; LevelReloader turns
// those into runtime log level changes.
package confloader
