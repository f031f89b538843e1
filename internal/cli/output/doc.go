// Package output formats command results for the terminal.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: Aligned text tables
//   - json.go: Indented JSON
//   - yaml.go: YAML via gopkg.in/yaml.v3
package output
