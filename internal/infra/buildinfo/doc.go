// Package buildinfo exposes build-time information for MicroSpring.
//
// Values are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/microspring-go/internal/infra/buildinfo.Version=v1.0.0"
//
// When no ldflags are given, Version and GoVersion fall back to what the Go
// toolchain recorded in the binary.
package buildinfo
