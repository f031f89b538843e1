package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStatic(&cfg.Static); err != nil {
		return err
	}
	if err := verifyMetrics(&cfg.Metrics); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

func verifyServer(cfg *ServerSection) error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return invalid("server.port %d out of range 0-65535", cfg.Port)
	}
	if cfg.ReadTimeout < 0 {
		return invalid("server.read_timeout must not be negative")
	}
	if cfg.WriteTimeout < 0 {
		return invalid("server.write_timeout must not be negative")
	}
	if cfg.MaxLineBytes <= 0 {
		return invalid("server.max_line_bytes must be positive")
	}
	return nil
}

func verifyStatic(cfg *StaticSection) error {
	if cfg.CacheMaxBytes <= 0 {
		return invalid("static.cache_max_bytes must be positive")
	}
	if cfg.Dir == "" {
		return nil
	}
	fi, err := os.Stat(cfg.Dir)
	if err != nil {
		return invalid("static.dir: %v", err)
	}
	if !fi.IsDir() {
		return invalid("static.dir %s is not a directory", cfg.Dir)
	}
	return nil
}

func verifyMetrics(cfg *MetricsSection) error {
	if cfg.RateLimit < 0 {
		return invalid("metrics.rate_limit %d is negative", cfg.RateLimit)
	}
	if cfg.Addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		return invalid("metrics.addr: %v", err)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log.level %q (want debug, info, warn or error)", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		return invalid("log.format %q (want json or text)", cfg.Format)
	}
	return nil
}

// ResolvePaths makes a relative static.dir absolute against base. An empty
// base means the working directory.
func ResolvePaths(cfg *ServerConfig, base string) error {
	if cfg.Static.Dir == "" || filepath.IsAbs(cfg.Static.Dir) {
		return nil
	}
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve static.dir: %w", err)
		}
		base = wd
	}
	cfg.Static.Dir = filepath.Join(base, cfg.Static.Dir)
	return nil
}
