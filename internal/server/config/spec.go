package config

import (
	"net"
	"strconv"
	"time"
)

// ServerConfig is the root configuration for microspring-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Static  StaticSection  `koanf:"static"`
	Metrics MetricsSection `koanf:"metrics"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures the web server listener.
type ServerSection struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// ReadTimeout bounds reading a request head. Zero disables the deadline.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds writing a response. Zero disables the deadline.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// MaxLineBytes limits the request line and each header line.
	MaxLineBytes int `koanf:"max_line_bytes"`
}

// Addr returns the host:port listen address.
func (s ServerSection) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// StaticSection configures static file serving.
type StaticSection struct {
	// Dir is the web root directory. Empty serves the bundled site.
	Dir string `koanf:"dir"`

	// CacheMaxBytes is the exclusive size bound for cached files.
	CacheMaxBytes int `koanf:"cache_max_bytes"`
}

// MetricsSection configures the side listener.
type MetricsSection struct {
	// Addr is the side listener address. Empty disables it.
	Addr string `koanf:"addr"`

	// RateLimit caps side listener requests per second per client host.
	// Zero disables limiting.
	RateLimit int `koanf:"rate_limit"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
