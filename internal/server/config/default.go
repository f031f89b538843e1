package config

// Default configuration values.
const (
	DefaultHost         = "0.0.0.0"
	DefaultPort         = 35000
	DefaultMaxLineBytes = 8 * 1024

	DefaultCacheMaxBytes = 1024 * 1024

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Host:         DefaultHost,
			Port:         DefaultPort,
			MaxLineBytes: DefaultMaxLineBytes,
		},
		Static: StaticSection{
			CacheMaxBytes: DefaultCacheMaxBytes,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
