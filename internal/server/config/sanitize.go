package config

// LogAttrs renders the effective configuration as key/value pairs for the
// startup log line. Nothing in the config is secret today; new secret fields
// must be masked here.
func LogAttrs(cfg *ServerConfig) []any {
	webRoot := cfg.Static.Dir
	if webRoot == "" {
		webRoot = "(bundled)"
	}
	metrics := cfg.Metrics.Addr
	if metrics == "" {
		metrics = "(disabled)"
	}
	return []any{
		"addr", cfg.Server.Addr(),
		"read_timeout", cfg.Server.ReadTimeout,
		"write_timeout", cfg.Server.WriteTimeout,
		"max_line_bytes", cfg.Server.MaxLineBytes,
		"web_root", webRoot,
		"cache_max_bytes", cfg.Static.CacheMaxBytes,
		"metrics_addr", metrics,
		"metrics_rate_limit", cfg.Metrics.RateLimit,
		"log_level", cfg.Log.Level,
		"log_format", cfg.Log.Format,
	}
}
