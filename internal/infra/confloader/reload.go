package confloader

import (
	"github.com/yndnr/microspring-go/internal/telemetry/logger"
)

// LevelReloader returns a Watcher callback that re-reads log.level from the
// changed file and passes it to apply. Other keys need a restart. An empty or
// unreadable level leaves the current level in place.
func LevelReloader(apply func(level string) error, log logger.Logger) func(path string) {
	return func(path string) {
		l := NewLoader()
		if err := l.LoadFile(path); err != nil {
			log.Warn("config reload failed", "file", path, "error", err)
			return
		}
		level := l.GetString("log.level")
		if level == "" {
			return
		}
		if err := apply(level); err != nil {
			log.Warn("config reload rejected", "file", path, "log_level", level, "error", err)
			return
		}
		log.Info("log level reloaded", "file", path, "log_level", level)
	}
}
