package command

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/microspring-go/internal/infra/confloader"
	"github.com/yndnr/microspring-go/internal/infra/shutdown"
	"github.com/yndnr/microspring-go/internal/server/config"
	"github.com/yndnr/microspring-go/internal/telemetry/logger"
)

// shutdownTimeout bounds the time given to in-flight work on exit.
const shutdownTimeout = 10 * time.Second

// ServeCommand returns the serve command.
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "Run the web server (default command)",
		ArgsUsage: "[web-root]",
		Flags:     serveFlags(),
		Action:    serveAction,
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to YAML configuration file",
			EnvVars: []string{"MICROSPRING_CONFIG"},
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Listening port (default 35000, or $PORT)",
		},
		&cli.StringFlag{
			Name:    "web-root",
			Aliases: []string{"w"},
			Usage:   "Directory served as static files (default: bundled site)",
		},
		&cli.StringFlag{
			Name:  "metrics-addr",
			Usage: "Address for the /metrics and /health side listener (default: disabled)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
	}
}

// flagOverrides maps explicitly set flags onto config keys. A positional
// argument names the web root when --web-root is not given.
func flagOverrides(c *cli.Context) map[string]any {
	m := make(map[string]any)
	if c.IsSet("port") {
		m["server.port"] = c.Int("port")
	}
	if c.IsSet("web-root") {
		m["static.dir"] = c.String("web-root")
	} else if c.Args().Present() {
		m["static.dir"] = c.Args().First()
	}
	if c.IsSet("metrics-addr") {
		m["metrics.addr"] = c.String("metrics-addr")
	}
	if c.IsSet("log-level") {
		m["log.level"] = c.String("log-level")
	}
	return m
}

// loadConfig builds the effective configuration: defaults, file, env, flags.
func loadConfig(configFile string, flags map[string]any) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{confloader.WithEnvAlias("PORT", "server.port")}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}
	loader := confloader.NewLoader(opts...)

	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if len(flags) > 0 {
		if err := loader.LoadMap(flags); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	if err := config.ResolvePaths(cfg, ""); err != nil {
		return nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func serveAction(c *cli.Context) error {
	configFile := c.String("config")
	cfg, err := loadConfig(configFile, flagOverrides(c))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	st, err := newStack(cfg, log)
	if err != nil {
		return err
	}

	sh := shutdown.NewHandler(shutdownTimeout, shutdown.WithLogger(log))
	if err := st.start(sh); err != nil {
		log.Error("server did not start", "error", err)
		return err
	}

	if configFile != "" {
		w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
		if err != nil {
			log.Warn("config watcher unavailable", "error", err)
		} else if err := w.Watch(configFile); err != nil {
			_ = w.Stop()
		} else {
			w.OnChange(confloader.LevelReloader(logger.SetLevel, log))
			w.StartAsync()
			sh.OnShutdown("config watcher", func(ctx context.Context) error {
				return w.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := sh.Wait(c.Context); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
