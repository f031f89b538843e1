package command

import (
	"context"
	"io/fs"
	"os"

	"github.com/yndnr/microspring-go/internal/controller"
	"github.com/yndnr/microspring-go/internal/core/route"
	"github.com/yndnr/microspring-go/internal/core/static"
	"github.com/yndnr/microspring-go/internal/infra/shutdown"
	"github.com/yndnr/microspring-go/internal/server/config"
	"github.com/yndnr/microspring-go/internal/server/httpserver"
	"github.com/yndnr/microspring-go/internal/server/webserver"
	"github.com/yndnr/microspring-go/internal/telemetry/logger"
	"github.com/yndnr/microspring-go/internal/telemetry/metric"
)

// stack is the assembled server: route table, file resolver, web server
// and the optional side listener.
type stack struct {
	cfg     *config.ServerConfig
	log     logger.Logger
	routes  *route.Table
	files   *static.Resolver
	metrics *metric.Registry
	web     *webserver.Server
	side    *httpserver.Server
}

// siteFS returns the file system and label for the configured web root.
func siteFS(dir string) (fs.FS, string) {
	if dir == "" {
		return static.DefaultSite(), static.DefaultWebRoot
	}
	return os.DirFS(dir), dir
}

func newStack(cfg *config.ServerConfig, log logger.Logger) (*stack, error) {
	routes, err := controller.DefaultTable()
	if err != nil {
		return nil, err
	}

	reg := metric.NewRegistry()
	reg.MustRegister(metric.NewCollector(routes.Len))

	fsys, webRoot := siteFS(cfg.Static.Dir)
	files := static.NewResolver(fsys, webRoot,
		static.WithCacheMaxBytes(cfg.Static.CacheMaxBytes),
		static.WithObserver(reg),
	)

	d := webserver.NewDispatcher(routes, files,
		webserver.WithObserver(reg),
		webserver.WithMaxLineBytes(cfg.Server.MaxLineBytes),
	)
	web := webserver.New(&webserver.Config{
		Addr:         cfg.Server.Addr(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, d, log.With("component", "webserver"))

	st := &stack{
		cfg:     cfg,
		log:     log,
		routes:  routes,
		files:   files,
		metrics: reg,
		web:     web,
	}

	if cfg.Metrics.Addr != "" {
		st.side = httpserver.New(cfg.Metrics.Addr, httpserver.NewRouter(&httpserver.RouterConfig{
			Metrics:   reg.Handler(),
			Routes:    routes,
			RateLimit: cfg.Metrics.RateLimit,
			Logger:    log.With("component", "httpserver"),
		}))
	}
	return st, nil
}

// start binds both listeners, launches their loops and registers their
// shutdown hooks. A listener that stops on its own triggers shutdown.
func (st *stack) start(sh *shutdown.Handler) error {
	if err := st.web.Listen(); err != nil {
		return err
	}
	if st.side != nil {
		if err := st.side.Listen(); err != nil {
			_ = st.web.Shutdown(context.Background())
			return err
		}
	}

	st.log.Info("starting microspring-server", config.LogAttrs(st.cfg)...)
	st.logRoutes()

	go func() {
		if err := st.web.Serve(context.Background()); err != nil {
			st.log.Error("web server error", "error", err)
		}
		sh.Trigger()
	}()
	sh.OnShutdown("web server", st.web.Shutdown)

	if st.side != nil {
		go func() {
			st.log.Info("side listener started", "address", st.side.Addr().String())
			if err := st.side.Serve(); err != nil {
				st.log.Error("side listener error", "error", err)
				sh.Trigger()
			}
		}()
		sh.OnShutdown("side listener", st.side.Shutdown)
	}
	return nil
}

func (st *stack) logRoutes() {
	for _, r := range st.routes.Routes() {
		st.log.Debug("route registered", "method", string(r.Method), "path", r.Path)
	}
	st.log.Info("routes registered", "count", st.routes.Len(), "web_root", st.files.WebRoot())
}
