package application

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/field-console/internal/api"
	"github.com/eugenenazirov/field-console/internal/config"
	"github.com/eugenenazirov/field-console/internal/static"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	staticDir string
	handler   *api.Handler
	router    http.Handler
	logger    *zap.Logger
	server    *http.Server
	addr      string
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	staticDir, ok := ResolveStaticDir(cfg.StaticDir, logger)
	files := http.NotFoundHandler()
	if ok {
		files = static.NewHandler(staticDir)
	}

	handler := api.NewHandler(files)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		staticDir: staticDir,
		handler:   handler,
		router:    router,
		logger:    logger,
		server:    NewServer(cfg, router),
	}, nil
}

// ResolveStaticDir returns the absolute directory to serve. Relative paths are
// resolved against the working directory only. A missing directory is logged
// and still served, so every static request answers 404 until it appears. The
// boolean is false when the path exists but is not a directory; nothing should
// be served from it.
func ResolveStaticDir(dir string, logger *zap.Logger) (string, bool) {
	resolved := dir
	if !filepath.IsAbs(resolved) {
		wd, err := os.Getwd()
		if err != nil {
			logger.Warn("unable to determine working directory", zap.Error(err))
		} else {
			resolved = filepath.Join(wd, dir)
		}
	}

	info, err := os.Stat(resolved)
	switch {
	case err != nil:
		logger.Warn("static directory not found", zap.String("dir", resolved), zap.Error(err))
	case !info.IsDir():
		logger.Warn("static path is not a directory", zap.String("dir", resolved))
		return resolved, false
	}
	return resolved, true
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start binds the listening socket and serves in a goroutine. A bind failure
// (port already in use) is returned before anything is logged as started.
func (a *App) Start() error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.server.Addr, err)
	}
	a.addr = ln.Addr().String()

	a.logger.Info("server started",
		zap.String("addr", a.addr),
		zap.String("static_dir", a.staticDir),
	)

	go func() {
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Addr returns the bound listen address. It is empty until Start succeeds.
func (a *App) Addr() string {
	return a.addr
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Handler returns the fully wired root handler.
func (a *App) Handler() http.Handler {
	return a.router
}
