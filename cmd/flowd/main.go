package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	app "github.com/kode4food/flowcomm"
	"github.com/kode4food/flowcomm/internal/config"
	"github.com/kode4food/flowcomm/internal/events"
	"github.com/kode4food/flowcomm/internal/server"
	"github.com/kode4food/flowcomm/pkg/flow"
	"github.com/kode4food/flowcomm/pkg/log"
)

type flowd struct {
	cfg        *config.Config
	registry   *flow.Registry
	hub        *events.Hub
	apiServer  *server.Server
	httpServer *http.Server
	quit       chan os.Signal
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func main() {
	cfg := config.NewDefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		slog.Error("Invalid configuration", log.Error(err))
		os.Exit(1)
	}

	s := &flowd{
		cfg:  cfg,
		quit: make(chan os.Signal, 1),
	}
	s.setupLogging()
	s.run()
}

func (s *flowd) run() {
	s.initializeRegistry()
	s.startServer()

	signal.Notify(s.quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(s.quit)
	<-s.quit

	s.shutdown()
}

func (s *flowd) setupLogging() {
	level, ok := logLevels[s.cfg.LogLevel]
	if !ok {
		level = slog.LevelInfo
	}

	env := os.Getenv("ENV")
	logger := log.NewWithLevel(app.Name, env, app.Version, level)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level)

	slog.Info("Flow service starting",
		slog.String("log_level", s.cfg.LogLevel))

	slog.Info("Configuration loaded",
		slog.String("api_host", s.cfg.APIHost),
		slog.Int("api_port", s.cfg.APIPort),
		slog.String("home_url", s.cfg.HomeURL),
		slog.Bool("flow_debug", s.cfg.FlowDebug))
}

func (s *flowd) initializeRegistry() {
	s.registry = flow.New(
		flow.WithNavigator(flow.NewHistory(s.cfg.HomeURL)),
		flow.WithLogger(slog.Default()),
		flow.WithDebug(s.cfg.FlowDebug),
	)
	s.hub = events.NewHub()
}

func (s *flowd) startServer() {
	s.apiServer = server.NewServer(s.registry, s.hub)
	mux := s.apiServer.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.APIHost, s.cfg.APIPort),
		Handler: mux,
	}

	go func() {
		slog.Info("HTTP server starting",
			slog.String("addr", s.httpServer.Addr))
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", log.Error(err))
			s.quit <- syscall.SIGTERM
		}
	}()
}

func (s *flowd) shutdown() {
	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(
		context.Background(), s.cfg.ShutdownTimeout,
	)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", log.Error(err))
	}

	s.apiServer.CloseWebSockets()
	s.hub.Close()

	slog.Info("Server exited")
}
