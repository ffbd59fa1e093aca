package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/mlb-live-service/internal/config"
	httpserver "github.com/preston-bernstein/mlb-live-service/internal/http"
	"github.com/preston-bernstein/mlb-live-service/internal/http/handlers"
	"github.com/preston-bernstein/mlb-live-service/internal/http/middleware"
	"github.com/preston-bernstein/mlb-live-service/internal/logging"
	"github.com/preston-bernstein/mlb-live-service/internal/metrics"
	"github.com/preston-bernstein/mlb-live-service/internal/poller"
	"github.com/preston-bernstein/mlb-live-service/internal/providers"
	"github.com/preston-bernstein/mlb-live-service/internal/publish"
	"github.com/preston-bernstein/mlb-live-service/internal/refresh"
	"github.com/preston-bernstein/mlb-live-service/internal/resolver"
	"github.com/preston-bernstein/mlb-live-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	table         *store.Table
	publisher     publish.Publisher
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	refresher     Refresher
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured provider. It fails when the dataset cannot be loaded or created.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithProvider(ctx, cfg, logger, nil, nil)
}

// newServerWithProvider wires every component. A nil provider is built from cfg; a nil recorder comes from metrics setup.
func newServerWithProvider(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}

	comps := buildDataset(cfg)
	table, err := bootstrapTable(ctx, comps, provider, cfg.Season, logger)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(context.Background())
		}
		return nil, fmt.Errorf("bootstrap dataset: %w", err)
	}

	pub := buildPublisher(ctx, cfg, logger)
	plr := poller.New(table, resolver.New(provider, logger), comps.writer, logger, recorder, poller.Options{
		Interval:     cfg.PollInterval,
		Lead:         cfg.EligibilityLead,
		SettledAfter: cfg.SettledAfter,
		Publisher:    pub,
	})
	ref := refresh.New(provider, table, cfg.Season, cfg.ScheduleRefreshCron, logger)
	httpSrv := buildHTTPServer(cfg, table, logger, recorder, plr, ref)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		table:         table,
		publisher:     pub,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		refresher:     ref,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller, ref Refresher) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
		refresher:  ref,
		publisher:  publish.Nop{},
	}
}

func buildHTTPServer(cfg config.Config, table *store.Table, logger *slog.Logger, recorder *metrics.Recorder, plr Poller, ref Refresher) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(table, logger, statusFn)
	admin := handlers.NewAdminHandler(ref, plr, cfg.AdminToken, logger)
	router := httpserver.NewRouter(handler, admin)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	return netHTTPServer{srv: newOpsServer(cfg.Port, wrapped)}
}

// Run starts the poller, schedule refresher and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)
	if s.refresher != nil {
		if err := s.refresher.Start(ctx); err != nil {
			logging.Error(s.logger, "schedule refresh not started", err)
		}
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// gracefulShutdown stops intake first, then lets the poller finish its pass so the last persist lands.
func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.refresher != nil {
		if err := s.refresher.Stop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "schedule refresh stop failed", slog.Any("error", err))
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			logging.Warn(s.logger, "publisher close failed", slog.Any("error", err))
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", slog.Any("error", err))
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", slog.Any("error", err))
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", slog.Any("error", err))
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{srv: newOpsServer(recCfg.Port, handler)}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", slog.Any("error", err))
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Table exposes the in-memory dataset (useful for tests).
func (s *Server) Table() *store.Table {
	return s.table
}
