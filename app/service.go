package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/queuesim/api"
	"github.com/kilianp07/queuesim/config"
	"github.com/kilianp07/queuesim/core/dispatch"
	coremetrics "github.com/kilianp07/queuesim/core/metrics"
	"github.com/kilianp07/queuesim/infra/logger"
	"github.com/kilianp07/queuesim/infra/metrics"
	"github.com/kilianp07/queuesim/internal/eventbus"
)

// Service wires the simulation engine, metrics sinks, event bus and HTTP
// surface together and supervises their lifetimes.
type Service struct {
	Engine      *dispatch.Engine
	bus         *eventbus.Bus
	log         logger.Logger
	httpAddr    string
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.SetLevel(cfg.Logging.Level)
	logg := logger.NewWithBackend(cfg.Logging.Backend, "service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	engine, err := dispatch.NewEngine(cfg.Simulation, logger.NewWithBackend(cfg.Logging.Backend, "engine"), sink, bus)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	return &Service{
		Engine:      engine,
		bus:         bus,
		log:         logg,
		httpAddr:    cfg.HTTP.Addr,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Run starts the engine, the event log and the HTTP servers, and blocks
// until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	go s.Engine.Run(ctx)
	go s.logEvents(ctx)
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort, s.log); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.httpAddr, Handler: api.NewServer(s.Engine, s.log)}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}()
	s.log.Infof("dashboard listening on %s", s.httpAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// logEvents drains the event bus at debug level.
func (s *Service) logEvents(ctx context.Context) {
	sub := s.bus.Subscribe()
	defer s.bus.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			s.log.Debugw("simulation event", map[string]any{"event": fmt.Sprintf("%T", ev), "data": ev})
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return nil
}
