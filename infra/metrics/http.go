package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/queuesim/infra/logger"
)

// promMux builds the exposition handler. The dashboard server owns the
// default mux, so the collectors get a mux of their own.
func promMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// StartPromServer exposes the Prometheus collectors on addr and blocks
// until the context is canceled.
func StartPromServer(ctx context.Context, addr string, log logger.Logger) error {
	srv := &http.Server{Addr: addr, Handler: promMux()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("prom server shutdown: %v", err)
		}
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
