package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RunServer serves prometheus metrics, pprof, version and ping endpoints on addr until ctx is done.
// An empty addr disables the server; RunServer then waits for ctx so it can sit in a goroutine group.
func RunServer(ctx context.Context, addr, version string) error {
	if addr == "" {
		slog.Debug("metrics server disabled")
		<-ctx.Done()
		return nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}
	return Serve(ctx, ln, version)
}

// Handler returns the mux served by RunServer, wrapped for tracing.
func Handler(version string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%s\n", version) // nolint:errcheck
	})
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, "OK")
	})
	return otelhttp.NewHandler(mux, "metrics")
}

// Serve runs the metrics server on ln until ctx is done. ln is closed on return.
func Serve(ctx context.Context, ln net.Listener, version string) error {
	srv := &http.Server{
		Handler:      Handler(version),
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down metrics server", "err", err)
		}
	}()

	slog.Info("metrics server listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
