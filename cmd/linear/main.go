// Spins up the linear server, serving named lists over the Redis protocol.

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/nobletooth/linear/pkg/config"
	"github.com/nobletooth/linear/pkg/port"
	"github.com/nobletooth/linear/pkg/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	printVersion   = flag.Bool("print_version", false, "Print the version and exit.")
	metricsAddress = flag.String("metrics_address", "", "The ip:port serving Prometheus metrics on /metrics; empty disables it.")
)

// serveMetrics exposes the default Prometheus registry until `ctx` is cancelled.
func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	slog.Info("Serving metrics.", "address", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics server stopped.", "error", err)
	}
}

func main() {
	config.InitFlags()
	utils.InitLogging()

	if *printVersion {
		slog.Info("Linear build info.", "version", utils.Version, "commit", utils.Commit, "build", utils.BuildTime)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if *metricsAddress != "" {
		go serveMetrics(ctx, *metricsAddress)
	}

	store := port.NewListStore()
	if err := port.RunRedisServer(ctx, store); err != nil {
		slog.Error("Linear server stopped.", "err", err)
		os.Exit(1)
	}
	slog.Info("Linear server stopped.", "uptime", time.Since(utils.StartTime))
}
