// Command idgen starts an id actor, requests a few ids from it and logs them.
// With IDGEN_NATS_URL set it also serves ids over NATS, and with
// IDGEN_METRICS_ADDR it exposes Prometheus metrics, until interrupted.
//
// Run with: go run ./cmd/idgen [-config idgen.yaml]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/codewandler/idgen-go/adapters/nats"
	promadapter "github.com/codewandler/idgen-go/adapters/prometheus"
	"github.com/codewandler/idgen-go/core/uid"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("invalid config", slog.Any("error", err))
		os.Exit(2)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.level()}))
	slog.SetDefault(log)

	if err := run(ctx, log, cfg); err != nil {
		log.Error("idgen failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, cfg *Config) error {
	reg := prometheus.NewRegistry()

	h := uid.New(uid.Options{
		Capacity: cfg.Capacity,
		Context:  ctx,
		Logger:   log,
		Metrics:  promadapter.NewActorMetrics(reg),
	})
	defer h.Release()

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.MetricsAddr != "" {
		g.Go(func() error { return serveMetrics(gCtx, log, cfg.MetricsAddr, reg) })
	}

	if cfg.NATS.URL != "" {
		srv := nats.NewServer(nats.ServerConfig{
			Connect: nats.ConnectURL(cfg.NATS.URL),
			Log:     log,
			Subject: cfg.NATS.Subject,
			Queue:   cfg.NATS.Queue,
		}, h)
		g.Go(func() error { return srv.Serve(gCtx) })
	}

	for range cfg.Count {
		id, err := h.Next(ctx)
		if err != nil {
			return fmt.Errorf("get unique id: %w", err)
		}
		log.Info("unique id", slog.Uint64("id", uint64(id)))
	}

	if cfg.serving() {
		log.Info("press Ctrl+C to stop")
	}
	// without servers the group is empty and Wait returns at once
	return g.Wait()
}

func serveMetrics(ctx context.Context, log *slog.Logger, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics server starting", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
