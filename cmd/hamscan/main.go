// Command hamscan reports all pairs of 64-bit fingerprints in a file whose
// Hamming distance is at most a threshold.
//
// Usage:
//
//	hamscan -f <FILE> [-d <MAXDISTANCE>] [flags]
//
// The input holds one hexadecimal value per line, optionally prefixed with
// 0x and optionally gzip, zstd or lz4 compressed. FILE can be a local path,
// s3://bucket/key or minio://endpoint/bucket/key.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hupe1980/hamscan"
	"github.com/hupe1980/hamscan/dataset"
	"github.com/hupe1980/hamscan/distance"
	hamprom "github.com/hupe1980/hamscan/metrics/prometheus"
	"github.com/hupe1980/hamscan/partition"
	"github.com/hupe1980/hamscan/resource"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	exitOK    = 0
	exitError = 1
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		newLogger("text", slog.LevelInfo, stderr).Error("invalid configuration", "error", err)
		return exitError
	}

	level, err := hamscan.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	logger := newLogger(cfg.LogFormat, level, stderr)

	if cfg.Source == "" {
		logger.Info("Nothing to do")
		return exitOK
	}

	src, err := parseSource(cfg.Source)
	if err != nil {
		logger.Error("invalid source", "error", err)
		return exitError
	}

	mode, err := partition.ParseMode(cfg.Mode)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return exitError
	}
	kernel, err := distance.ParseKernel(cfg.Kernel)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return exitError
	}

	opts := []hamscan.Option{
		hamscan.WithLogger(logger),
		hamscan.WithWorkers(cfg.Workers),
		hamscan.WithPartitionMode(mode),
		hamscan.WithAdjacency(cfg.Adjacency),
		hamscan.WithStrict(cfg.Strict),
		hamscan.WithKernel(kernel),
		hamscan.WithReportInterval(cfg.ReportEvery),
		hamscan.WithReportMinInterval(cfg.ReportMinInterval),
		hamscan.WithBucketWidth(cfg.BucketWidth),
		hamscan.WithResourceController(resource.NewController(resource.Config{
			MemoryLimitBytes: cfg.MemoryLimit,
			ReadBytesPerSec:  cfg.ReadLimit,
		})),
	}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		collector, err := hamprom.New(reg)
		if err != nil {
			logger.Error("register metrics", "error", err)
			return exitError
		}
		opts = append(opts, hamscan.WithMetricsCollector(collector))

		shutdown := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer shutdown()
	}

	scanner, err := hamscan.New(cfg.MaxDistance, opts...)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return exitError
	}

	store, err := openStore(ctx, src)
	if err != nil {
		logger.Error("open source", "source", src.String(), "error", err)
		return exitError
	}

	res, err := scanner.ScanSource(ctx, store, src.Key)
	if err != nil {
		var ioErr *hamscan.ErrIO
		if errors.As(err, &ioErr) {
			// Already logged by the loader. An unreadable input is not fatal.
			return exitOK
		}
		var pe *dataset.ErrParse
		var rt *dataset.ErrRoundTrip
		if !errors.As(err, &pe) && !errors.As(err, &rt) {
			logger.Error("scan failed", "error", err)
		}
		return exitError
	}

	if !res.Complete() && !res.Skipped {
		logger.Warn("scan did not compare every pair",
			"mode", res.Mode.String(),
			"compared", res.Pairs,
			"dropped", len(res.Dropped),
		)
	}
	return exitOK
}

func newLogger(format string, level slog.Level, w io.Writer) *hamscan.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return hamscan.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return hamscan.NewLogger(slog.NewTextHandler(w, opts))
}

// serveMetrics exposes reg on addr and returns a function that stops the
// server.
func serveMetrics(addr string, reg *prometheus.Registry, logger *hamscan.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
