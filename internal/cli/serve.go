package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/afterglow/internal/config"
	httpadapter "github.com/aretw0/afterglow/pkg/adapters/http"
	redisadapter "github.com/aretw0/afterglow/pkg/adapters/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	backend "github.com/redis/go-redis/v9"
)

const shutdownTimeout = 5 * time.Second

// Serve runs the HTTP adapter and, when configured, the Redis transport until
// ctx is cancelled or a component fails.
func Serve(ctx context.Context, cfg config.Config, dir string, logger *slog.Logger) error {
	catalog, err := LoadCatalog(ctx, cfg, dir)
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}
	logger.Info("layout loaded", "catalog", Describe(catalog))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	tracker, _ := NewTracker(cfg, catalog, logger, reg)

	httpOpts := []httpadapter.Option{httpadapter.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		httpOpts = append(httpOpts, httpadapter.WithMetrics(reg))
	}
	api, err := httpadapter.NewServer(tracker, httpOpts...)
	if err != nil {
		return err
	}
	defer api.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errs := make(chan error, 2)

	if cfg.Redis.Addr != "" {
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis unreachable at %s: %w", cfg.Redis.Addr, err)
		}

		publisher := redisadapter.NewPublisher(client,
			redisadapter.WithChannel(cfg.Redis.NotifyChannel),
			redisadapter.WithLogger(logger),
		)
		go func() {
			_ = publisher.Run(ctx)
		}()
		defer tracker.Observe(publisher.Hooks())()

		subscriber := redisadapter.NewSubscriber(client, tracker,
			redisadapter.WithChannel(cfg.Redis.EventsChannel),
			redisadapter.WithLogger(logger),
		)
		go func() {
			errs <- subscriber.Run(ctx)
		}()
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Starting Afterglow Server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
			return
		}
		errs <- nil
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errs:
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
		_ = srv.Close()
	}
	logger.Info("Afterglow Server stopped")
	return runErr
}
