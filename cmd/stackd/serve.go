package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mangohow/dynstack/internal/config"
	"github.com/mangohow/dynstack/internal/service"
	"github.com/mangohow/dynstack/internal/store"
	"github.com/mangohow/dynstack/llog"
	transport "github.com/mangohow/dynstack/transport/http"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	config.BindFlags(cmd.Flags())

	return cmd
}

func newServer(cfg *config.Config) *transport.Server {
	serverLog := logrus.New()
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		serverLog.SetLevel(level)
	}

	srv := transport.New(
		transport.WithAddr(cfg.Addr),
		transport.WithLogger(serverLog),
		transport.WithMiddleware(
			llog.LoggerInjectMiddleware(llog.RequestIdKeyName),
			llog.RequestLoggingMiddleware(),
		),
	)

	st := store.New(store.WithDefaultCapacity(cfg.Stack.DefaultCapacity))
	service.RegisterStackServiceHTTPServer(srv, service.NewStackService(st))
	srv.GET("/healthz", func(c *transport.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	return srv
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, flush, err := llog.InitLogger(
		llog.WithLevel(cfg.Log.Level),
		llog.WithEncoding(cfg.Log.Encoding),
		llog.WithFilename(cfg.Log.Filename),
		llog.WithEnableCaller(cfg.Log.Caller),
		llog.WithServiceName("stackd"),
	)
	if err != nil {
		return err
	}
	defer flush()

	srv := newServer(cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Infow("shutting down", "timeout", shutdownTimeout)
	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(stopCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}

	return <-errCh
}
