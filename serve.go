package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gallery to a local browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.HTTP.Addr = serveAddr
		}
		searcher, err := NewSearcher(cfg, logger)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, searcher)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default 127.0.0.1:8081)")
}

func serve(ctx context.Context, cfg *Config, searcher ImageSearcher) error {
	ui := NewWebUI(NewNoticeBoard(cfg.Notices.TTL), cfg.Debug.PrettyJson, logger)
	gallery := NewGallery(searcher, ui, logger)
	ui.Attach(gallery)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           ui.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return gallery.Run(ctx)
	})
	g.Go(func() error {
		logger.Info("starting server", "addr", cfg.HTTP.Addr, "source", searcher.Type())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
