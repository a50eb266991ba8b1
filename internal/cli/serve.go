package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironicbadger/ktz-usa-stamps/internal/blog"
	"github.com/ironicbadger/ktz-usa-stamps/internal/logging"
	"github.com/ironicbadger/ktz-usa-stamps/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long:  "Start an HTTP server for the web UI. Data is re-read from the source on every request.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, port, dev || getDevMode())
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	cmd.Flags().BoolVar(&dev, "dev", false, "enable development logging")

	return cmd
}

func runServe(cmd *cobra.Command, port int, dev bool) error {
	logging.Setup(dev)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := openSource(ctx)
	if err != nil {
		return err
	}

	snippets, err := newSnippetFetcher()
	if err != nil {
		return err
	}

	srv, err := web.NewServer(src, snippets)
	if err != nil {
		return fmt.Errorf("creating web server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           logging.RequestLogger(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	slog.Info("starting web UI", "url", fmt.Sprintf("http://localhost:%d", port), "source", src.String())

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// newSnippetFetcher returns a blog snippet fetcher limited to the configured
// site and blog host, or nil when neither is configured.
func newSnippetFetcher() (*blog.Fetcher, error) {
	site, host := getSiteURL(), getBlogHost()
	if site == "" && host == "" {
		return nil, nil
	}
	allow, err := blog.NewAllowlist(site, host)
	if err != nil {
		return nil, fmt.Errorf("building blog allow-list: %w", err)
	}
	return blog.NewFetcher(allow), nil
}
