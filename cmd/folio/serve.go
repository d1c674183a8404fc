package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/tendant/folio/pkg/folio/api"
	"github.com/tendant/folio/pkg/folio/content"
)

const reloadDebounce = 500 * time.Millisecond

func newServeCmd(a *app) *cobra.Command {
	var port string
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the project API and asset tree",
		Long: `serve exposes the read-only project API under /api/v1 and the project
asset tree under /projects. With --watch the content directory is watched
and the catalog reloaded on change; media is resolved per request, so
asset changes are always picked up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = a.cfg.Port
			}
			ctx := cmd.Context()

			resolver, source, err := a.resolver()
			if err != nil {
				return err
			}
			strategy, err := a.cfg.BuildURLStrategy()
			if err != nil {
				return err
			}
			store, err := content.NewStore(a.cfg.ContentDir, a.logger)
			if err != nil {
				return err
			}

			if watch {
				stop, err := watchContent(ctx, a.cfg.ContentDir, store, a.logger)
				if err != nil {
					return err
				}
				defer stop()
			}

			handler := api.NewHandler(store, resolver,
				api.WithAssets(source),
				api.WithURLStrategy(strategy),
				api.WithLogger(a.logger),
			)

			r := chi.NewRouter()
			r.Use(middleware.RequestID)
			r.Use(middleware.RealIP)
			r.Use(middleware.Logger)
			r.Use(middleware.Recoverer)
			r.Use(middleware.Timeout(60 * time.Second))
			r.Mount("/", handler.Routes())

			server := &http.Server{
				Addr:    fmt.Sprintf(":%s", port),
				Handler: r,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("folio server starting", "port", port, "environment", a.cfg.Environment, "content", a.cfg.ContentDir)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (default from config, 8080)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload content when documents change")
	return cmd
}

// watchContent reloads store whenever a file below dir changes. New
// subdirectories are added to the watch as they appear.
func watchContent(ctx context.Context, dir string, store *content.Store, logger *slog.Logger) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("cannot walk content directory", "path", path, "err", err)
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				logger.Warn("failed to watch directory", "path", path, "err", err)
			}
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := watcher.Add(event.Name); err != nil {
							logger.Warn("failed to watch directory", "path", event.Name, "err", err)
						}
					}
				}
				logger.Debug("content change detected", "path", event.Name, "op", event.Op.String())
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					if err := store.Reload(); err != nil {
						logger.Error("content reload failed", "err", err)
						return
					}
					logger.Info("content reloaded", "projects", len(store.Catalog().Projects()))
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("watcher error", "err", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
