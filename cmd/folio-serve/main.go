// Command folio-serve runs the preview API.
//
// The listen port comes from PORT (default 8080). FOLIO_CONTENT names a
// content file to serve instead of the built-in page; with -watch the file is
// reloaded whenever it changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/folio/content"
	"github.com/phanxgames/folio/internal/logging"
	"github.com/phanxgames/folio/server"
)

func main() {
	var (
		path  = flag.String("content", os.Getenv("FOLIO_CONTENT"), "content YAML file (empty uses the built-in page)")
		port  = flag.String("port", envOr("PORT", "8080"), "listen port")
		level = flag.String("log-level", envOr("FOLIO_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
		watch = flag.Duration("watch", 0, "poll the content file at this interval and reload on change (0 disables)")
	)
	flag.Parse()

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*level)); err != nil {
		fmt.Fprintf(os.Stderr, "folio-serve: log level: %v\n", err)
		os.Exit(2)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	logging.Set(log)
	if lvl > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(*path, ":"+*port, *watch, log); err != nil {
		log.Error("exiting", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(path, addr string, watch time.Duration, log *slog.Logger) error {
	doc := content.Default()
	if path != "" {
		var err error
		if doc, err = content.Load(path); err != nil {
			return err
		}
	}
	srv := server.New(server.Config{Doc: doc, Logger: log})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx, addr)
	})
	if path != "" && watch > 0 {
		g.Go(func() error {
			watchContent(ctx, path, watch, srv, log)
			return nil
		})
	}
	return g.Wait()
}

// watchContent reloads path into srv whenever its modification time changes.
// A file that fails to load keeps the previous document.
func watchContent(ctx context.Context, path string, every time.Duration, srv *server.Server, log *slog.Logger) {
	var last time.Time
	if fi, err := os.Stat(path); err == nil {
		last = fi.ModTime()
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		fi, err := os.Stat(path)
		if err != nil || !fi.ModTime().After(last) {
			continue
		}
		last = fi.ModTime()
		doc, err := content.Load(path)
		if err != nil {
			log.Warn("content reload failed", slog.String("path", path), slog.Any("error", err))
			continue
		}
		srv.SetDocument(doc)
		log.Info("content reloaded", slog.String("path", path))
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
