package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/survival/internal/config"
	"github.com/tomz197/survival/internal/logging"
	"github.com/tomz197/survival/internal/loop"
	"github.com/tomz197/survival/internal/session"
	"github.com/tomz197/survival/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage []byte

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(config.GetEnv(config.EnvLogFile, ""), config.GetEnv(config.EnvLogLevel, "info"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync(log)

	if err := run(log); err != nil {
		log.Errorw("web server failed", "err", err)
		logging.Sync(log)
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)

	rules, err := config.LoadRules(config.GetEnv(config.EnvRulesFile, ""))
	if err != nil {
		return err
	}
	registry := session.NewRegistry(config.LeaderboardSize, log)
	metrics := &loop.Metrics{}
	opts := web.Options{
		Rules:    rules,
		Registry: registry,
		Metrics:  metrics,
		Logger:   log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(htmlPage)
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if err := web.Serve(w, r, opts); err != nil {
			log.Warnw("websocket session failed", "remote", r.RemoteAddr, "err", err)
		}
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"games":    metrics.Snapshot(),
			"sessions": registry.Snapshot(),
		})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		log.Infow("starting web server", "url", "http://"+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	}
	log.Infow("shutting down", "sessions", registry.Count())

	// Hijacked websocket connections are not tracked by the HTTP server, so
	// end the games first.
	if !registry.Shutdown(config.ShutdownGrace) {
		log.Warnw("sessions still running at shutdown", "remaining", registry.Count())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
