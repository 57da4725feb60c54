package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"go.uber.org/zap"

	"github.com/tomz197/survival/internal/config"
	"github.com/tomz197/survival/internal/draw"
	"github.com/tomz197/survival/internal/input"
	applog "github.com/tomz197/survival/internal/logging"
	"github.com/tomz197/survival/internal/loop"
	"github.com/tomz197/survival/internal/session"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

// server holds what every SSH session shares.
type server struct {
	log      *zap.SugaredLogger
	rules    *config.Rules
	registry *session.Registry
	metrics  *loop.Metrics
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	log, err := applog.New(config.GetEnv(config.EnvLogFile, ""), config.GetEnv(config.EnvLogLevel, "info"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer applog.Sync(log)

	if err := run(log); err != nil {
		log.Errorw("ssh server failed", "err", err)
		applog.Sync(log)
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	rulesPath := config.GetEnv(config.EnvRulesFile, "")
	log.Infow("ssh config", "host", host, "port", port, "host_key", hostKeyPath, "rules", rulesPath)

	rules, err := config.LoadRules(rulesPath)
	if err != nil {
		return err
	}
	srv := &server{
		log:      log,
		rules:    rules,
		registry: session.NewRegistry(config.LeaderboardSize, log),
		metrics:  &loop.Metrics{},
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	errc := make(chan error, 1)
	log.Infow("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	}
	log.Infow("shutting down", "sessions", srv.registry.Count())

	// End every game and wait for the sessions to unwind
	if !srv.registry.Shutdown(config.ShutdownGrace) {
		log.Warnw("sessions still running at shutdown", "remaining", srv.registry.Count())
	}
	log.Infow("final stats", "games", srv.metrics.Snapshot(), "registry", srv.registry.Snapshot())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// gameMiddleware runs one independent game per SSH session.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		handle := srv.registry.Register(sess.User(), cancel)
		defer srv.registry.Unregister(handle.ID)
		log := srv.log.With("session", handle.ID, "user", handle.Username)
		log.Infow("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Track terminal size from window change events
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		tracker := input.NewTracker()
		holder := input.NewHolder(tracker, input.DefaultHoldWindow)
		src := input.StartStream(bufio.NewReader(sess), holder)

		screen := draw.NewTerminal(sess, sizeTracker.getSize,
			srv.rules.Field.Width, srv.rules.Field.Height, config.MaxTermWidth, config.MaxTermHeight)
		screen.Open()

		ctrl := loop.NewController(loop.Options{
			Rules:   srv.rules,
			Logger:  log,
			Metrics: srv.metrics,
			OnGameOver: func(res loop.Result) {
				srv.registry.Record(handle.Username, res)
			},
		})
		if err := loop.Run(ctx, ctrl, tracker, src, screen); err != nil {
			log.Warnw("game error", "err", err)
		}
		screen.Close()

		log.Infow("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
