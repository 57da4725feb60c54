package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tomz197/survival/internal/config"
	"github.com/tomz197/survival/internal/input"
	"github.com/tomz197/survival/internal/loop"
	"github.com/tomz197/survival/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// Options configures the games Serve runs.
type Options struct {
	Rules    *config.Rules
	Registry *session.Registry
	Metrics  *loop.Metrics
	Logger   *zap.SugaredLogger
}

// Serve upgrades the request to a websocket and runs one game on it until
// the player quits, disconnects or the registry shuts the session down. The
// player name is taken from the "name" query parameter.
func Serve(w http.ResponseWriter, r *http.Request, opts Options) error {
	if opts.Rules == nil {
		opts.Rules = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Registry == nil {
		opts.Registry = session.NewRegistry(0, opts.Logger)
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("upgrade: %w", err)
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	handle := opts.Registry.Register(r.URL.Query().Get("name"), cancel)
	defer opts.Registry.Unregister(handle.ID)
	log := opts.Logger.With("session", handle.ID, "user", handle.Username)

	tracker := input.NewTracker()
	conn := NewConn(ws, tracker, log)
	defer conn.Close()
	go conn.WritePump()
	go conn.ReadPump()

	ctrl := loop.NewController(loop.Options{
		Rules:   opts.Rules,
		Logger:  log,
		Metrics: opts.Metrics,
		OnGameOver: func(res loop.Result) {
			opts.Registry.Record(handle.Username, res)
		},
	})
	rec := NewRecorder(opts.Rules.Field.Width, opts.Rules.Field.Height, conn.Enqueue)

	if err := loop.Run(ctx, ctrl, tracker, conn, rec); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
