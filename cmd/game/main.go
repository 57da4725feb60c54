package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/survival/internal/audio"
	"github.com/tomz197/survival/internal/config"
	"github.com/tomz197/survival/internal/draw"
	"github.com/tomz197/survival/internal/input"
	"github.com/tomz197/survival/internal/logging"
	"github.com/tomz197/survival/internal/loop"
)

// The terminal is the game screen, so logs always go to a file.
const defaultLogFile = "survival.log"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	renderer := flag.String("renderer", "ansi", "renderer: ansi (half-block canvas) or tcell")
	rulesPath := flag.String("rules", config.GetEnv(config.EnvRulesFile, ""), "YAML rules file")
	logFile := flag.String("log", config.GetEnv(config.EnvLogFile, defaultLogFile), "log file")
	flag.Parse()

	if err := run(*renderer, *rulesPath, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(renderer, rulesPath, logFile string) error {
	if logFile == "" {
		logFile = defaultLogFile
	}
	log, err := logging.New(logFile, config.GetEnv(config.EnvLogLevel, "info"))
	if err != nil {
		return err
	}
	defer logging.Sync(log)

	rules, err := config.LoadRules(rulesPath)
	if err != nil {
		return err
	}

	volume := config.GetEnvFloat(config.EnvVolume, config.DefaultVolume)
	music := audio.NewMusic(volume)
	if err := music.Start(); err != nil {
		// Non-fatal, the game runs without sound
		log.Warnw("audio unavailable", "err", err)
	}
	defer music.Close()

	tracker := input.NewTracker()
	holder := input.NewHolder(tracker, input.DefaultHoldWindow)
	ctrl := loop.NewController(loop.Options{
		Rules:  rules,
		Logger: log,
		Volume: music,
		OnGameOver: func(res loop.Result) {
			log.Infow("final result", "score", res.Score, "wave", res.Wave, "survived", res.Survived)
		},
	})
	ctrl.SetVolume(volume)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infow("starting", "renderer", renderer, "rules", rulesPath)
	switch renderer {
	case "ansi":
		return runANSI(ctx, ctrl, tracker, holder, rules)
	case "tcell":
		return runTcell(ctx, ctrl, tracker, holder, rules, log)
	default:
		return fmt.Errorf("unknown renderer %q", renderer)
	}
}

// runANSI plays on the half-block canvas with stdin in raw mode.
func runANSI(ctx context.Context, ctrl *loop.Controller, tracker *input.Tracker, holder *input.Holder, rules *config.Rules) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	screen := draw.NewTerminal(os.Stdout, draw.DefaultTermSizeFunc,
		rules.Field.Width, rules.Field.Height, config.MaxTermWidth, config.MaxTermHeight)
	screen.Open()
	defer screen.Close()

	src := input.StartStream(bufio.NewReader(os.Stdin), holder)
	return loop.Run(ctx, ctrl, tracker, src, screen)
}

// runTcell plays on a tcell screen.
func runTcell(ctx context.Context, ctrl *loop.Controller, tracker *input.Tracker, holder *input.Holder, rules *config.Rules, log *zap.SugaredLogger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))

	cells := draw.NewCellScreen(screen, rules.Field.Width, rules.Field.Height)
	src := input.StartTcell(screen, holder)
	if err := loop.Run(ctx, ctrl, tracker, src, cells); err != nil {
		log.Errorw("game loop failed", "err", err)
		return err
	}
	return nil
}
