package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"classic-snake/audio"
	"classic-snake/config"
	"classic-snake/game"
	"classic-snake/input"
	"classic-snake/scoreboard"
	"classic-snake/session"
	"classic-snake/store"
	"classic-snake/ui"
	"classic-snake/ui/terminal"
)

func main() {
	cfg, err := config.Load(os.Args[1:], config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logFile := setupLogging(cfg.Debug)
	err = run(cfg)
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("starting: grid %d, speed %d, ui %s, store %s", cfg.GridSize, cfg.Speed, cfg.UI, cfg.Store)

	st := openStore(cfg.Store, cfg.DataDir)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	g := game.NewGame(game.Config{
		GridSize:     cfg.GridSize,
		BaseInterval: cfg.BaseInterval(),
		MinInterval:  cfg.MinTick,
		Seed:         seed,
	})

	opts := []session.Option{session.WithLogger(newLogger("[SESSION] "))}
	if cfg.Sound {
		sounds, err := audio.New(cfg.Volume, newLogger("[AUDIO] "))
		if err != nil {
			// Non-fatal, the game runs without sound.
			log.Printf("audio disabled: %v", err)
		} else {
			defer sounds.Close()
			opts = append(opts, session.WithListener(sounds))
		}
	}

	sess := session.New(g, st, opts...)
	defer func() {
		if err := sess.Close(); err != nil {
			log.Printf("failed to close store: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	eg, egCtx := errgroup.WithContext(ctx)
	if cfg.HTTPAddr != "" {
		srv := scoreboard.NewServer(sess, newLogger("[HTTP] "))
		eg.Go(func() error {
			return srv.ListenAndServe(egCtx, cfg.HTTPAddr)
		})
	}

	// The frontend stays on the main goroutine; raylib requires it.
	uiErr := runUI(egCtx, cfg.ResolveUI(), sess)
	cancel()
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("scoreboard: %w", err)
	}
	return uiErr
}

// openStore falls back to an in-memory store when the configured one cannot
// be opened. Scores from that run are then lost on exit.
func openStore(kind, dataDir string) store.Store {
	st, err := store.Open(kind, dataDir)
	if err != nil {
		log.Printf("failed to open %s store in %s, keeping scores in memory: %v", kind, dataDir, err)
		return store.NewMemoryStore()
	}
	return st
}

func runUI(ctx context.Context, kind string, sess *session.Session) error {
	mapper := input.NewMapper()
	switch kind {
	case config.UITerminal:
		screen, err := terminal.NewScreen()
		if err != nil {
			return err
		}
		defer screen.Fini()
		return terminal.New(screen, sess, mapper).Run(ctx)
	default:
		return ui.NewWindow(sess, mapper).Run(ctx)
	}
}
