package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"boulder-smash/assets"
	"boulder-smash/internal/audio"
	"boulder-smash/internal/config"
	"boulder-smash/internal/game"
	"boulder-smash/internal/input"
	"boulder-smash/internal/logging"
	"boulder-smash/internal/render"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/boulder-smash.toml"
	if p := os.Getenv("BOULDERSMASH_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Defaults()
	} else if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck
	log.Info("starting", zap.String("config", cfgPath))

	scene, err := loadScene(cfg.Scene)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}

	sounds := audio.NewSoundManager(cfg.Audio, log)
	defer sounds.Close()
	if cfg.Audio.Enabled {
		if err := sounds.Init(); err != nil {
			log.Error("audio init failed", zap.Error(err))
			showFatal(screen, "Audio", fmt.Sprintf("Could not open the audio device: %v", err))
			return fmt.Errorf("init audio: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := sounds.Preload(ctx, scene.Sounds, cfg.Audio.Preload); err != nil {
		return fmt.Errorf("preload sounds: %w", err)
	}

	window, err := input.NewTerminalWindow(screen, cfg.Window.KeyHold, log.Named("input"))
	if err != nil {
		return err
	}
	defer window.Close()
	screen.SetTitle(cfg.Window.Title)

	g, err := game.New(game.Options{
		Config: cfg,
		Scene:  scene,
		Log:    log.Named("game"),
		Window: window,
		Audio:  sounds,
	})
	if err != nil {
		return err
	}
	g.Run(ctx)
	return nil
}

// loadScene reads the configured scene file, or the embedded default when
// none is set.
func loadScene(c config.SceneConfig) (*config.Scene, error) {
	if c.Path != "" {
		return config.LoadScene(c.Path)
	}
	return config.ParseScene(assets.DefaultScene)
}

// showFatal puts a blocking error dialog on a screen that is not yet owned
// by the input window.
func showFatal(screen tcell.Screen, title, msg string) {
	if err := screen.Init(); err != nil {
		return
	}
	defer screen.Fini()
	render.ShowFatal(screen, title, msg)
}
