package main

import (
	"fmt"
	"os"

	"exhibition/internal/config"
	"exhibition/internal/env"
	"exhibition/internal/graphics"
	"exhibition/internal/logger"
)

func main() {
	if err := env.Load(env.DefaultPath); err != nil {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", env.DefaultPath, err)
	}
	cfg, cfgErr := config.Load(config.Dir)

	log, err := logger.New(cfg.LogsDir, cfg.LogLevel, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Close()
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("using default configuration")
	}

	a := newApp(cfg, log)
	defer a.close()

	graphics.Run(graphics.Window{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Title:      cfg.Window.Title,
		TargetFPS:  cfg.Window.TargetFPS,
		Fullscreen: cfg.Window.Fullscreen,
	}, a.update, a.draw)
}
