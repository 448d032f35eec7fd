package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/supermuesli/dynwall/pkg/config"
	"github.com/supermuesli/dynwall/pkg/engine"
	"github.com/supermuesli/dynwall/pkg/gfx"
	"github.com/supermuesli/dynwall/pkg/gfx/glcore"
	"github.com/supermuesli/dynwall/pkg/window"
)

func init() {
	// GLFW and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

func run(cfg config.Config, log *slog.Logger) error {
	win, err := window.Open(cfg.Window)
	if err != nil {
		return err
	}
	defer win.Close()

	ctx, err := glcore.New()
	if err != nil {
		return err
	}

	graphics, err := newGraphics(ctx, cfg)
	if err != nil {
		return err
	}
	defer graphics.Close()

	sig, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// render loop
	e := engine.New(win, graphics, engine.Options{
		MaxDelta:  cfg.Render.MaxDelta,
		MaxFrames: cfg.Render.MaxFrames,
	}, log)
	return e.Run(sig)
}

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		slog.Error("bad configuration", "err", err)
		os.Exit(2)
	}

	level, _ := cfg.Log.SlogLevel()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	gfx.SetLogger(log)

	if err := run(cfg, log); err != nil {
		log.Error("wallpaper failed", "err", err)
		os.Exit(1)
	}
}
