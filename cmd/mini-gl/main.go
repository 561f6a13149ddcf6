package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"
	"github.com/xlab/closer"

	"mini-gl/internal/config"
	"mini-gl/internal/driver"
	"mini-gl/internal/gpu"
	"mini-gl/internal/graphics"
	"mini-gl/internal/graphics/renderer"
	"mini-gl/internal/shaderwatch"
)

func init() {
	runtime.LockOSThread()
}

type options struct {
	configPath string
	debug      bool
	watch      bool
	fps        int
}

func main() {
	var opts options
	cmd := &cobra.Command{
		Use:          "mini-gl",
		Short:        "Render instanced shader programs in a window",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.Flags().Changed("fps"))
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML or TOML settings file")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log at debug level and report shader diagnostics")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "reload shader files from the config when they change")
	cmd.Flags().IntVar(&opts.fps, "fps", 60, "frame cap, 0 for uncapped")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		closer.Fatalln(err)
	}
	closer.Close()
}

func run(ctx context.Context, opts options, fpsSet bool) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}
	if opts.debug {
		cfg.Debug = true
	}
	if fpsSet {
		cfg.FPSLimit = opts.fps
	}
	cfg.Apply()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	graphics.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("could not initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	backend, err := gpu.NewGL()
	if err != nil {
		return fmt.Errorf("could not initialize OpenGL: %w", err)
	}
	defer backend.Release()

	r, err := renderer.New(renderer.Config{
		Context:  backend,
		Target:   host{window},
		Settings: pixelSettings(cfg.Renderer),
		Debug:    cfg.Debug,
	})
	if err != nil {
		return err
	}
	defer r.Destroy()

	s := newScene(r, cfg.Shaders)
	if err := s.load(); err != nil {
		return err
	}

	controls := setupInputHandlers(window, r, s)
	frameOpts := driver.Options{
		SlowFrame:   16 * time.Millisecond,
		BeforeFrame: controls.update,
	}
	if opts.watch {
		w, err := shaderwatch.New()
		if err != nil {
			return err
		}
		closer.Bind(func() { _ = w.Close() })
		defer w.Close()
		if err := s.watch(w); err != nil {
			return err
		}
		frameOpts.BeforeFrame = func() {
			for _, key := range w.Pending() {
				s.reload(key)
			}
			controls.update()
		}
	}

	return driver.Run(ctx, host{window}, r, frameOpts)
}
