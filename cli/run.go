package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"lumen/app"
	"lumen/hal"
	"lumen/hal/terminal"
	"lumen/hal/window"
	"lumen/internal/config"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the visualization.",
	Long: `Run the visualization on a host: a desktop window (default), a terminal
drawn with half blocks, or headless with a scripted pointer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(settings, configFile)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = runHost(ctx, cfg)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func runHost(ctx context.Context, cfg config.Config) error {
	newApp := app.NewFunc(cfg, app.Options{HostName: cfg.Host.Mode})
	switch cfg.Host.Mode {
	case config.HostHeadless:
		return hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Width:  cfg.Host.Width,
			Height: cfg.Host.Height,
			Hz:     cfg.Host.Hz,
			Ticks:  cfg.Host.Ticks,
			Script: true,
			Fine:   cfg.Cursor.PointerFine,
		})
	case config.HostTerminal:
		return terminal.Run(ctx, newApp, terminal.Config{
			Hz:    cfg.Host.Hz,
			Ticks: cfg.Host.Ticks,
		})
	default:
		return window.Run(newApp, window.Config{
			Width:  cfg.Host.Width,
			Height: cfg.Host.Height,
			Scale:  cfg.Host.Scale,
			TPS:    cfg.Host.Hz,
		})
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	flags := runCmd.Flags()
	flags.String("host", config.HostWindow, "Host: window, headless or terminal.")
	flags.String("stage", config.StageSkills, "Stage: skills or hero.")
	flags.String("variant", "", "Scene layout: keyboard or constellation.")
	flags.String("cursor", "particles", "Cursor layer: particles or follower.")
	flags.String("scene", "", "Scene definition YAML; defaults to the built-in one.")
	flags.Int("stars", 5000, "Star backdrop size.")
	flags.Bool("wireframe", false, "Draw scene meshes as wireframes.")
	flags.Int("width", 320, "Framebuffer width in pixels.")
	flags.Int("height", 240, "Framebuffer height in pixels.")
	flags.Int("hz", 60, "Frame rate.")
	flags.Uint64("ticks", 0, "Stop after N frames (0 = run until interrupted).")
	flags.String("log-level", "info", "Log level: debug, info, warn or error.")
	flags.Bool("dump-metrics", false, "Write metrics to the log on exit.")

	for key, flag := range map[string]string{
		"host.mode":       "host",
		"scene.stage":     "stage",
		"scene.variant":   "variant",
		"cursor.variant":  "cursor",
		"scene.file":      "scene",
		"scene.stars":     "stars",
		"scene.wireframe": "wireframe",
		"host.width":      "width",
		"host.height":     "height",
		"host.hz":         "hz",
		"host.ticks":      "ticks",
		"log.level":       "log-level",
		"metrics.dump":    "dump-metrics",
	} {
		_ = settings.BindPFlag(key, flags.Lookup(flag))
	}
}
