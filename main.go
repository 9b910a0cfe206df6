package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soocke/screenfeed-go/app"
	"github.com/soocke/screenfeed-go/config"
	"github.com/soocke/screenfeed-go/domain/capture"
)

type cliOptions struct {
	configPath string
	monitor    int
	roi        string
	fps        int
	format     string
	preview    bool
	debug      bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	opts := &cliOptions{}
	cmd := newRootCmd(opts)
	return cmd.Execute()
}

func newRootCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "screenfeed",
		Short:         "Capture the screen into a shared latest-frame buffer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapture(cmd, *opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "screenfeed.json", "Path to JSON config file")
	cmd.Flags().IntVar(&opts.monitor, "monitor", 0, "Monitor index; 0 captures the full virtual desktop")
	cmd.Flags().StringVar(&opts.roi, "roi", "", "Region of interest as left,top,width,height")
	cmd.Flags().IntVar(&opts.fps, "fps", 30, "Target frames per second")
	cmd.Flags().StringVar(&opts.format, "fmt", "BGRA", "Pixel format: BGRA, BGR, RGB or GRAY")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "Show a live preview window")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return cmd
}

// runCapture layers settings (defaults, then config file, then explicit
// flags), builds the application and runs it until the context is
// cancelled or the capture worker dies.
func runCapture(cmd *cobra.Command, opts cliOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", opts.configPath, err)
	}
	if err := applyFlags(cmd, opts, cfg); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(os.Stdout, level)

	application, err := app.NewApp(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}

// applyFlags overlays flags the user actually set onto cfg, so file
// values survive unless overridden, then validates the result.
func applyFlags(cmd *cobra.Command, opts cliOptions, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("monitor") {
		cfg.Monitor = opts.monitor
	}
	if flags.Changed("roi") {
		r, err := capture.ParseRegion(opts.roi)
		if err != nil {
			return err
		}
		cfg.SetROI(&r)
	}
	if flags.Changed("fps") {
		cfg.TargetFPS = opts.fps
	}
	if flags.Changed("fmt") {
		cfg.PixelFormat = opts.format
	}
	if flags.Changed("preview") {
		cfg.Preview = opts.preview
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	return cfg.Validate()
}
