package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"heroesfx/effect"
	"heroesfx/overlay"
	"heroesfx/palette"
	"heroesfx/parallel"
)

var cli struct {
	Workers int  `help:"Number of frames rendered in parallel. 0 uses every CPU" default:"0"`
	Verbose bool `help:"Log debug messages" short:"v"`

	Wave    effect.DeathWaveCmd `cmd:"" help:"Shear the columns of an image with a travelling death wave"`
	Ripple  effect.RippleCmd    `cmd:"" help:"Ripple the rows of an image, one frame per step"`
	Overlay overlay.CLICmd      `cmd:"" help:"Move a sprite over a background, restoring it afterwards"`
	Palette palette.CLICmd      `cmd:"" help:"Inspect and export built-in palettes"`
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "heroesfx",
	})
	slog.SetDefault(slog.New(logger))

	kctx := kong.Parse(&cli,
		kong.Name("heroesfx"),
		kong.Description("Pixel warp effects and sprite overlays for 8-bit palette images."),
		kong.UsageOnError(),
	)
	if cli.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	pool := parallel.Start(cli.Workers)
	defer pool.Close()

	if err := kctx.Run(pool); err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		pool.Close()
		os.Exit(1)
	}
}
