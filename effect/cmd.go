package effect

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/alecthomas/kong"

	"heroesfx/parallel"
	"heroesfx/raster"
	"heroesfx/warp"
)

type DeathWaveCmd struct {
	Source string  `arg:"" help:"Source image" type:"existingfile"`
	Preset string  `help:"YAML preset file. Flags not given take their value from it" type:"existingfile"`
	Center int     `help:"Wave center column, ignored when sweeping" group:"wave"`
	Sweep  bool    `help:"Move the wave across the whole image, one center per frame" default:"false" group:"wave"`
	Width  *int    `help:"Half width of the wave band in pixels" group:"wave"`
	Height *int    `help:"Wave amplitude in pixels" group:"wave"`
	Frames *int    `help:"Number of frames to render when sweeping" group:"wave"`
	Easing *string `help:"Sweep easing curve (linear, in-quad, out-quad, in-out-quad, in-sine, out-sine, in-out-sine, out-bounce)" group:"wave"`

	Output
}

func (c *DeathWaveCmd) Validate(kctx *kong.Context) error {
	var err error
	if c.Source, err = sourcePath(c.Source); err != nil {
		return err
	}

	preset, err := LoadPreset(c.Preset)
	if err != nil {
		return err
	}
	c.Width = pick(c.Width, preset.DeathWave.Width)
	c.Height = pick(c.Height, preset.DeathWave.Height)
	c.Frames = pick(c.Frames, preset.DeathWave.Frames)
	c.Easing = pick(c.Easing, preset.DeathWave.Easing)

	switch {
	case *c.Width <= 0:
		return fmt.Errorf("invalid wave width: %d", *c.Width)
	case c.Sweep && *c.Frames <= 0:
		return fmt.Errorf("invalid frame count: %d", *c.Frames)
	}
	if _, err := warp.Easing(*c.Easing); err != nil {
		return err
	}

	return c.Output.Prepare(filepath.Dir(c.Source))
}

func (c *DeathWaveCmd) Run(pool *parallel.Pool) error {
	src, err := c.LoadImage(c.Source)
	if err != nil {
		return err
	}

	centers := []int{c.Center}
	if c.Sweep {
		fn, _ := warp.Easing(*c.Easing)
		centers = warp.SweepPositions(-*c.Width, src.Width()+*c.Width, *c.Frames, fn)
	}

	width, height := *c.Width, *c.Height
	slog.Debug("death wave", "width", width, "height", height, "centers", len(centers))
	return c.RenderFrames(pool, c.Source, "wave", len(centers), func(frame int) *raster.Image {
		return warp.DeathWave(src, centers[frame], width, height)
	})
}

type RippleCmd struct {
	Source    string   `arg:"" help:"Source image" type:"existingfile"`
	Preset    string   `help:"YAML preset file. Flags not given take their value from it" type:"existingfile"`
	ScaleX    *float64 `help:"How strongly the swing fades as frames advance" group:"ripple"`
	Frequency *float64 `help:"Vertical wave length factor, must be positive" group:"ripple"`
	Frames    *int     `help:"Number of frames to render" group:"ripple"`
	Start     int      `help:"Frame number of the first rendered frame" default:"0" group:"ripple"`

	Output
}

func (c *RippleCmd) Validate(kctx *kong.Context) error {
	var err error
	if c.Source, err = sourcePath(c.Source); err != nil {
		return err
	}

	preset, err := LoadPreset(c.Preset)
	if err != nil {
		return err
	}
	c.ScaleX = pick(c.ScaleX, preset.Ripple.ScaleX)
	c.Frequency = pick(c.Frequency, preset.Ripple.Frequency)
	c.Frames = pick(c.Frames, preset.Ripple.Frames)

	switch {
	case *c.Frequency <= 0:
		return fmt.Errorf("invalid wave frequency: %g", *c.Frequency)
	case *c.Frames <= 0:
		return fmt.Errorf("invalid frame count: %d", *c.Frames)
	}

	return c.Output.Prepare(filepath.Dir(c.Source))
}

func (c *RippleCmd) Run(pool *parallel.Pool) error {
	src, err := c.LoadImage(c.Source)
	if err != nil {
		return err
	}

	scaleX, frequency := *c.ScaleX, *c.Frequency
	return c.RenderFrames(pool, c.Source, "ripple", *c.Frames, func(frame int) *raster.Image {
		return warp.Ripple(src, c.Start+frame, scaleX, frequency)
	})
}
