// Package overlay moves a sprite over a background and records the display
// after every step.
package overlay

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"heroesfx/effect"
	"heroesfx/parallel"
	"heroesfx/raster"
	"heroesfx/sprite"
	"heroesfx/warp"
)

type CLICmd struct {
	Background string   `arg:"" help:"Background image the sprite is drawn over" type:"existingfile"`
	Sprite     string   `arg:"" help:"Sprite image, transparent pixels are not drawn" type:"existingfile"`
	At         []string `help:"Sprite position as x,y. Repeat to move the sprite, one frame per position" sep:"none" required:""`
	Transition string   `help:"Display transition played before the sprite is hidden" enum:"none,fade,rise,inverted-fade" default:"none"`

	effect.Output

	Path []image.Point `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	for _, path := range []*string{&c.Background, &c.Sprite} {
		abs, err := filepath.Abs(*path)
		if err != nil {
			return fmt.Errorf("invalid image path %q: %w", *path, err)
		}
		*path = abs
	}

	c.Path = c.Path[:0]
	for _, at := range c.At {
		pt, err := parsePoint(at)
		if err != nil {
			return err
		}
		c.Path = append(c.Path, pt)
	}
	if len(c.Path) == 0 {
		return fmt.Errorf("no sprite positions given")
	}

	if _, err := warp.TransitionByName(c.Transition); err != nil {
		return err
	}

	return c.Output.Prepare(filepath.Dir(c.Background))
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	background, err := c.LoadImage(c.Background)
	if err != nil {
		return err
	}
	spriteImg, err := c.LoadImage(c.Sprite)
	if err != nil {
		return err
	}

	transition, _ := warp.TransitionByName(c.Transition)
	frames, err := Play(background, spriteImg, c.Path, transition)
	if err != nil {
		return err
	}

	return c.RenderFrames(pool, c.Background, "overlay", len(frames), func(frame int) *raster.Image {
		return frames[frame]
	})
}

// Play draws img over a copy of background at every point of path in turn
// and returns a snapshot of the display after each move, followed by one
// taken after the transition and the sprite was hidden again. It fails if
// hiding did not bring the background back unchanged.
func Play(background, img *raster.Image, path []image.Point, transition warp.Transition) ([]*raster.Image, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("no sprite positions given")
	}

	display := background.Clone()
	s := sprite.NewFrom(display, raster.Sprite{Image: img, X: path[0].X, Y: path[0].Y})
	s.Redraw()

	frames := make([]*raster.Image, 0, len(path)+1)
	frames = append(frames, display.Clone())
	for _, pt := range path[1:] {
		s.SetPosition(pt.X, pt.Y)
		frames = append(frames, display.Clone())
	}

	transition.Play(display)
	s.Hide()
	frames = append(frames, display.Clone())

	if !display.Equal(background) {
		return frames, fmt.Errorf("background was not restored after hiding the sprite")
	}
	slog.Debug("background restored", "positions", len(path))

	return frames, nil
}

func parsePoint(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return image.Point{}, fmt.Errorf("invalid position %q, expected x,y", s)
	}

	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid x in position %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid y in position %q: %w", s, err)
	}

	return image.Pt(x, y), nil
}
