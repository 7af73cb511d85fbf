package effect

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"sync/atomic"

	"heroesfx/parallel"
	"heroesfx/raster"
)

// RenderFrames builds frames 0..count-1 with build on the pool, saves each
// one and, when asked, the whole sequence as an animated GIF.
func (o *Output) RenderFrames(pool *parallel.Pool, srcName, effect string, count int, build func(frame int) *raster.Image) error {
	if err := os.MkdirAll(o.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", o.Dest, err)
	}

	logger := slog.Default().With("file", srcName, "effect", effect)
	logger.Info("rendering", "frames", count, "workers", pool.Workers(), "dest", o.Dest)

	var animation []*image.Paletted
	if o.Animate {
		animation = make([]*image.Paletted, count)
	}

	var processedCount, errCount atomic.Uint64
	for frame := range count {
		pool.Do(func() {
			frameLog := logger.With("frame", frame)

			m := build(frame)
			if m.Empty() {
				errCount.Add(1)
				frameLog.Error("frame is empty")
				return
			}
			if animation != nil {
				animation[frame] = upscale(m.ToPaletted(o.Colors), o.Scale).(*image.Paletted)
			}

			destName := frameName(srcName, effect, frame, o.Format)
			if err := save(render(m, o.Colors, o.Format, o.Scale), o.Format, o.Dest, destName, o.Force); err != nil {
				errCount.Add(1)
				frameLog.Error("could not save frame", "dir", o.Dest, "error", err)
				return
			}
			frameLog.Debug("saved frame", "name", destName, "width", m.Width(), "height", m.Height())
			processedCount.Add(1)
		})
	}

	pool.Wait()

	processed := processedCount.Load()
	errors := errCount.Load()
	logger.Info("stats", "processed", processed, "errors", errors, "total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d frames", errors)
	}

	if animation != nil {
		destName := animationName(srcName, effect)
		if err := saveAnimation(animation, o.Delay, o.Dest, destName, o.Force); err != nil {
			return err
		}
		logger.Info("saved animation", "name", destName)
	}

	return nil
}
