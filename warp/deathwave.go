// Package warp builds distorted copies of raster images. The filters keep
// no state between calls; animating them is up to the caller, which picks
// the wave center or frame number for every frame.
package warp

import (
	"math"

	"heroesfx/raster"
)

// DeathWave returns a copy of in where the columns within waveWidth of
// centerX are shifted vertically, making a wave front that bulges up ahead
// of centerX and ripples behind it. waveWidth must be positive; waveHeight
// scales the shift and zero leaves the image untouched.
//
// Rows a shifted column does not cover keep the source pixels.
func DeathWave(in *raster.Image, centerX, waveWidth, waveHeight int) *raster.Image {
	if in.Empty() {
		return &raster.Image{}
	}

	out := in.Clone()

	width, height := in.Width(), in.Height()
	if centerX+waveWidth < 0 || centerX-waveWidth >= width {
		return out
	}

	startX := max(centerX-waveWidth, 0)
	endX := min(centerX+waveWidth, width)

	waveLimit := float64(waveWidth) / math.Pi

	for x := startX; x < endX; x++ {
		offsetY, ok := waveOffset(x-centerX, waveLimit, waveHeight, height)
		if !ok {
			continue
		}

		if offsetY >= 0 {
			out.CopyColumn(in, x, offsetY, 0, height-1-2*offsetY)
		} else {
			out.CopyColumn(in, x, 0, -offsetY, height-1+offsetY)
		}
	}

	return out
}

// waveOffset returns the vertical shift of a column waveX pixels away from
// the wave center. Shifts too large for the image are reported as not ok.
func waveOffset(waveX int, waveLimit float64, waveHeight, height int) (int, bool) {
	t := float64(waveX) / waveLimit

	var f float64
	if float64(waveX) < waveLimit {
		f = math.Tan(t) / 2
	} else {
		f = math.Sin(t)
	}

	offset := math.Round(float64(waveHeight) * f)
	if math.IsNaN(offset) || math.Abs(offset) >= float64(height) {
		return 0, false
	}
	return int(offset), true
}
