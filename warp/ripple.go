package warp

import (
	"math"

	"heroesfx/raster"
)

// ripplePeriod is the number of frames of one back-and-forth swing.
const ripplePeriod = 40

// Ripple returns a copy of in with every row shifted horizontally along a
// sine wave down the image. The swing strength follows frameID as a
// triangle wave and fades as frameID grows; scaleX controls how much of the
// fading applies, waveFrequency (> 0) the vertical wave length.
//
// The result is wider than in by twice the largest possible shift, and the
// uncovered margins are transparent.
func Ripple(in *raster.Image, frameID int, scaleX, waveFrequency float64) *raster.Image {
	if in.Empty() {
		return &raster.Image{}
	}

	modifier := RippleModifier(frameID, scaleX)
	offsetX := int(math.Round(math.Abs(modifier)))

	out := raster.NewImage(in.Width()+offsetX*2, in.Height())
	out.Reset()

	limitY := max(int(math.Round(waveFrequency*math.Pi)), 1)

	for y := range in.Height() {
		// the positive half of the sine, stretched to -1...1
		sinY := math.Sin(float64(y%limitY)/waveFrequency)*2 - 1
		offset := int(math.Round(modifier*sinY)) + offsetX
		offset = min(max(offset, 0), 2*offsetX)

		srcPix, srcTr := in.Row(y)
		dstPix, dstTr := out.Row(y)
		copy(dstPix[offset:], srcPix)
		copy(dstTr[offset:], srcTr)
	}

	return out
}

// RippleModifier is the signed horizontal swing of the ripple at frameID.
func RippleModifier(frameID int, scaleX float64) float64 {
	// triangle wave in -10...10
	linearWave := abs(ripplePeriod/2-(frameID+ripplePeriod/4)%ripplePeriod) - ripplePeriod/4
	progress := 7 - frameID/10

	return (float64(progress)*scaleX + 0.3) * float64(linearWave)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
