package warp

import (
	"fmt"
	"math"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SweepPositions returns one wave center per frame, travelling from from to
// to along the easing curve. The first frame is at from and the last at to.
func SweepPositions(from, to, frames int, fn ease.TweenFunc) []int {
	if frames <= 0 {
		return nil
	}

	pos := make([]int, frames)
	pos[0] = from
	if frames == 1 {
		return pos
	}

	tween := gween.New(float32(from), float32(to), float32(frames-1), fn)
	for i := 1; i < frames; i++ {
		v, _ := tween.Update(1)
		pos[i] = int(math.Round(float64(v)))
	}
	return pos
}

var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"in-quad":     ease.InQuad,
	"out-quad":    ease.OutQuad,
	"in-out-quad": ease.InOutQuad,
	"in-sine":     ease.InSine,
	"out-sine":    ease.OutSine,
	"in-out-sine": ease.InOutSine,
	"out-bounce":  ease.OutBounce,
}

// Easing looks up an easing curve by name, e.g. "linear" or "in-out-sine".
func Easing(name string) (ease.TweenFunc, error) {
	fn, ok := easings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}
