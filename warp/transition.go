package warp

import (
	"fmt"

	"heroesfx/raster"
)

// Transition is a whole-display effect played when a screen changes.
type Transition interface {
	Play(display *raster.Image)
}

// TransitionFunc adapts a function to Transition.
type TransitionFunc func(display *raster.Image)

func (f TransitionFunc) Play(display *raster.Image) {
	f(display)
}

// Built-in transitions. They currently leave the display as is; palette
// based fades would plug in here.
var (
	NoTransition Transition = TransitionFunc(func(*raster.Image) {})
	Fade         Transition = NoTransition
	Rise         Transition = NoTransition
	InvertedFade Transition = NoTransition
)

func TransitionByName(name string) (Transition, error) {
	switch name {
	case "", "none":
		return NoTransition, nil
	case "fade":
		return Fade, nil
	case "rise":
		return Rise, nil
	case "inverted-fade":
		return InvertedFade, nil
	}
	return nil, fmt.Errorf("unknown transition %q", name)
}
