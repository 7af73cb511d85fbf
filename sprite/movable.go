// Package sprite provides overlays that draw onto a shared display image
// and put the background back when they go away.
package sprite

import "heroesfx/raster"

// MovableSprite is a sprite bound to a display. While shown, the display
// area under it is kept by a restorer so hiding puts the background back.
//
// The display must only be drawn to from one goroutine, and nothing else
// should draw under a shown sprite unless Redraw is called afterwards.
type MovableSprite struct {
	sprite   raster.Sprite
	display  *raster.Image
	restorer *raster.Restorer
	hidden   bool
}

// New creates a transparent width x height sprite at (x, y). The display
// area is captured right away; the sprite counts as hidden only when it
// has no size at all.
func New(display *raster.Image, width, height, x, y int) *MovableSprite {
	s := raster.NewSprite(width, height, x, y)
	s.Reset()

	return &MovableSprite{
		sprite:   s,
		display:  display,
		restorer: raster.NewRestorer(display, x, y, width, height),
		hidden:   width == 0 && height == 0,
	}
}

// NewFrom copies s into a new sprite. It is not hidden, but nothing is
// drawn either: call Redraw (or Hide then Show) to put it on the display.
func NewFrom(display *raster.Image, s raster.Sprite) *MovableSprite {
	s.Image = s.Image.Clone()

	return &MovableSprite{
		sprite:   s,
		display:  display,
		restorer: raster.NewRestorer(display, s.X, s.Y, s.Width(), s.Height()),
	}
}

// Assign replaces the pixels, size and position with a copy of s and
// recaptures the display under the new bounds. It neither draws nor changes
// the hidden state.
func (m *MovableSprite) Assign(s raster.Sprite) {
	s.Image = s.Image.Clone()
	m.sprite = s
	m.restorer.Update(s.X, s.Y, s.Width(), s.Height())
}

// SetPosition moves the sprite to (x, y), restoring the old area first.
func (m *MovableSprite) SetPosition(x, y int) {
	m.Hide()
	m.sprite.X, m.sprite.Y = x, y
	m.Show()
}

func (m *MovableSprite) Show() {
	if !m.hidden {
		return
	}

	m.restorer.Update(m.sprite.X, m.sprite.Y, m.sprite.Width(), m.sprite.Height())
	raster.Blit(m.sprite.Image, m.display, m.sprite.X, m.sprite.Y)
	m.hidden = false
}

func (m *MovableSprite) Hide() {
	if m.hidden {
		return
	}

	m.restorer.Restore()
	m.hidden = true
}

// Redraw captures the display again and draws the sprite on top of it.
func (m *MovableSprite) Redraw() {
	m.Hide()
	m.Show()
}

func (m *MovableSprite) IsHidden() bool {
	return m.hidden
}

// Image returns the sprite pixels. Changes show up on the next Show or
// Redraw.
func (m *MovableSprite) Image() *raster.Image {
	return m.sprite.Image
}

func (m *MovableSprite) Position() (int, int) {
	return m.sprite.X, m.sprite.Y
}
