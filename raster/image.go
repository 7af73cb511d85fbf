package raster

import (
	"bytes"
	"fmt"
)

// Transform plane values.
const (
	Opaque      uint8 = 0
	Transparent uint8 = 1
)

// Image is an 8-bit indexed raster with a parallel transform plane.
type Image struct {
	// Pix holds the image's pixels, as palette indices. The pixel at
	// (x, y) is Pix[y*width + x].
	Pix []uint8
	// Transform holds one flag per pixel, laid out like Pix. Only Opaque
	// pixels are written by Blit.
	Transform []uint8

	width  int
	height int
}

// NewImage allocates a width x height image with both planes zeroed.
// Negative dimensions are treated as zero.
func NewImage(width, height int) *Image {
	width, height = max(width, 0), max(height, 0)
	if width == 0 || height == 0 {
		return &Image{}
	}

	return &Image{
		Pix:       make([]uint8, width*height),
		Transform: make([]uint8, width*height),
		width:     width,
		height:    height,
	}
}

func (m *Image) Width() int {
	return m.width
}

func (m *Image) Height() int {
	return m.height
}

// Empty reports whether the image has no pixels.
func (m *Image) Empty() bool {
	return m == nil || m.width == 0 || m.height == 0
}

func (m *Image) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

func (m *Image) offset(x, y int) int {
	if !m.In(x, y) {
		panic(fmt.Sprintf("raster: pixel (%d, %d) out of %dx%d image", x, y, m.width, m.height))
	}
	return y*m.width + x
}

// Pixel returns the color index and transform value at (x, y).
func (m *Image) Pixel(x, y int) (uint8, uint8) {
	i := m.offset(x, y)
	return m.Pix[i], m.Transform[i]
}

func (m *Image) SetPixel(x, y int, c, t uint8) {
	i := m.offset(x, y)
	m.Pix[i] = c
	m.Transform[i] = t
}

// Row returns both planes of row y. The slices alias the image.
func (m *Image) Row(y int) (pix, transform []uint8) {
	start := m.offset(0, y)
	end := start + m.width
	return m.Pix[start:end:end], m.Transform[start:end:end]
}

// CopyColumn copies n pixels of column x from src, starting at row srcY,
// into column x of m starting at row dstY. Both images must share the
// same width and the spans must lie inside them.
func (m *Image) CopyColumn(src *Image, x, dstY, srcY, n int) {
	if n <= 0 {
		return
	}
	if m.width != src.width {
		panic(fmt.Sprintf("raster: column copy between widths %d and %d", src.width, m.width))
	}

	// bounds-check both ends once, then step by stride
	m.offset(x, dstY+n-1)
	src.offset(x, srcY+n-1)
	di, si := m.offset(x, dstY), src.offset(x, srcY)
	for range n {
		m.Pix[di] = src.Pix[si]
		m.Transform[di] = src.Transform[si]
		di += m.width
		si += src.width
	}
}

// Reset marks every pixel transparent with color index 0.
func (m *Image) Reset() {
	clear(m.Pix)
	for i := range m.Transform {
		m.Transform[i] = Transparent
	}
}

// Fill paints every pixel opaque with color index c.
func (m *Image) Fill(c uint8) {
	for i := range m.Pix {
		m.Pix[i] = c
	}
	clear(m.Transform)
}

func (m *Image) Clone() *Image {
	if m.Empty() {
		return &Image{}
	}

	return &Image{
		Pix:       bytes.Clone(m.Pix),
		Transform: bytes.Clone(m.Transform),
		width:     m.width,
		height:    m.height,
	}
}

// Equal reports whether both images have the same size and planes.
func (m *Image) Equal(o *Image) bool {
	if m.Empty() || o.Empty() {
		return m.Empty() && o.Empty()
	}
	return m.width == o.width && m.height == o.height &&
		bytes.Equal(m.Pix, o.Pix) && bytes.Equal(m.Transform, o.Transform)
}

// Sprite is an image placed at a screen position.
type Sprite struct {
	*Image
	X, Y int
}

func NewSprite(width, height, x, y int) Sprite {
	return Sprite{
		Image: NewImage(width, height),
		X:     x,
		Y:     y,
	}
}
