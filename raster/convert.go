package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// FromImage quantizes img to indices of pal. Pixels with less than half
// alpha are marked Transparent.
func FromImage(img image.Image, pal color.Palette, dither bool) *Image {
	sr := img.Bounds()
	out := NewImage(sr.Dx(), sr.Dy())
	if out.Empty() || len(pal) == 0 {
		return out
	}

	dr := out.Bounds()
	dest := image.NewPaletted(dr, pal)
	if dither {
		draw.FloydSteinberg.Draw(dest, dr, img, sr.Min)
	} else {
		draw.Draw(dest, dr, img, sr.Min, draw.Src)
	}

	for y := range out.height {
		pix, tr := out.Row(y)
		copy(pix, dest.Pix[y*dest.Stride:])
		for x := range tr {
			if _, _, _, a := img.At(sr.Min.X+x, sr.Min.Y+y).RGBA(); a < 0x8000 {
				tr[x] = Transparent
			}
		}
	}

	return out
}

// ToNRGBA renders the image through pal. Non-opaque pixels and indices
// past the end of pal come out fully transparent.
func (m *Image) ToNRGBA(pal color.Palette) *image.NRGBA {
	out := image.NewNRGBA(m.Bounds())
	for y := range m.height {
		pix, tr := m.Row(y)
		for x, c := range pix {
			if tr[x] != Opaque || int(c) >= len(pal) {
				continue
			}
			out.SetNRGBA(x, y, color.NRGBAModel.Convert(pal[c]).(color.NRGBA))
		}
	}
	return out
}

// ToPaletted renders the image as an image.Paletted using pal. When pal
// has room for it, a transparent entry is appended and used for non-opaque
// pixels; a full 256-color palette keeps transparent pixels at their index.
func (m *Image) ToPaletted(pal color.Palette) *image.Paletted {
	transparent := -1
	if len(pal) < 256 {
		transparent = len(pal)
		pal = append(pal[:len(pal):len(pal)], color.NRGBA{})
	}

	out := image.NewPaletted(m.Bounds(), pal)
	for y := range m.height {
		pix, tr := m.Row(y)
		row := out.Pix[y*out.Stride : y*out.Stride+m.width]
		copy(row, pix)
		if transparent < 0 {
			continue
		}
		for x, t := range tr {
			if t != Opaque || int(pix[x]) >= transparent {
				row[x] = uint8(transparent)
			}
		}
	}
	return out
}
