package raster

import "image"

func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// clip returns the part of the src rectangle that lands inside dst when the
// src origin is placed at (x, y), as a src-relative rectangle.
func clip(src, dst image.Rectangle, x, y int) image.Rectangle {
	return dst.Sub(image.Pt(x, y)).Intersect(src)
}

// Blit draws the opaque pixels of src onto dst with the src origin at
// (x, y). Pixels falling outside dst are dropped.
func Blit(src, dst *Image, x, y int) {
	if src.Empty() || dst.Empty() {
		return
	}

	r := clip(src.Bounds(), dst.Bounds(), x, y)
	for sy := r.Min.Y; sy < r.Max.Y; sy++ {
		srcPix, srcTr := src.Row(sy)
		dstPix, dstTr := dst.Row(sy + y)
		for sx := r.Min.X; sx < r.Max.X; sx++ {
			if srcTr[sx] != Opaque {
				continue
			}
			dstPix[sx+x] = srcPix[sx]
			dstTr[sx+x] = Opaque
		}
	}
}

// Copy overwrites the width x height area of dst at (dstX, dstY) with the
// area of src at (srcX, srcY), transform plane included.
func Copy(src *Image, srcX, srcY int, dst *Image, dstX, dstY, width, height int) {
	if src.Empty() || dst.Empty() {
		return
	}

	r := image.Rect(srcX, srcY, srcX+width, srcY+height)
	r = clip(r.Intersect(src.Bounds()), dst.Bounds(), dstX-srcX, dstY-srcY)
	dx, dy := dstX-srcX, dstY-srcY
	for sy := r.Min.Y; sy < r.Max.Y; sy++ {
		srcPix, srcTr := src.Row(sy)
		dstPix, dstTr := dst.Row(sy + dy)
		copy(dstPix[r.Min.X+dx:r.Max.X+dx], srcPix[r.Min.X:r.Max.X])
		copy(dstTr[r.Min.X+dx:r.Max.X+dx], srcTr[r.Min.X:r.Max.X])
	}
}
