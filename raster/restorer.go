package raster

import "image"

// Restorer keeps a snapshot of a rectangle of a destination image so the
// area can be put back after something was drawn over it.
type Restorer struct {
	dst      *Image
	rect     image.Rectangle
	snapshot *Image
}

// NewRestorer captures the (x, y, width, height) area of dst.
func NewRestorer(dst *Image, x, y, width, height int) *Restorer {
	r := &Restorer{dst: dst}
	r.Update(x, y, width, height)
	return r
}

// Update drops the previous snapshot and captures the (x, y, width, height)
// area of the destination. Only the part inside the destination is kept.
func (r *Restorer) Update(x, y, width, height int) {
	r.rect = image.Rect(x, y, x+max(width, 0), y+max(height, 0)).Intersect(r.dst.Bounds())
	if r.rect.Empty() {
		r.rect = image.Rectangle{}
		r.snapshot = &Image{}
		return
	}

	w, h := r.rect.Dx(), r.rect.Dy()
	if r.snapshot.Empty() || r.snapshot.width != w || r.snapshot.height != h {
		r.snapshot = NewImage(w, h)
	}
	Copy(r.dst, r.rect.Min.X, r.rect.Min.Y, r.snapshot, 0, 0, w, h)
}

// Restore writes the snapshot back over the destination.
func (r *Restorer) Restore() {
	Copy(r.snapshot, 0, 0, r.dst, r.rect.Min.X, r.rect.Min.Y, r.rect.Dx(), r.rect.Dy())
}
