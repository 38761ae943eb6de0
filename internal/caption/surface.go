package caption

import (
	"image"
	"image/color"
	"image/draw"
)

// Surface is the pixel buffer every render pass overwrites.
type Surface struct {
	img *image.RGBA
}

// NewSurface allocates a transparent w×h surface.
func NewSurface(w, h int) *Surface {
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))}
}

func (s *Surface) Width() int  { return s.img.Bounds().Dx() }
func (s *Surface) Height() int { return s.img.Bounds().Dy() }

// Empty reports whether the surface has no area to export.
func (s *Surface) Empty() bool { return s.Width() == 0 || s.Height() == 0 }

// Resize reallocates the buffer when the size changes and reports whether it
// did. An unchanged size keeps the existing buffer and its pixels.
func (s *Surface) Resize(w, h int) bool {
	if w == s.Width() && h == s.Height() {
		return false
	}
	s.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	return true
}

// Clear makes every pixel fully transparent.
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// Image exposes the underlying buffer. Callers must not retain it across
// renders.
func (s *Surface) Image() *image.RGBA { return s.img }

// fillRect composites c over the part of r that lies on the surface.
func (s *Surface) fillRect(r image.Rectangle, c color.Color) {
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// hline composites a one pixel tall full-width line whose top edge is y.
func (s *Surface) hline(y int, c color.Color) {
	s.fillRect(image.Rect(0, y, s.Width(), y+1), c)
}
