package caption

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	sansOnce sync.Once
	sans     *opentype.Font
	sansErr  error
)

// sansSerif parses the embedded Go Regular face, a metric-compatible stand-in
// for the generic sans-serif family.
func sansSerif() (*opentype.Font, error) {
	sansOnce.Do(func() {
		sans, sansErr = opentype.Parse(goregular.TTF)
	})
	return sans, sansErr
}

// faceCache keeps one face per pixel size. Faces are not safe for concurrent
// use, so a cache belongs to a single compositor.
type faceCache map[int]font.Face

func (fc faceCache) face(size int) (font.Face, error) {
	if f, ok := fc[size]; ok {
		return f, nil
	}
	f, err := sansSerif()
	if err != nil {
		return nil, fmt.Errorf("parse sans-serif font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create %dpx face: %w", size, err)
	}
	fc[size] = face
	return face, nil
}

func (fc faceCache) close() {
	for size, f := range fc {
		f.Close()
		delete(fc, size)
	}
}

// drawOutlinedText draws s centred on (cx, cy): first the outline, grown
// strokeWidth/2 pixels around every glyph, then the glyph fill on top. Only
// glyphs that can reach dst are rasterised.
func drawOutlinedText(dst draw.Image, face font.Face, s string, cx, cy int, fill, outline color.Color, strokeWidth int) {
	if s == "" {
		return
	}
	m := face.Metrics()
	radius := (strokeWidth + 1) / 2
	clip := dst.Bounds().Inset(-radius)

	// Vertical centre on the em box (ascent above, descent below the baseline).
	baseline := fixed.I(cy) + (m.Ascent-m.Descent)/2
	if (baseline+m.Descent+m.Height).Ceil() < clip.Min.Y || (baseline-m.Ascent-m.Height).Floor() >= clip.Max.Y {
		return
	}

	// Horizontal centre on the advance box of the whole line.
	advance := font.MeasureString(face, s)
	run, x := visibleRun(face, s, fixed.I(cx)-advance/2, fixed.I(clip.Min.X), fixed.I(clip.Max.X), m.Height)
	if run == "" {
		return
	}
	dot := fixed.Point26_6{X: x, Y: baseline}

	bounds, _ := font.BoundString(face, run)
	rect := image.Rect(
		(dot.X+bounds.Min.X).Floor() - radius,
		(dot.Y+bounds.Min.Y).Floor() - radius,
		(dot.X+bounds.Max.X).Ceil() + radius,
		(dot.Y+bounds.Max.Y).Ceil() + radius,
	).Intersect(clip)
	if rect.Empty() {
		return
	}

	glyphs := image.NewAlpha(rect)
	d := font.Drawer{Dst: glyphs, Src: image.Opaque, Face: face, Dot: dot}
	d.DrawString(run)

	stroke := dilate(glyphs, radius)
	draw.DrawMask(dst, rect, image.NewUniform(outline), image.Point{}, stroke, rect.Min, draw.Over)
	draw.DrawMask(dst, rect, image.NewUniform(fill), image.Point{}, glyphs, rect.Min, draw.Over)
}

// visibleRun trims s to the runes whose glyphs can land in [minX, maxX) when
// the line starts at x, allowing margin for overhang. It returns the trimmed
// string and the dot position of its first rune, kerning included.
func visibleRun(face font.Face, s string, x, minX, maxX, margin fixed.Int26_6) (string, fixed.Int26_6) {
	start, end := -1, len(s)
	startX := x
	prev := rune(-1)
	for i, r := range s {
		if prev >= 0 {
			x += face.Kern(prev, r)
		}
		if x-margin >= maxX {
			end = i
			break
		}
		adv, _ := face.GlyphAdvance(r)
		if start < 0 && x+adv+margin >= minX {
			start, startX = i, x
		}
		x += adv
		prev = r
	}
	if start < 0 {
		return "", x
	}
	return s[start:end], startX
}

// dilate grows a coverage mask by a disc of the given radius, keeping the
// strongest coverage found under the disc for every pixel.
func dilate(src *image.Alpha, radius int) *image.Alpha {
	b := src.Bounds()
	out := image.NewAlpha(b)
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}

	var offsets []image.Point
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				offsets = append(offsets, image.Pt(dx, dy))
			}
		}
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var a uint8
			for _, o := range offsets {
				p := image.Pt(x+o.X, y+o.Y)
				if !p.In(b) {
					continue
				}
				if v := src.Pix[src.PixOffset(p.X, p.Y)]; v > a {
					a = v
					if a == 0xff {
						break
					}
				}
			}
			out.Pix[out.PixOffset(x, y)] = a
		}
	}
	return out
}
