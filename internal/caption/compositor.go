// Package caption overlays stacked subtitle bands onto an image and exports
// the result as PNG.
package caption

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	// Register decoders for everything a browser upload is likely to be.
	_ "image/gif"
	_ "image/jpeg"

	"github.com/charmbracelet/log"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptySurface is returned by the export methods when there is nothing to
// export. Callers treat it as "skip", not as a failure to report.
var ErrEmptySurface = errors.New("caption: surface has zero area")

// ErrImageTooLarge is returned by Decode when the declared dimensions exceed
// the pixel budget. Nothing is decoded in that case.
var ErrImageTooLarge = errors.New("caption: image exceeds the pixel budget")

// DefaultMaxPixels is the decode budget, 50 megapixels.
const DefaultMaxPixels = 50_000_000

var (
	bandColor    = color.NRGBA{A: 153}                         // black, 0.6 opacity
	dividerColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 64} // white, 0.25 opacity
)

// Compositor owns a source image slot and the surface it renders into. It is
// not safe for concurrent use; Session adds locking for timer driven renders.
type Compositor struct {
	maxWidth  int
	maxPixels int64
	logger    *log.Logger

	src     image.Image
	surface *Surface
	faces   faceCache
}

type Option func(*Compositor)

// WithMaxWidth overrides the 1000px width limit.
func WithMaxWidth(w int) Option {
	return func(c *Compositor) {
		if w > 0 {
			c.maxWidth = w
		}
	}
}

// WithMaxPixels overrides the 50 megapixel decode budget.
func WithMaxPixels(n int64) Option {
	return func(c *Compositor) {
		if n > 0 {
			c.maxPixels = n
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Compositor) { c.logger = l }
}

func New(opts ...Option) *Compositor {
	c := &Compositor{
		maxWidth:  DefaultMaxWidth,
		maxPixels: DefaultMaxPixels,
		logger:    log.Default(),
		surface:   NewSurface(0, 0),
		faces:     faceCache{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode reads an encoded image and installs it as the source. The header is
// checked against the pixel budget before any pixel buffer is allocated.
func (c *Compositor) Decode(r io.Reader) (string, error) {
	var head bytes.Buffer
	conf, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	if int64(conf.Width)*int64(conf.Height) > c.maxPixels {
		return "", fmt.Errorf("%w: %dx%d", ErrImageTooLarge, conf.Width, conf.Height)
	}

	img, format, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	c.SetImage(img)
	return format, nil
}

// SetImage replaces the source image and sizes the surface to fit it. A nil
// image empties the slot.
func (c *Compositor) SetImage(img image.Image) {
	c.src = img
	if img != nil {
		c.fit()
	}
}

// HasImage reports whether a source image is loaded.
func (c *Compositor) HasImage() bool { return c.src != nil }

func (c *Compositor) Surface() *Surface { return c.surface }

// fit resizes the surface to the source's effective size.
func (c *Compositor) fit() {
	b := c.src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), c.maxWidth)
	if c.surface.Resize(w, h) {
		c.logger.Debug("surface resized", "width", w, "height", h, "source_width", b.Dx(), "source_height", b.Dy())
	}
}

// Render redraws the whole surface: the source stretched to fill it, then one
// band per non-empty caption line stacked against the bottom edge. Without a
// source image the surface is cleared.
func (c *Compositor) Render(s Settings, text string) {
	if c.src == nil {
		c.surface.Clear()
		return
	}
	s = s.Normalize()
	c.fit()

	dst := c.surface.Image()
	sb := c.src.Bounds()
	if sb.Size() == dst.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), c.src, sb.Min, draw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), c.src, sb, xdraw.Src, nil)
	}

	bands := Layout(SplitLines(text), s.BandHeight, c.surface.Height())
	if len(bands) == 0 {
		return
	}

	face, err := c.faces.face(s.FontSize)
	if err != nil {
		// Bands still go down; only the lettering is lost.
		c.logger.Error("caption font unavailable", "err", err)
	}

	// A band whose bottom edge and lettering both sit above row 0 leaves no
	// trace. Row 0 itself still counts: a divider there is visible.
	reach := s.FontSize + s.StrokeWidth()
	width := c.surface.Width()
	for _, b := range bands {
		if b.Bottom() < 0 && b.CenterY()+reach < 0 {
			continue
		}
		c.surface.fillRect(image.Rect(0, b.Top, width, b.Bottom()), bandColor)
		if b.DividerAbove {
			c.surface.hline(b.Top, dividerColor)
		}
		if b.DividerBelow {
			c.surface.hline(b.Bottom(), dividerColor)
		}
		if face != nil {
			drawOutlinedText(dst, face, b.Text, width/2, b.CenterY(), s.FontColor, s.StrokeColor, s.StrokeWidth())
		}
	}
}

// PNG encodes the current surface.
func (c *Compositor) PNG() ([]byte, error) {
	if c.surface.Empty() {
		return nil, ErrEmptySurface
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.surface.Image()); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL encodes the current surface as a data:image/png URI.
func (c *Compositor) DataURL() (string, error) {
	data, err := c.PNG()
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Close releases cached font faces.
func (c *Compositor) Close() error {
	c.faces.close()
	return nil
}
