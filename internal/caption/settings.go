package caption

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultBandHeight = 40
	MinBandHeight     = 10
	MaxBandHeight     = 300

	DefaultFontSize = 20
	MinFontSize     = 10
	MaxFontSize     = 120

	// DefaultMaxWidth is the widest surface the compositor will produce.
	DefaultMaxWidth = 1000

	// ExportFilename is the name offered for downloaded renders.
	ExportFilename = "generated_image.png"
)

var (
	White = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black = color.NRGBA{A: 0xff}
)

// Settings are the resolved caption controls used by a render pass.
type Settings struct {
	BandHeight  int
	FontSize    int
	FontColor   color.NRGBA
	StrokeColor color.NRGBA
}

// DefaultSettings returns 40px bands, 20px text, white fill and black outline.
func DefaultSettings() Settings {
	return Settings{
		BandHeight:  DefaultBandHeight,
		FontSize:    DefaultFontSize,
		FontColor:   White,
		StrokeColor: Black,
	}
}

// RawSettings holds the controls exactly as the user typed them.
type RawSettings struct {
	BandHeight  string `form:"band_height" yaml:"band_height"`
	FontSize    string `form:"font_size" yaml:"font_size"`
	FontColor   string `form:"font_color" yaml:"font_color"`
	StrokeColor string `form:"stroke_color" yaml:"stroke_color"`
}

// Resolve turns raw control values into usable settings. Nothing is rejected:
// missing or non-numeric sizes fall back to defaults, out of range sizes are
// clamped and unparseable colors fall back to white/black.
func (r RawSettings) Resolve() Settings {
	return Settings{
		BandHeight:  resolveInt(r.BandHeight, DefaultBandHeight, MinBandHeight, MaxBandHeight),
		FontSize:    resolveInt(r.FontSize, DefaultFontSize, MinFontSize, MaxFontSize),
		FontColor:   ParseColor(r.FontColor, White),
		StrokeColor: ParseColor(r.StrokeColor, Black),
	}
}

// Normalize clamps already numeric settings into range.
func (s Settings) Normalize() Settings {
	s.BandHeight = Clamp(s.BandHeight, MinBandHeight, MaxBandHeight)
	s.FontSize = Clamp(s.FontSize, MinFontSize, MaxFontSize)
	return s
}

// StrokeWidth is the outline width for the configured font size.
func (s Settings) StrokeWidth() int {
	w := (s.FontSize*2 + 12) / 24 // round(fontSize/12) for positive sizes
	if w < 1 {
		return 1
	}
	return w
}

func Clamp(v, lo, hi int) int {
	return min(hi, max(lo, v))
}

func resolveInt(raw string, def, lo, hi int) int {
	v, ok := parseLeadingInt(raw)
	if !ok {
		v = def
	}
	return Clamp(v, lo, hi)
}

// parseLeadingInt reads an optionally signed run of decimal digits at the
// start of s, ignoring whatever follows ("25px" is 25, "12.9" is 12).
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		// out of range; clamping only needs the sign
		if s[0] == '-' {
			return math.MinInt32, true
		}
		return math.MaxInt32, true
	}
	return v, true
}

// ParseColor accepts "#rgb" and "#rrggbb" (the leading hash is optional).
func ParseColor(s string, fallback color.NRGBA) color.NRGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return fallback
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// Hex formats a color the way the tool's color pickers expect it.
func Hex(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
