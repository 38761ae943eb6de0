package caption

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SplitLines breaks caption text on LF or CRLF, trims every line and drops the
// ones left empty. The result is in rendering order.
func SplitLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(norm.NFC.String(text), "\n") {
		l = strings.TrimSpace(strings.TrimSuffix(l, "\r"))
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// FitSize scales (w, h) down proportionally so the width does not exceed
// maxWidth. Narrower sizes are returned unchanged.
func FitSize(w, h, maxWidth int) (int, int) {
	if maxWidth <= 0 || w <= maxWidth {
		return w, h
	}
	scale := float64(maxWidth) / float64(w)
	return int(math.Round(float64(w) * scale)), int(math.Round(float64(h) * scale))
}

// Band is one caption line's translucent strip.
type Band struct {
	Index  int
	Top    int
	Height int
	Text   string

	// Divider flags mark the thin separators shared with neighbouring bands.
	DividerAbove bool
	DividerBelow bool
}

func (b Band) Bottom() int { return b.Top + b.Height }

// CenterY is the vertical middle of the band, rounded down for odd heights.
func (b Band) CenterY() int { return b.Top + b.Height/2 }

// Layout stacks one band per line so that the block's bottom edge sits on
// surfaceHeight. Tall blocks run off the top of the surface; that is kept.
func Layout(lines []string, bandHeight, surfaceHeight int) []Band {
	if len(lines) == 0 {
		return nil
	}
	startY := surfaceHeight - bandHeight*len(lines)
	bands := make([]Band, len(lines))
	for i, text := range lines {
		bands[i] = Band{
			Index:        i,
			Top:          startY + i*bandHeight,
			Height:       bandHeight,
			Text:         text,
			DividerAbove: i > 0,
			DividerBelow: i < len(lines)-1,
		}
	}
	return bands
}
