package caption

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   \n\t\n  ", nil},
		{"Line A\n\nLine B", []string{"Line A", "Line B"}},
		{"  first  \r\n\r\n second\r\n", []string{"first", "second"}},
		{"one", []string{"one"}},
		{"a\nb\nc", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		if got := SplitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitLinesComposesAccents(t *testing.T) {
	got := SplitLines("Cafe\u0301\n")
	if len(got) != 1 || got[0] != "Caf\u00e9" {
		t.Errorf("SplitLines() = %q, want composed \u00e9", got)
	}
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{2000, 1000, 1000, 500},
		{1000, 700, 1000, 700},
		{640, 480, 640, 480},
		{3000, 1001, 1000, 334},
		{1001, 1, 1000, 1},
	}
	for _, tt := range tests {
		w, h := FitSize(tt.w, tt.h, DefaultMaxWidth)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("FitSize(%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestLayoutBottomAnchored(t *testing.T) {
	bands := Layout([]string{"Line A", "Line B"}, 40, 500)
	if len(bands) != 2 {
		t.Fatalf("got %d bands, want 2", len(bands))
	}

	if bands[0].Top != 420 || bands[0].Bottom() != 460 {
		t.Errorf("first band spans [%d,%d), want [420,460)", bands[0].Top, bands[0].Bottom())
	}
	if bands[1].Top != 460 || bands[1].Bottom() != 500 {
		t.Errorf("second band spans [%d,%d), want [460,500)", bands[1].Top, bands[1].Bottom())
	}

	// The only divider is the shared edge at y=460.
	if bands[0].DividerAbove || !bands[0].DividerBelow {
		t.Errorf("first band dividers above=%v below=%v", bands[0].DividerAbove, bands[0].DividerBelow)
	}
	if !bands[1].DividerAbove || bands[1].DividerBelow {
		t.Errorf("second band dividers above=%v below=%v", bands[1].DividerAbove, bands[1].DividerBelow)
	}

	if got := bands[0].CenterY(); got != 440 {
		t.Errorf("CenterY = %d, want 440", got)
	}
}

func TestLayoutBandCountMatchesLines(t *testing.T) {
	inputs := []string{"", "x", "x\ny", "x\n\n\ny\n \nz", strings.Repeat("line\n", 12)}
	for _, in := range inputs {
		lines := SplitLines(in)
		bands := Layout(lines, 30, 200)
		if len(bands) != len(lines) {
			t.Errorf("%q: %d bands for %d lines", in, len(bands), len(lines))
		}
		if len(bands) > 0 {
			if last := bands[len(bands)-1]; last.Bottom() != 200 {
				t.Errorf("%q: last band bottom = %d, want 200", in, last.Bottom())
			}
			if first := bands[0]; first.Top != 200-30*len(lines) {
				t.Errorf("%q: first band top = %d, want %d", in, first.Top, 200-30*len(lines))
			}
		}
	}
}

func TestLayoutOverflowsTop(t *testing.T) {
	bands := Layout([]string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}, 100, 500)
	if bands[0].Top != -500 {
		t.Errorf("first band top = %d, want -500", bands[0].Top)
	}
}
