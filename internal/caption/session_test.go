package caption

import (
	"bytes"
	"errors"
	"image/png"
	"sync/atomic"
	"testing"
	"time"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(w, h, gray)); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestSessionRendersOnLoad(t *testing.T) {
	var renders atomic.Int32
	s := NewSession(New(), OnRender(func(*Compositor) { renders.Add(1) }))
	defer s.Close()

	if _, err := s.Export(); !errors.Is(err, ErrEmptySurface) {
		t.Fatalf("Export() before load error = %v, want ErrEmptySurface", err)
	}

	if err := s.LoadImage(encodePNG(t, 40, 30)); err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	if got := renders.Load(); got != 1 {
		t.Errorf("renders after load = %d, want 1", got)
	}

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("exported %v, want 40x30", img.Bounds())
	}
}

func TestSessionDebouncesUpdates(t *testing.T) {
	var renders atomic.Int32
	s := NewSession(New(),
		WithDebounce(15*time.Millisecond),
		OnRender(func(*Compositor) { renders.Add(1) }),
	)
	defer s.Close()

	if err := s.LoadImage(encodePNG(t, 40, 30)); err != nil {
		t.Fatal(err)
	}
	for _, h := range []string{"1", "12", "12", "20"} {
		s.Update(RawSettings{BandHeight: h}, "caption")
	}
	time.Sleep(100 * time.Millisecond)

	if got := renders.Load(); got != 2 {
		t.Errorf("renders = %d, want 2 (load + one debounced)", got)
	}
}

func TestSessionGenerateAndFlush(t *testing.T) {
	var last atomic.Int32
	s := NewSession(New(),
		WithDebounce(time.Hour),
		OnRender(func(c *Compositor) { last.Store(int32(c.Surface().Height())) }),
	)
	defer s.Close()

	if err := s.LoadImage(encodePNG(t, 2000, 800)); err != nil {
		t.Fatal(err)
	}
	if got := last.Load(); got != 400 {
		t.Errorf("surface height = %d, want 400", got)
	}

	s.Update(RawSettings{}, "pending")
	if !s.Flush() {
		t.Error("Flush() found nothing pending")
	}
	s.Generate()
}

func TestSessionBadImage(t *testing.T) {
	s := NewSession(New())
	defer s.Close()
	if err := s.LoadImage(bytes.NewBufferString("garbage")); err == nil {
		t.Fatal("LoadImage() of garbage should fail")
	}
}

func TestSessionCloseStopsRenders(t *testing.T) {
	var renders atomic.Int32
	s := NewSession(New(), OnRender(func(*Compositor) { renders.Add(1) }))
	if err := s.LoadImage(encodePNG(t, 20, 20)); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// A timer that fired just before Close lands here.
	s.Generate()
	if got := renders.Load(); got != 1 {
		t.Errorf("renders = %d, want only the one from LoadImage", got)
	}
}
