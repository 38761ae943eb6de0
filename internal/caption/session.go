package caption

import (
	"io"
	"sync"
	"time"
)

// Session is the interactive front of a Compositor: it keeps the current
// controls and caption text, renders immediately when an image arrives or a
// render is requested, and coalesces bursts of edits behind a debouncer.
type Session struct {
	mu       sync.Mutex
	comp     *Compositor
	raw      RawSettings
	text     string
	onRender func(*Compositor)
	closed   bool

	debounce *Debouncer
}

type SessionOption func(*Session)

// WithDebounce sets the quiet period for Update; the default is 200ms.
func WithDebounce(wait time.Duration) SessionOption {
	return func(s *Session) {
		s.debounce = NewDebouncer(wait, s.Generate)
	}
}

// OnRender registers a callback run after every render while the session lock
// is held. The callback may export from the compositor but must not call back
// into the session.
func OnRender(fn func(*Compositor)) SessionOption {
	return func(s *Session) { s.onRender = fn }
}

func NewSession(comp *Compositor, opts ...SessionOption) *Session {
	s := &Session{comp: comp}
	s.debounce = NewDebouncer(DefaultDebounce, s.Generate)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadImage decodes r as the new source and renders straight away.
func (s *Session) LoadImage(r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.comp.Decode(r); err != nil {
		return err
	}
	s.renderLocked()
	return nil
}

// Set records controls and text without rendering.
func (s *Session) Set(raw RawSettings, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
	s.text = text
}

// Update records new controls and text and schedules a debounced render.
func (s *Session) Update(raw RawSettings, text string) {
	s.Set(raw, text)
	s.debounce.Trigger()
}

// Generate renders with the current controls right away.
func (s *Session) Generate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderLocked()
}

// Export returns the PNG of the last render, or ErrEmptySurface.
func (s *Session) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comp.PNG()
}

// Flush runs a pending debounced render now.
func (s *Session) Flush() bool { return s.debounce.Flush() }

func (s *Session) Close() error {
	s.debounce.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.comp.Close()
}

// renderLocked is a no-op once the session is closed, so a timer that fired
// just before Close cannot refill the compositor.
func (s *Session) renderLocked() {
	if s.closed {
		return
	}
	s.comp.Render(s.raw.Resolve(), s.text)
	if s.onRender != nil {
		s.onRender(s.comp)
	}
}
