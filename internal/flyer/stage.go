package flyer

import (
	"math"
	"sync"
)

// ScaleFor returns the display scale that fits the canvas into width. The canvas is
// never enlarged; non-positive or NaN widths give 0.
func ScaleFor(width float64) float64 {
	if !(width > 0) {
		return 0
	}
	return math.Min(1, width/CanvasWidth)
}

// Stage tracks the container width and the derived display scale. Exports never
// read it.
type Stage struct {
	mu        sync.Mutex
	width     float64
	scale     float64
	listeners []func(scale float64)
}

func NewStage() *Stage {
	return &Stage{}
}

// OnChange registers fn to run whenever Observe changes the scale.
func (s *Stage) OnChange(fn func(scale float64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Observe records a new container width and returns the resulting scale.
// Listeners run outside the lock, only when the scale actually changed.
func (s *Stage) Observe(width float64) float64 {
	s.mu.Lock()
	s.width = width
	next := ScaleFor(width)
	changed := next != s.scale
	s.scale = next
	listeners := append([]func(float64){}, s.listeners...)
	s.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(next)
		}
	}
	return next
}

func (s *Stage) Scale() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scale
}

// DisplaySize is the on-screen box the scaled canvas occupies.
func (s *Stage) DisplaySize() (w, h float64) {
	scale := s.Scale()
	return CanvasWidth * scale, CanvasHeight * scale
}
