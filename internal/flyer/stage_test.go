package flyer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleFor(t *testing.T) {
	assert.Equal(t, 1.0, ScaleFor(1080))
	assert.Equal(t, 1.0, ScaleFor(2400))
	assert.Equal(t, 0.5, ScaleFor(540))
	assert.Equal(t, 0.0, ScaleFor(0))
	assert.Equal(t, 0.0, ScaleFor(-10))
	assert.Equal(t, 0.0, ScaleFor(math.NaN()))
}

func TestStageNotifiesOnChange(t *testing.T) {
	s := NewStage()
	var seen []float64
	s.OnChange(func(scale float64) { seen = append(seen, scale) })

	assert.Equal(t, 0.5, s.Observe(540))
	s.Observe(540)
	s.Observe(1200)
	s.Observe(1500)
	s.Observe(270)

	assert.Equal(t, []float64{0.5, 1, 0.25}, seen)

	w, h := s.DisplaySize()
	assert.Equal(t, 270.0, w)
	assert.Equal(t, 337.5, h)
}
