package uikit

import "testing"

func TestCarouselWraparound(t *testing.T) {
	tests := []struct {
		name     string
		setWidth float64
		steps    []float64
		want     float64
	}{
		{"no wrap below threshold", 100, []float64{50, 49}, 99},
		{"exactly at threshold resets to set width", 100, []float64{100, 100}, 100},
		{"past threshold resets to set width", 100, []float64{150, 60}, 100},
		{"keeps advancing after reset", 100, []float64{150, 60, 30}, 130},
		{"large single step", 100, []float64{500}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCarousel(tt.setWidth)
			for _, dx := range tt.steps {
				c.Advance(dx)
			}
			if got := c.Offset(); got != tt.want {
				t.Errorf("Offset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCarouselHoverPauses(t *testing.T) {
	c := NewCarousel(100)
	c.Advance(10)
	c.SetHovered(true)
	c.Advance(10)
	if got := c.Offset(); got != 10 {
		t.Errorf("Offset() = %v, want 10 while hovered", got)
	}
	c.SetHovered(false)
	c.Advance(10)
	if got := c.Offset(); got != 20 {
		t.Errorf("Offset() = %v, want 20 after resume", got)
	}
}

func TestCarouselResizeKeepsOffsetInBand(t *testing.T) {
	c := NewCarousel(100)
	c.Advance(180)
	c.Resize(50)
	if got := c.Offset(); got != 50 {
		t.Errorf("Offset() = %v, want 50 after shrink", got)
	}
}

func TestTripleCount(t *testing.T) {
	if got := TripleCount(7); got != 21 {
		t.Errorf("TripleCount(7) = %d, want 21", got)
	}
}
