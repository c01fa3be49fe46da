package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLane_Step(t *testing.T) {
	lane := DefaultLane()

	tests := []struct {
		name     string
		startY   float64
		dir      int
		dt       float64
		blocked  bool
		expected float64
		facing   Facing
	}{
		{"walk up", -2.0, 1, 0.1, false, -1.7, FacingUp},
		{"walk down", -2.0, -1, 0.1, false, -2.3, FacingDown},
		{"clamped at top", -1.0, 1, 1.0, false, DefaultMaxY, FacingUp},
		{"clamped at bottom", -2.5, -1, 1.0, false, DefaultMinY, FacingDown},
		{"blocked by dialogue", -2.0, 1, 0.1, true, -2.0, FacingDown},
		{"no input", -2.0, 0, 0.1, false, -2.0, FacingDown},
		{"direction magnitude ignored", -2.0, 5, 0.1, false, -1.7, FacingUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Player{Pos: Vec2{X: 0, Y: tt.startY}}
			lane.Step(p, tt.dir, tt.dt, tt.blocked)
			assert.InDelta(t, tt.expected, p.Pos.Y, 1e-9)
			assert.Equal(t, tt.facing, p.Facing)
			assert.Equal(t, 0.0, p.Pos.X)
		})
	}
}

func TestLane_Clamp(t *testing.T) {
	lane := Lane{MinY: -1, MaxY: 1}
	assert.Equal(t, -1.0, lane.Clamp(-5))
	assert.Equal(t, 1.0, lane.Clamp(5))
	assert.Equal(t, 0.5, lane.Clamp(0.5))
}

func TestInRange(t *testing.T) {
	merchant := Vec2{X: 0, Y: -0.95}
	assert.True(t, InRange(Vec2{X: 0, Y: -1.5}, merchant, DefaultInteractionDistance))
	assert.False(t, InRange(Vec2{X: 1.5, Y: 0}, Vec2{}, DefaultInteractionDistance), "exactly at the limit is out of range")
	assert.False(t, InRange(Vec2{X: 3, Y: -0.95}, merchant, DefaultInteractionDistance))
}
