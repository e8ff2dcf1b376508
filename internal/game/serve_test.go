package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextAngleNeverRepeatsNeighbourhood(t *testing.T) {
	s := NewServePicker(rand.New(rand.NewSource(42)))

	prev := s.Last()
	for i := 0; i < 1000; i++ {
		a := s.NextAngle()
		assert.Greater(t, math.Abs(a-prev), float64(ServeAngleGap))
		assert.GreaterOrEqual(t, a, float64(ServeAngleMin))
		assert.LessOrEqual(t, a, float64(ServeAngleMax))
		assert.Zero(t, math.Mod(a, ServeAngleStep), "angle %v off grid", a)
		prev = a
	}
}

func TestNextAngleFirstServeSkipsFlat(t *testing.T) {
	// With no previous serve the excluded band is around 0: -10, 0, 10.
	seen := map[float64]bool{}
	s := NewServePicker(rand.New(rand.NewSource(3)))
	for i := 0; i < 200; i++ {
		s.last = 0
		seen[s.NextAngle()] = true
	}
	assert.False(t, seen[-10])
	assert.False(t, seen[0])
	assert.False(t, seen[10])
	assert.Len(t, seen, 10)
}

func TestServeDirection(t *testing.T) {
	tests := []struct {
		name string
		dir  int
		rng  fixedRand
		left bool
	}{
		{"toward left", -1, fixedRand{}, true},
		{"toward right", 1, fixedRand{}, false},
		{"coin flip right", 0, fixedRand{f: 0.9}, false},
		{"coin flip left", 0, fixedRand{f: 0.1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Ball{X: 12, Y: 34, Speed: 17}
			NewServePicker(tt.rng).Serve(&b, tt.dir)

			assert.Equal(t, Width/2, b.X)
			assert.Equal(t, Height/2, b.Y)
			assert.Equal(t, BallRadius, b.Radius)
			assert.Equal(t, InitialSpeed, b.Speed)
			assert.InDelta(t, InitialSpeed, math.Hypot(b.DX, b.DY), 1e-9)
			if tt.left {
				assert.Less(t, b.DX, 0.0)
			} else {
				assert.Greater(t, b.DX, 0.0)
			}
		})
	}
}
