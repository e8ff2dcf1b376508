package game

import "math"

// Serve angles are drawn from a fixed grid, in degrees.
const (
	ServeAngleMin  = -60
	ServeAngleMax  = 60
	ServeAngleStep = 10
	// ServeAngleGap is the minimum distance from the previous serve angle.
	ServeAngleGap = 15
)

// Rand is the subset of *math/rand.Rand used by the simulation.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// ServePicker remembers the last serve angle so consecutive serves never
// repeat the same trajectory.
type ServePicker struct {
	rng  Rand
	last float64
}

func NewServePicker(rng Rand) *ServePicker {
	return &ServePicker{rng: rng}
}

// Last returns the angle of the previous serve, 0 before the first one.
func (s *ServePicker) Last() float64 {
	return s.last
}

// NextAngle picks a grid angle more than ServeAngleGap away from the last one.
func (s *ServePicker) NextAngle() float64 {
	candidates := make([]float64, 0, (ServeAngleMax-ServeAngleMin)/ServeAngleStep+1)
	for a := ServeAngleMin; a <= ServeAngleMax; a += ServeAngleStep {
		if math.Abs(float64(a)-s.last) > ServeAngleGap {
			candidates = append(candidates, float64(a))
		}
	}
	angle := candidates[s.rng.Intn(len(candidates))]
	s.last = angle
	return angle
}

// Serve re-centres b at initial speed and launches it toward dir: -1 for the
// left side, +1 for the right side, 0 for a coin flip.
func (s *ServePicker) Serve(b *Ball, dir int) {
	if dir == 0 {
		dir = -1
		if s.rng.Float64() > 0.5 {
			dir = 1
		}
	}

	*b = NewBall()
	b.Launch(s.NextAngle())
	b.DX *= float64(dir)
}
