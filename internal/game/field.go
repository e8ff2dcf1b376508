package game

import "math"

// Playfield geometry, in world units.
const (
	Width            = 600.0
	Height           = 400.0
	PaddleHalfHeight = 40.0
	PaddleInset      = 30.0
	BallRadius       = 8.0
)

// Match rules.
const (
	WinScore        = 5
	InitialSpeed    = 5.0
	SpeedMultiplier = 1.05
	MaxSpeed        = 30.0
	// MaxDeflection is the largest paddle bounce offset, in degrees.
	MaxDeflection = 30.0
)

const (
	MinPaddleY = PaddleHalfHeight
	MaxPaddleY = Height - PaddleHalfHeight
	// StartY is where paddles sit after a reset.
	StartY = Height / 2
)

// ClampPaddle keeps a paddle centre fully inside the field.
func ClampPaddle(y float64) float64 {
	return math.Max(MinPaddleY, math.Min(MaxPaddleY, y))
}
