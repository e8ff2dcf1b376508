package game

import "math"

type Ball struct {
	X, Y   float64
	DX, DY float64
	Radius float64
	// Speed is the scalar magnitude of (DX, DY) after the last serve or bounce.
	Speed float64
}

// NewBall returns an idle ball in the centre of the field.
func NewBall() Ball {
	return Ball{
		X:      Width / 2,
		Y:      Height / 2,
		Radius: BallRadius,
		Speed:  InitialSpeed,
	}
}

// Halt centres the ball and stops it.
func (b *Ball) Halt() {
	b.X = Width / 2
	b.Y = Height / 2
	b.DX = 0
	b.DY = 0
}

// Launch sets the velocity from the current speed and an angle in degrees.
func (b *Ball) Launch(angleDeg float64) {
	rad := angleDeg * math.Pi / 180
	b.DX = b.Speed * math.Cos(rad)
	b.DY = b.Speed * math.Sin(rad)
}
