package game

import (
	"math"

	"github.com/hersh/gopong/internal/player"
)

type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return "none"
}

// Outcome reports what happened during one Step.
type Outcome struct {
	Scorer Side
	Winner Side
	// Bounced is set when the ball hit a paddle.
	Bounced Side
}

// Over reports whether either player has reached WinScore.
func Over(left, right *player.Player) bool {
	return left.Score >= WinScore || right.Score >= WinScore
}

// Step advances one tick of a running match: move, reflect off the walls and
// paddles, score, and check for a winner. On a win the ball is halted in the
// centre. Callers must not Step a match that is already Over.
func Step(b *Ball, left, right *player.Player, serve *ServePicker, rng Rand) Outcome {
	var out Outcome

	b.X += b.DX
	b.Y += b.DY

	if b.Y+b.Radius > Height || b.Y-b.Radius < 0 {
		b.DY = -b.DY
	}

	if b.X-b.Radius < PaddleInset && inPaddle(b.Y, left.Y) {
		deflect(b, 0, rng)
		b.X = PaddleInset + b.Radius + 1
		out.Bounced = SideLeft
	}
	if b.X+b.Radius > Width-PaddleInset && inPaddle(b.Y, right.Y) {
		deflect(b, 180, rng)
		b.X = Width - PaddleInset - b.Radius - 1
		out.Bounced = SideRight
	}

	switch {
	case b.X < 0:
		right.Score++
		out.Scorer = SideRight
		serve.Serve(b, -1)
	case b.X > Width:
		left.Score++
		out.Scorer = SideLeft
		serve.Serve(b, 1)
	}

	if Over(left, right) {
		out.Winner = SideRight
		if left.Score >= WinScore {
			out.Winner = SideLeft
		}
		b.Halt()
	}
	return out
}

func inPaddle(ballY, paddleY float64) bool {
	return ballY > paddleY-PaddleHalfHeight && ballY < paddleY+PaddleHalfHeight
}

// deflect speeds the ball up and sends it back along base degrees plus a
// random offset of up to MaxDeflection either way.
func deflect(b *Ball, base float64, rng Rand) {
	b.Speed = math.Min(b.Speed*SpeedMultiplier, MaxSpeed)
	offset := rng.Float64()*2*MaxDeflection - MaxDeflection
	b.Launch(base + offset)
}
