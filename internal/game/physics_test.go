package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hersh/gopong/internal/player"
)

// fixedRand returns the same draw every time.
type fixedRand struct {
	f float64
	i int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int   { return r.i % n }

func newPaddles() (*player.Player, *player.Player) {
	return player.New("l", "Ann", StartY), player.New("r", "Bo", StartY)
}

func TestClampPaddle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-100, 40},
		{0, 40},
		{40, 40},
		{200, 200},
		{360, 360},
		{361, 360},
		{1e9, 360},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampPaddle(tt.in), "input %v", tt.in)
	}
}

func TestStepAdvancesBall(t *testing.T) {
	left, right := newPaddles()
	b := NewBall()
	b.DX, b.DY = 3, -2

	out := Step(&b, left, right, NewServePicker(fixedRand{}), fixedRand{})

	assert.Equal(t, Outcome{}, out)
	assert.Equal(t, 303.0, b.X)
	assert.Equal(t, 198.0, b.Y)
}

func TestStepReflectsOffWalls(t *testing.T) {
	left, right := newPaddles()

	top := NewBall()
	top.Y, top.DY = 10, -4
	Step(&top, left, right, NewServePicker(fixedRand{}), fixedRand{})
	assert.Equal(t, 4.0, top.DY)
	assert.Equal(t, 6.0, top.Y, "no position correction on reflection")

	bottom := NewBall()
	bottom.Y, bottom.DY = 390, 4
	Step(&bottom, left, right, NewServePicker(fixedRand{}), fixedRand{})
	assert.Equal(t, -4.0, bottom.DY)
}

func TestStepLeftPaddleSendsBallRight(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		left, right := newPaddles()
		b := NewBall()
		b.X, b.Y, b.DX, b.DY = 40, 210, -5, 0

		out := Step(&b, left, right, NewServePicker(rng), rng)

		require.Equal(t, SideLeft, out.Bounced)
		assert.Greater(t, b.DX, 0.0)
		assert.Equal(t, PaddleInset+BallRadius+1, b.X)
		assert.InDelta(t, InitialSpeed*SpeedMultiplier, b.Speed, 1e-9)
		assert.InDelta(t, b.Speed, math.Hypot(b.DX, b.DY), 1e-9)
		angle := math.Atan2(b.DY, b.DX) * 180 / math.Pi
		assert.LessOrEqual(t, math.Abs(angle), MaxDeflection+1e-9)
	}
}

func TestStepRightPaddleSendsBallLeft(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		left, right := newPaddles()
		b := NewBall()
		b.X, b.Y, b.DX, b.DY = 560, 190, 5, 1

		out := Step(&b, left, right, NewServePicker(rng), rng)

		require.Equal(t, SideRight, out.Bounced)
		assert.Less(t, b.DX, 0.0)
		assert.Equal(t, Width-PaddleInset-BallRadius-1, b.X)
	}
}

func TestStepMissesPaddleOutsideWindow(t *testing.T) {
	left, right := newPaddles()
	left.Y = 300
	b := NewBall()
	b.X, b.Y, b.DX = 40, 200, -5

	out := Step(&b, left, right, NewServePicker(fixedRand{}), fixedRand{})

	assert.Equal(t, SideNone, out.Bounced)
	assert.Less(t, b.DX, 0.0)
}

func TestDeflectSpeedIsMonotonicAndCapped(t *testing.T) {
	b := NewBall()
	prev := b.Speed
	for i := 0; i < 100; i++ {
		deflect(&b, 0, fixedRand{f: 0.5})
		assert.GreaterOrEqual(t, b.Speed, prev)
		assert.LessOrEqual(t, b.Speed, MaxSpeed)
		prev = b.Speed
	}
	assert.Equal(t, MaxSpeed, b.Speed)
}

func TestStepScoresWhenBallLeavesLeft(t *testing.T) {
	left, right := newPaddles()
	left.Y = MinPaddleY
	b := NewBall()
	b.X, b.Y, b.DX = 3, 300, -5

	out := Step(&b, left, right, NewServePicker(fixedRand{}), fixedRand{})

	assert.Equal(t, SideRight, out.Scorer)
	assert.Equal(t, SideNone, out.Winner)
	assert.Equal(t, 1, right.Score)
	assert.Zero(t, left.Score)
	assert.Equal(t, Width/2, b.X)
	assert.Equal(t, Height/2, b.Y)
	assert.Less(t, b.DX, 0.0, "serve goes toward the side that conceded")
	assert.Equal(t, InitialSpeed, b.Speed)
}

func TestStepScoresWhenBallLeavesRight(t *testing.T) {
	left, right := newPaddles()
	right.Y = MaxPaddleY
	b := NewBall()
	b.X, b.Y, b.DX, b.Speed = 597, 100, 6, 12

	out := Step(&b, left, right, NewServePicker(fixedRand{}), fixedRand{})

	assert.Equal(t, SideLeft, out.Scorer)
	assert.Equal(t, 1, left.Score)
	assert.Greater(t, b.DX, 0.0)
	assert.Equal(t, InitialSpeed, b.Speed)
}

func TestStepWinHaltsBall(t *testing.T) {
	left, right := newPaddles()
	left.Score = WinScore - 1
	right.Y = MaxPaddleY
	b := NewBall()
	b.X, b.Y, b.DX = 598, 100, 5

	out := Step(&b, left, right, NewServePicker(fixedRand{}), fixedRand{})

	assert.Equal(t, SideLeft, out.Scorer)
	assert.Equal(t, SideLeft, out.Winner)
	assert.True(t, Over(left, right))
	assert.Equal(t, Width/2, b.X)
	assert.Equal(t, Height/2, b.Y)
	assert.Zero(t, b.DX)
	assert.Zero(t, b.DY)
}

func TestStraightShotMeetsRightPaddle(t *testing.T) {
	left, right := newPaddles()
	b := NewBall()
	b.DX = 5
	rng := rand.New(rand.NewSource(1))
	serve := NewServePicker(rng)

	ticks := 0
	for ; ticks < 200; ticks++ {
		out := Step(&b, left, right, serve, rng)
		if out.Bounced != SideNone {
			require.Equal(t, SideRight, out.Bounced)
			break
		}
	}

	assert.Equal(t, 52, ticks, "x reaches 565 on the 53rd tick")
	assert.Less(t, b.DX, 0.0)
	assert.Equal(t, 561.0, b.X)
}

func TestStraightShotPastMovedPaddleScores(t *testing.T) {
	left, right := newPaddles()
	right.Y = MaxPaddleY
	b := NewBall()
	b.DX = 5
	rng := rand.New(rand.NewSource(1))
	serve := NewServePicker(rng)

	for i := 1; i <= 60; i++ {
		out := Step(&b, left, right, serve, rng)
		require.Equal(t, SideNone, out.Scorer, "tick %d", i)
	}
	assert.Equal(t, 600.0, b.X)

	out := Step(&b, left, right, serve, rng)
	assert.Equal(t, SideLeft, out.Scorer)
	assert.Equal(t, 1, left.Score)
}
