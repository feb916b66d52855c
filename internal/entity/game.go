package entity

import (
	"time"

	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

// Game is a hosted play session around a single engine state.
type Game struct {
	ID        string          `json:"id"`
	State     tictactoe.State `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Version grows with every accepted move and restart.
	Version int64 `json:"version"`
}

func NewGame(id string, now time.Time) *Game {
	return &Game{
		ID:        id,
		State:     *tictactoe.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch - records a change of the state.
func (that *Game) Touch(now time.Time) {
	that.Version++
	that.UpdatedAt = now
}

func (that *Game) IsFinished() bool {
	return that.State.IsFinished()
}

func (that *Game) IsWon() bool {
	return that.State.Outcome.Status == tictactoe.StatusWin
}

func (that *Game) IsDraw() bool {
	return that.State.Outcome.Status == tictactoe.StatusDraw
}
