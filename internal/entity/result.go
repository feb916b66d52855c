package entity

import (
	"time"

	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

// Result is the record kept for every finished game.
type Result struct {
	GameID     string           `json:"game_id"`
	Status     tictactoe.Status `json:"status"`
	Winner     tictactoe.Mark   `json:"winner,omitempty"`
	Line       tictactoe.LineID `json:"line,omitempty"`
	Moves      int              `json:"moves"`
	FinishedAt time.Time        `json:"finished_at"`
}

// Stats aggregates all stored results.
type Stats struct {
	Games   int `json:"games"`
	PlayerA int `json:"player_a_wins"`
	PlayerB int `json:"player_b_wins"`
	Draws   int `json:"draws"`
}

// NewResult builds the result of a finished game. Nil is returned while the game is still running.
func NewResult(game *Game, finishedAt time.Time) *Result {
	if !game.IsFinished() {
		return nil
	}

	result := &Result{
		GameID:     game.ID,
		Status:     game.State.Outcome.Status,
		Winner:     game.State.Outcome.Winner,
		Moves:      game.State.Moves,
		FinishedAt: finishedAt,
	}

	if line := game.State.Outcome.Line; line != nil {
		result.Line = line.ID
	}

	return result
}
