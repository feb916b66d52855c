package tictactoe

const Size = 3

// Mark is the content of a single cell and also identifies a player.
type Mark string

const (
	Empty   Mark = ""
	PlayerA Mark = "O"
	PlayerB Mark = "X"
)

// Opponent returns the other player's mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

// Name is the human readable player name used by the presentation layers.
func (that Mark) Name() string {
	switch that {
	case PlayerA:
		return "Player 1"
	case PlayerB:
		return "Player 2"
	default:
		return ""
	}
}

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWin        Status = "win"
	StatusDraw       Status = "draw"
)

// Coord addresses a cell, both values are in [0, Size).
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type LineID string

// Line is one of the eight winning triples.
type Line struct {
	ID    LineID   `json:"id"`
	Cells [3]Coord `json:"cells"`
}

// Outcome is the terminal or non-terminal status of a game.
// Winner and Line are only set when Status is StatusWin.
type Outcome struct {
	Status Status `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
	Line   *Line  `json:"line,omitempty"`
}

type Board [Size][Size]Mark

// Full reports whether no empty cell is left.
func (that *Board) Full() bool {
	return that.Count() == Size*Size
}

// Count returns the number of occupied cells.
func (that *Board) Count() int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell != Empty {
				count++
			}
		}
	}

	return count
}

// State holds everything the engine knows about one game.
type State struct {
	Board   Board   `json:"board"`
	Current Mark    `json:"current"`
	Outcome Outcome `json:"outcome"`
	Moves   int     `json:"moves"`
}
