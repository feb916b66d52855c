package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
)

const (
	LineRow0     LineID = "row-0"
	LineRow1     LineID = "row-1"
	LineRow2     LineID = "row-2"
	LineCol0     LineID = "col-0"
	LineCol1     LineID = "col-1"
	LineCol2     LineID = "col-2"
	LineDiagAsc  LineID = "diag-asc"
	LineDiagDesc LineID = "diag-desc"
)

// WinLines is checked in this order, the first complete line wins.
var WinLines = [8]Line{
	{ID: LineRow0, Cells: [3]Coord{{0, 0}, {0, 1}, {0, 2}}},
	{ID: LineRow1, Cells: [3]Coord{{1, 0}, {1, 1}, {1, 2}}},
	{ID: LineRow2, Cells: [3]Coord{{2, 0}, {2, 1}, {2, 2}}},
	{ID: LineCol0, Cells: [3]Coord{{0, 0}, {1, 0}, {2, 0}}},
	{ID: LineCol1, Cells: [3]Coord{{0, 1}, {1, 1}, {2, 1}}},
	{ID: LineCol2, Cells: [3]Coord{{0, 2}, {1, 2}, {2, 2}}},
	{ID: LineDiagAsc, Cells: [3]Coord{{2, 0}, {1, 1}, {0, 2}}},
	{ID: LineDiagDesc, Cells: [3]Coord{{0, 0}, {1, 1}, {2, 2}}},
}

// New returns a game with an empty board and PlayerA to move.
func New() *State {
	state := &State{}
	state.Reset()

	return state
}

// Reset - returns the state to its initial value.
func (that *State) Reset() {
	*that = State{
		Current: PlayerA,
		Outcome: Outcome{Status: StatusInProgress},
	}
}

// AttemptMove - places the current player's mark at (row, col) and evaluates the outcome.
// A rejected move leaves the state untouched.
func (that *State) AttemptMove(row, col int) (Outcome, error) {
	if err := validateMove(that, row, col); err != nil {
		return that.Outcome, fmt.Errorf("invalid turn: %w", err)
	}

	player := that.Current
	that.Board[row][col] = player
	that.Moves++

	updateGameStatus(that, player)

	return that.Outcome, nil
}

// QueryCell - returns the mark at (row, col).
func (that *State) QueryCell(row, col int) (Mark, error) {
	if !inBounds(row, col) {
		return Empty, fmt.Errorf("%w: row %d, col %d", apperror.ErrOutOfBounds, row, col)
	}

	return that.Board[row][col], nil
}

func (that *State) IsFinished() bool {
	return that.Outcome.Status != StatusInProgress
}

// Lines returns the winning lines in evaluation order.
func Lines() []Line {
	lines := WinLines
	return lines[:]
}

// validateMove - checks if the move is valid.
func validateMove(state *State, row, col int) error {
	if !inBounds(row, col) {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrOutOfBounds, row, col)
	}

	if state.IsFinished() {
		return apperror.ErrGameAlreadyOver
	}

	if state.Board[row][col] != Empty {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(state *State, player Mark) {
	if line, ok := completedLine(&state.Board, player); ok {
		state.Outcome = Outcome{Status: StatusWin, Winner: player, Line: &line}
		return
	}

	if state.Board.Full() {
		state.Outcome = Outcome{Status: StatusDraw}
		return
	}

	state.Current = player.Opponent()
}

func completedLine(board *Board, player Mark) (Line, bool) {
	for _, line := range WinLines {
		a, b, c := line.Cells[0], line.Cells[1], line.Cells[2]
		if board[a.Row][a.Col] == player && board[b.Row][b.Col] == player && board[c.Row][c.Col] == player {
			return line, true
		}
	}

	return Line{}, false
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}
