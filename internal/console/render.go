package console

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

func (that *Console) render() {
	that.printf("%s", Render(that.state))
}

// Render draws the board, the legend and the status line.
// Cells of a winning line are shown in brackets.
func Render(state *tictactoe.State) string {
	highlight := map[tictactoe.Coord]bool{}
	if line := state.Outcome.Line; line != nil {
		for _, c := range line.Cells {
			highlight[c] = true
		}
	}

	var sb strings.Builder

	sb.WriteString("\n     1   2   3\n")
	for row := range tictactoe.Size {
		fmt.Fprintf(&sb, "  %d ", row+1)
		for col := range tictactoe.Size {
			mark := string(state.Board[row][col])
			if mark == "" {
				mark = " "
			}

			if highlight[tictactoe.Coord{Row: row, Col: col}] {
				fmt.Fprintf(&sb, "[%s]", mark)
			} else {
				fmt.Fprintf(&sb, " %s ", mark)
			}

			if col < tictactoe.Size-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")

		if row < tictactoe.Size-1 {
			sb.WriteString("    ---+---+---\n")
		}
	}

	fmt.Fprintf(&sb, "\n%s: %s\n%s: %s\n",
		tictactoe.PlayerA.Name(), tictactoe.PlayerA,
		tictactoe.PlayerB.Name(), tictactoe.PlayerB,
	)
	sb.WriteString(Status(state))
	sb.WriteString("\n")

	return sb.String()
}

// Status is the one line summary shown under the board.
func Status(state *tictactoe.State) string {
	switch state.Outcome.Status {
	case tictactoe.StatusWin:
		winner := state.Outcome.Winner
		return fmt.Sprintf("%s (%q) Wins! (%s)", winner.Name(), string(winner), state.Outcome.Line.ID)
	case tictactoe.StatusDraw:
		return "It's a Draw!"
	default:
		return fmt.Sprintf("%s's Turn (%q)", state.Current.Name(), string(state.Current))
	}
}
