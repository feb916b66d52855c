package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-server/internal/service"
	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-server/testing/suite"
)

func run(t *testing.T, input string, bot botService) (*Console, string) {
	t.Helper()

	var out bytes.Buffer
	c := New(suite.NewLogger(), strings.NewReader(input), &out, bot)

	require.NoError(t, c.Run(context.Background()))

	return c, out.String()
}

func TestConsole_Win(t *testing.T) {
	// When: Player 1 takes the top row
	c, out := run(t, "1 1\n2 2\n1 2\n2 1\n1 3\n", nil)

	// Then: the win is announced with the line
	assert.Contains(t, out, `Player 1 ("O") Wins! (row-0)`)
	assert.Equal(t, tictactoe.StatusWin, c.state.Outcome.Status)
	assert.Contains(t, out, "[O]|[O]|[O]")
}

func TestConsole_Draw(t *testing.T) {
	c, out := run(t, "1 2\n1 1\n2 1\n1 3\n2 3\n2 2\n3 1\n3 2\n3 3\n", nil)

	assert.Contains(t, out, "It's a Draw!")
	assert.Equal(t, tictactoe.StatusDraw, c.state.Outcome.Status)
}

func TestConsole_RejectedInput(t *testing.T) {
	// Given: a mix of invalid commands and moves
	input := strings.Join([]string{
		"4 1",  // off the board
		"1 1",  // ok
		"1 1",  // taken
		"a b",  // not numbers
		"jump", // unknown
		"",     // ignored
		"h",    // help
	}, "\n") + "\n"

	// When: they are played
	c, out := run(t, input, nil)

	// Then: each gets a message and only the valid move counts
	assert.Contains(t, out, "That cell is off the board")
	assert.Contains(t, out, "That cell is already taken.")
	assert.Contains(t, out, `Unknown command, press "h" for help.`)
	assert.Equal(t, 1, c.state.Moves)
	assert.Equal(t, tictactoe.PlayerB, c.state.Current)
}

func TestConsole_GameOverAndRestart(t *testing.T) {
	// When: a move follows a win, then the game is restarted
	c, out := run(t, "1 1\n2 2\n1 2\n2 1\n1 3\n3 3\nr\n", nil)

	// Then: the extra move is refused and the board is empty again
	assert.Contains(t, out, `The game is over, press "r" to restart.`)
	assert.Equal(t, *tictactoe.New(), *c.state)
	assert.Contains(t, out[strings.LastIndex(out, "Wins!"):], `Player 1's Turn ("O")`)
}

func TestConsole_Quit(t *testing.T) {
	c, out := run(t, "2 2\nq\n1 1\n", nil)

	assert.Contains(t, out, "Bye!")
	assert.Equal(t, 1, c.state.Moves)
}

func TestConsole_Bot(t *testing.T) {
	// Given: a bot that always picks the first free cell
	bot := service.NewBotService(func(int) int { return 0 })

	// When: Player 1 takes the center
	c, out := run(t, "2 2\n", bot)

	// Then: the bot answers in the top left corner
	assert.Contains(t, out, "Player 2 plays 1 1")
	assert.Equal(t, tictactoe.PlayerB, c.state.Board[0][0])
	assert.Equal(t, tictactoe.PlayerA, c.state.Current)
}

func TestConsole_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(suite.NewLogger(), strings.NewReader("1 1\n"), &out, nil).Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
}

func TestConsole_CancelWhileWaitingForInput(t *testing.T) {
	// Given: a console waiting on input that never arrives
	reader, writer := io.Pipe()
	t.Cleanup(func() { _ = writer.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- New(suite.NewLogger(), reader, io.Discard, nil).Run(ctx)
	}()

	// When: the context is canceled
	cancel()

	// Then: Run returns without another line being typed
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("console did not stop after cancel")
	}
}

func TestStatus(t *testing.T) {
	state := tictactoe.New()
	assert.Equal(t, `Player 1's Turn ("O")`, Status(state))

	_, err := state.AttemptMove(0, 0)
	require.NoError(t, err)
	assert.Equal(t, `Player 2's Turn ("X")`, Status(state))
}
