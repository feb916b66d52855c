package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

const helpText = `Commands:
  <row> <col>  place your mark, both from 1 to 3 (e.g. "2 3")
  r            restart the game
  h            show this help
  q            quit
`

var errQuit = errors.New("quit")

type botService interface {
	MakeTurn(state *tictactoe.State) (tictactoe.Coord, error)
}

// Console is a terminal presentation layer: it owns the input loop,
// translates commands into engine calls and renders the state read-only.
type Console struct {
	logger *slog.Logger
	in     io.Reader
	out    io.Writer

	state *tictactoe.State
	bot   botService
}

// New - bot plays Player 2 when not nil.
func New(logger *slog.Logger, in io.Reader, out io.Writer, bot botService) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		in:     in,
		out:    out,
		state:  tictactoe.New(),
		bot:    bot,
	}
}

// Run - plays until the input ends, the user quits or ctx is canceled.
func (that *Console) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	lines, readErr := that.readLines(done)

	that.printf("Tic Tac Toe\n%s\n", helpText)
	that.render()

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("console stopped: %w", err)
		}

		that.printf("> ")

		var line string
		var ok bool

		select {
		case <-ctx.Done():
			return fmt.Errorf("console stopped: %w", ctx.Err())
		case line, ok = <-lines:
		}

		if !ok {
			if err := <-readErr; err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		}

		err := that.handle(line)
		if errors.Is(err, errQuit) {
			that.printf("Bye!\n")
			return nil
		}

		if err != nil {
			that.printf("%s\n", describe(err))
		}
	}
}

// readLines - scans the input in the background until done is closed.
func (that *Console) readLines(done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}

		readErr <- scanner.Err()
	}()

	return lines, readErr
}

func (that *Console) handle(line string) error {
	fields := strings.Fields(strings.ToLower(line))

	switch {
	case len(fields) == 0:
		return nil
	case len(fields) == 1 && (fields[0] == "q" || fields[0] == "quit"):
		return errQuit
	case len(fields) == 1 && (fields[0] == "r" || fields[0] == "restart"):
		that.state.Reset()
		that.logger.Debug("game restarted")
		that.render()
		return nil
	case len(fields) == 1 && (fields[0] == "h" || fields[0] == "help"):
		that.printf("%s", helpText)
		return nil
	case len(fields) == 2:
		row, col, err := parseCell(fields[0], fields[1])
		if err != nil {
			return err
		}
		return that.move(row, col)
	default:
		return fmt.Errorf("%w: %q", apperror.ErrInvalidRequest, line)
	}
}

func (that *Console) move(row, col int) error {
	outcome, err := that.state.AttemptMove(row, col)
	if err != nil {
		return err
	}

	that.logger.Debug("move accepted", "row", row, "col", col, "status", outcome.Status)

	if that.bot != nil && !that.state.IsFinished() {
		cell, err := that.bot.MakeTurn(that.state)
		if err != nil {
			return fmt.Errorf("bot failed: %w", err)
		}
		that.printf("%s plays %d %d\n", tictactoe.PlayerB.Name(), cell.Row+1, cell.Col+1)
	}

	that.render()

	return nil
}

// parseCell translates 1-based user input to board coordinates.
func parseCell(rawRow, rawCol string) (int, int, error) {
	row, err := strconv.Atoi(rawRow)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: row %q is not a number", apperror.ErrInvalidRequest, rawRow)
	}

	col, err := strconv.Atoi(rawCol)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: col %q is not a number", apperror.ErrInvalidRequest, rawCol)
	}

	return row - 1, col - 1, nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, apperror.ErrOutOfBounds):
		return "That cell is off the board, use numbers from 1 to 3."
	case errors.Is(err, apperror.ErrCellOccupied):
		return "That cell is already taken."
	case errors.Is(err, apperror.ErrGameAlreadyOver):
		return `The game is over, press "r" to restart.`
	case errors.Is(err, apperror.ErrInvalidRequest):
		return `Unknown command, press "h" for help.`
	default:
		return err.Error()
	}
}

func (that *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.out, format, args...)
}
