package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/mnkgame/internal/apperror"
	"github.com/rocketscienceinc/mnkgame/internal/entity"
	"github.com/rocketscienceinc/mnkgame/internal/tictactoe"
)

const (
	msgTurn        = "It's player %s's turn to play.\nPlease enter your move:\n"
	msgFormat      = "Please input in format of : 'x, y', or input 'undo' to undo previous steps.\n"
	msgOutOfRange  = "Illegal Input. Please try again.\n"
	msgOccupied    = "Cell is not empty. Please try again.\n"
	msgNothingUndo = "Nothing to undo.\n"
	msgRecorded    = "That game has been recorded. Type 'new' to start another one.\n"
	msgWon         = "Congrats! Player %s has won!\n"
	msgDraw        = "Draw.\n"
	msgGameOver    = "Type 'undo' to take the last move back, 'new' for another game or 'quit' to leave.\n"
	msgScore       = "X wins: %d, O wins: %d, draws: %d\n"
	msgBye         = "Bye.\n"
	msgHelp        = `Commands:
  x,y    mark row x, column y
  undo   take back the last move
  new    start a new game
  score  show results of finished games
  help   show this help
  quit   leave the game
`
)

type gameManager interface {
	NewGame(ctx context.Context) (*tictactoe.Game, error)
	Game() *tictactoe.Game
	Play(x, y int) (entity.Outcome, error)
	Undo() error
	Finish(ctx context.Context) error
	Tally(ctx context.Context) (*entity.Tally, error)
}

// REPL reads commands line by line, drives the game manager and prints the board.
type REPL struct {
	logger  *slog.Logger
	manager gameManager
	out     io.Writer

	handlers map[string]func(ctx context.Context) (bool, error)
}

func New(logger *slog.Logger, manager gameManager, out io.Writer) *REPL {
	repl := &REPL{
		logger:  logger.With("component", "cli"),
		manager: manager,
		out:     out,

		handlers: make(map[string]func(context.Context) (bool, error)),
	}

	repl.handlers["undo"] = repl.handleUndo
	repl.handlers["new"] = repl.handleNew
	repl.handlers["score"] = repl.handleScore
	repl.handlers["help"] = repl.handleHelp
	repl.handlers["quit"] = repl.handleQuit
	repl.handlers["exit"] = repl.handleQuit

	return repl
}

// Run plays until the input ends, the user quits or ctx is canceled.
// A finished game is recorded before Run returns.
func (that *REPL) Run(ctx context.Context, in io.Reader) error {
	log := that.logger.With("method", "Run")

	if that.manager.Game() == nil {
		if _, err := that.manager.NewGame(ctx); err != nil {
			return fmt.Errorf("failed to start game: %w", err)
		}
	}

	if err := that.showBoard(); err != nil {
		return err
	}

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines, readErr := readLines(readCtx, in)

	for {
		select {
		case <-ctx.Done():
			log.Info("input canceled", "reason", ctx.Err())
			return that.finish(context.WithoutCancel(ctx))
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}

				log.Info("input closed")
				return that.finish(ctx)
			}

			stop, err := that.handleLine(ctx, line)
			if err != nil {
				return err
			}

			if stop {
				return nil
			}
		}
	}
}

// readLines - feeds input lines into a channel so Run can also watch ctx.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		readErr <- scanner.Err()
	}()

	return lines, readErr
}

func (that *REPL) handleLine(ctx context.Context, line string) (bool, error) {
	command := strings.ToLower(strings.TrimSpace(line))
	if command == "" {
		return false, that.showTurn()
	}

	if handler, ok := that.handlers[command]; ok {
		return handler(ctx)
	}

	x, y, err := ParseMove(command)
	if err != nil {
		that.logger.Debug("unrecognized input", "line", line, "error", err)
		return false, that.print(msgFormat)
	}

	return false, that.play(x, y)
}

func (that *REPL) play(x, y int) error {
	outcome, err := that.manager.Play(x, y)

	switch {
	case errors.Is(err, apperror.ErrOutOfRange):
		return that.print(msgOutOfRange)
	case errors.Is(err, apperror.ErrCellOccupied):
		return that.print(msgOccupied)
	case errors.Is(err, apperror.ErrGameFinished):
		return that.print(msgGameOver)
	case err != nil:
		return fmt.Errorf("failed to play: %w", err)
	}

	if err = Render(that.out, that.manager.Game().Board()); err != nil {
		return err
	}

	if outcome.IsFinished() {
		return that.announce(outcome)
	}

	return that.showTurn()
}

func (that *REPL) handleUndo(_ context.Context) (bool, error) {
	err := that.manager.Undo()

	switch {
	case errors.Is(err, apperror.ErrEmptyHistory):
		return false, that.print(msgNothingUndo)
	case errors.Is(err, apperror.ErrGameFinished):
		return false, that.print(msgRecorded)
	case err != nil:
		return false, fmt.Errorf("failed to undo: %w", err)
	}

	return false, that.showBoard()
}

func (that *REPL) handleNew(ctx context.Context) (bool, error) {
	if _, err := that.manager.NewGame(ctx); err != nil {
		that.logger.Error("failed to start new game", "error", err)
		return false, that.print("Could not start a new game: %v\n", err)
	}

	return false, that.showBoard()
}

func (that *REPL) handleScore(ctx context.Context) (bool, error) {
	tally, err := that.manager.Tally(ctx)
	if err != nil {
		that.logger.Error("failed to get tally", "error", err)
		return false, that.print("Could not load the score: %v\n", err)
	}

	return false, that.print(msgScore, tally.WinsX, tally.WinsO, tally.Draws)
}

func (that *REPL) handleHelp(_ context.Context) (bool, error) {
	return false, that.print(msgHelp)
}

func (that *REPL) handleQuit(ctx context.Context) (bool, error) {
	if err := that.finish(ctx); err != nil {
		return true, err
	}

	return true, that.print(msgBye)
}

func (that *REPL) finish(ctx context.Context) error {
	if err := that.manager.Finish(ctx); err != nil {
		return fmt.Errorf("failed to record game: %w", err)
	}

	return nil
}

// showBoard prints the board followed by the turn prompt or the final result.
func (that *REPL) showBoard() error {
	game := that.manager.Game()

	if err := Render(that.out, game.Board()); err != nil {
		return err
	}

	if outcome := game.Outcome(); outcome.IsFinished() {
		return that.announce(outcome)
	}

	return that.showTurn()
}

func (that *REPL) showTurn() error {
	game := that.manager.Game()
	if game.Outcome().IsFinished() {
		return that.print(msgGameOver)
	}

	return that.print(msgTurn, game.ActivePlayer())
}

func (that *REPL) announce(outcome entity.Outcome) error {
	var err error
	if outcome.IsDraw() {
		err = that.print(msgDraw)
	} else {
		err = that.print(msgWon, outcome.Winner)
	}

	if err != nil {
		return err
	}

	return that.print(msgGameOver)
}

func (that *REPL) print(format string, args ...any) error {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
