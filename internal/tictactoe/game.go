package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/mnkgame/internal/apperror"
	"github.com/rocketscienceinc/mnkgame/internal/entity"
)

// Move is a cell coordinate on the board.
type Move struct {
	X int
	Y int
}

// Game is the turn and history state machine of one m,n,k-game.
// It is not safe for concurrent use; callers serialize Play and Undo.
type Game struct {
	board   entity.Board
	player  entity.Mark
	history []entity.Board
	moves   []Move
	outcome entity.Outcome
}

// NewGame starts a game on an empty rows×cols board, PlayerX to move.
func NewGame(rows, cols, k int) (*Game, error) {
	board, err := entity.NewBoard(rows, cols, k)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return &Game{
		board:   board,
		player:  entity.PlayerX,
		outcome: entity.Ongoing(),
	}, nil
}

// Play marks (x, y) for the active player and returns the resulting outcome.
// On any error the game is left unchanged.
func (that *Game) Play(x, y int) (entity.Outcome, error) {
	if that.outcome.IsFinished() {
		return that.outcome, apperror.ErrGameFinished
	}

	if err := that.validateMove(x, y); err != nil {
		return that.outcome, fmt.Errorf("invalid move: %w", err)
	}

	mover := that.player

	that.history = append(that.history, that.board)
	that.moves = append(that.moves, Move{X: x, Y: y})
	that.board = that.board.WithMove(x, y, mover)
	that.player = mover.Opponent()

	switch {
	case HasWin(that.board, x, y):
		that.outcome = entity.Won(mover)
	case that.IsFull():
		that.outcome = entity.Draw()
	default:
		that.outcome = entity.Ongoing()
	}

	return that.outcome, nil
}

// Undo restores the board from before the last move, including from a finished game.
func (that *Game) Undo() error {
	size := len(that.history)
	if size == 0 {
		return apperror.ErrEmptyHistory
	}

	that.board = that.history[size-1]
	that.history[size-1] = entity.Board{}
	that.history = that.history[:size-1]
	that.moves = that.moves[:size-1]
	that.player = that.player.Opponent()
	that.outcome = entity.Ongoing()

	return nil
}

// IsFull reports whether every cell has been marked.
func (that *Game) IsFull() bool {
	return that.Moves() == that.board.Size()
}

func (that *Game) Board() entity.Board { return that.board }

func (that *Game) Rows() int { return that.board.Rows() }

func (that *Game) Cols() int { return that.board.Cols() }

func (that *Game) K() int { return that.board.K() }

func (that *Game) Cell(x, y int) (entity.Mark, error) { return that.board.Cell(x, y) }

// ActivePlayer is the player whose turn it is.
func (that *Game) ActivePlayer() entity.Mark { return that.player }

// Moves is the number of marks on the board.
func (that *Game) Moves() int { return len(that.history) }

func (that *Game) HistoryLen() int { return len(that.history) }

func (that *Game) Outcome() entity.Outcome { return that.outcome }

// LastMove returns the most recent move, if any.
func (that *Game) LastMove() (Move, bool) {
	if len(that.moves) == 0 {
		return Move{}, false
	}

	return that.moves[len(that.moves)-1], true
}

// validateMove - checks that the target cell exists and is free.
func (that *Game) validateMove(x, y int) error {
	mark, err := that.board.Cell(x, y)
	if err != nil {
		return err
	}

	if mark != entity.Empty {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, x, y)
	}

	return nil
}
