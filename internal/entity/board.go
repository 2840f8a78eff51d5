package entity

import (
	"fmt"

	"github.com/rocketscienceinc/mnkgame/internal/apperror"
)

// Board is an immutable R×C snapshot of an m,n,k-game.
// Cells are stored row-major: the cell (x, y) lives at index x*cols + y.
// A Board is never modified after construction, so the same value can be
// held by the current game state and any number of history entries.
type Board struct {
	rows  int
	cols  int
	k     int
	cells []Mark
}

// NewBoard creates an empty board. A k larger than both dimensions is legal,
// such a board simply can never be won.
func NewBoard(rows, cols, k int) (Board, error) {
	if rows <= 0 || cols <= 0 || k < 1 {
		return Board{}, fmt.Errorf("%w: rows=%d cols=%d k=%d", apperror.ErrInvalidBoard, rows, cols, k)
	}

	return Board{
		rows:  rows,
		cols:  cols,
		k:     k,
		cells: make([]Mark, rows*cols),
	}, nil
}

func (that Board) Rows() int { return that.rows }

func (that Board) Cols() int { return that.cols }

// K is the number of contiguous marks needed to win.
func (that Board) K() int { return that.k }

// Size is the total number of cells.
func (that Board) Size() int { return len(that.cells) }

// Contains reports whether (x, y) lies on the board.
func (that Board) Contains(x, y int) bool {
	return x >= 0 && x < that.rows && y >= 0 && y < that.cols
}

// Cell returns the mark at (x, y) or ErrOutOfRange.
func (that Board) Cell(x, y int) (Mark, error) {
	if !that.Contains(x, y) {
		return Empty, fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfRange, x, y)
	}

	return that.cells[that.index(x, y)], nil
}

// WithMove returns a copy of the board with (x, y) set to mark.
// It does not check whether the move is legal; callers validate first.
func (that Board) WithMove(x, y int, mark Mark) Board {
	cells := make([]Mark, len(that.cells))
	copy(cells, that.cells)
	cells[that.index(x, y)] = mark

	return Board{
		rows:  that.rows,
		cols:  that.cols,
		k:     that.k,
		cells: cells,
	}
}

// EmptyCells counts the cells nobody has marked yet.
func (that Board) EmptyCells() int {
	count := 0
	for _, cell := range that.cells {
		if cell == Empty {
			count++
		}
	}

	return count
}

func (that Board) index(x, y int) int {
	return x*that.cols + y
}
