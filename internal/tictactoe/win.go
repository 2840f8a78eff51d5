package tictactoe

import "github.com/rocketscienceinc/mnkgame/internal/entity"

// directions are the four line axes: row, column, diagonal and anti-diagonal.
var directions = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// HasWin reports whether the mark at (x, y) completes a run of K equal marks.
//
// For every direction it walks the window of K-1 cells on each side of (x, y)
// and counts adjacent equal pairs. A broken pair resets the count; once the
// walk is past (x, y) a broken pair ends that direction, since no later run
// can contain the played cell. K-1 consecutive pairs mean K marks in a row.
func HasWin(board entity.Board, x, y int) bool {
	k := board.K()
	if k <= 1 {
		mark, err := board.Cell(x, y)
		return err == nil && mark.IsPlayer()
	}

	for _, dir := range directions {
		count := 0
		for i := -k + 1; i < k-1; i++ {
			if samePair(board, x+dir[0]*i, y+dir[1]*i, x+dir[0]*(i+1), y+dir[1]*(i+1)) {
				count++
			} else {
				count = 0
				if i > 0 {
					break
				}
			}

			if count == k-1 {
				return true
			}
		}
	}

	return false
}

// samePair reports whether both cells are on the board, marked and equal.
func samePair(board entity.Board, x1, y1, x2, y2 int) bool {
	current, err := board.Cell(x1, y1)
	if err != nil || !current.IsPlayer() {
		return false
	}

	next, err := board.Cell(x2, y2)
	if err != nil {
		return false
	}

	return current == next
}
