package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/mnkgame/internal/entity"
)

// Render writes the board with column numbers on top and row numbers on the right:
//
//	  0   1   2
//	 --- --- ---
//	 | X | O |   | 0
//	 --- --- ---
func Render(w io.Writer, board entity.Board) error {
	var sb strings.Builder

	for y := 0; y < board.Cols(); y++ {
		if y < 10 {
			fmt.Fprintf(&sb, "  %d ", y)
		} else {
			fmt.Fprintf(&sb, " %d ", y)
		}
	}
	sb.WriteString("\n")

	separator := strings.Repeat(" ---", board.Cols()) + "\n"
	sb.WriteString(separator)

	for x := 0; x < board.Rows(); x++ {
		for y := 0; y < board.Cols(); y++ {
			mark, err := board.Cell(x, y)
			if err != nil {
				return fmt.Errorf("failed to read cell: %w", err)
			}

			sb.WriteString(" | ")
			sb.WriteString(mark.String())
		}
		fmt.Fprintf(&sb, " | %d\n", x)
		sb.WriteString(separator)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}
