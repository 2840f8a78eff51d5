package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedInput = errors.New("malformed input")

// ParseMove reads "x,y" (spaces allowed around either number) into a coordinate pair.
func ParseMove(line string) (int, int, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: expected two numbers, got %q", ErrMalformedInput, line)
	}

	coords := make([]int, 0, 2)
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q is not a number", ErrMalformedInput, strings.TrimSpace(part))
		}
		coords = append(coords, n)
	}

	return coords[0], coords[1], nil
}
