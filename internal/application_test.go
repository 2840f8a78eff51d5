package application

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/rocketscienceinc/mnkgame/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunApp(t *testing.T) {
	t.Run("Plays on a configured board", func(t *testing.T) {
		// Given: a 4x4 board needing 4 in a row, without redis
		conf := &config.Config{
			LogLevel: "error",
			Board:    config.Board{Rows: 4, Cols: 4, K: 4},
		}
		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
		input := "0,0\n1,0\n0,1\n1,1\n0,2\n1,2\n0,3\nscore\nnew\nscore\nquit\n"

		// When: the app runs
		var out bytes.Buffer
		err := RunApp(logger, conf, strings.NewReader(input), &out)

		// Then: X wins on row 0 and the result is counted after "new"
		require.NoError(t, err)
		assert.Contains(t, out.String(), "  0   1   2   3 \n")
		assert.Contains(t, out.String(), "Congrats! Player X has won!")
		assert.Contains(t, out.String(), "X wins: 0, O wins: 0, draws: 0")
		assert.Contains(t, out.String(), "X wins: 1, O wins: 0, draws: 0")
	})

	t.Run("Unreachable redis fails fast", func(t *testing.T) {
		conf := &config.Config{
			LogLevel: "error",
			Board:    config.Board{Rows: 3, Cols: 3, K: 3},
			Redis:    config.Redis{Enabled: true, Host: "127.0.0.1", Port: "1"},
		}
		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

		err := RunApp(logger, conf, strings.NewReader(""), io.Discard)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not connect to redis storage")
	})
}
