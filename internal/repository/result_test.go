package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rocketscienceinc/mnkgame/internal/entity"
	"github.com/rocketscienceinc/mnkgame/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResult(id, status, winner string) *entity.Result {
	return &entity.Result{
		GameID:     id,
		Rows:       3,
		Cols:       3,
		K:          3,
		Status:     status,
		Winner:     winner,
		Moves:      5,
		FinishedAt: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}
}

// repositories runs the same assertions against Redis and the in-memory store.
func repositories(t *testing.T, run func(t *testing.T, ctx context.Context, repo ResultRepository)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		run(t, context.Background(), NewMemoryResultRepository())
	})

	t.Run("redis", func(t *testing.T) {
		ctx, st := suite.New(t)
		run(t, ctx, NewResultRepository(st.Storage))
	})
}

func TestResultRepository_Save(t *testing.T) {
	repositories(t, func(t *testing.T, ctx context.Context, repo ResultRepository) {
		t.Run("Save_Success", func(t *testing.T) {
			// Given: a finished game won by X
			result := newResult("g1", entity.StatusWon, "X")

			// When: Save is called
			err := repo.Save(ctx, result)

			// Then: no error is returned and the result can be read back
			require.NoError(t, err)

			stored, err := repo.GetByID(ctx, "g1")
			require.NoError(t, err)
			assert.Equal(t, result, stored)
		})

		t.Run("Save_Twice", func(t *testing.T) {
			// Given: a result that was already saved
			result := newResult("g2", entity.StatusDraw, "")
			require.NoError(t, repo.Save(ctx, result))

			// When: it is saved again
			err := repo.Save(ctx, result)

			// Then: ErrResultAlreadySaved is returned
			require.ErrorIs(t, err, ErrResultAlreadySaved)
		})

		t.Run("Save_Ongoing", func(t *testing.T) {
			err := repo.Save(ctx, newResult("g3", entity.StatusOngoing, ""))

			require.ErrorIs(t, err, ErrUnknownResult)

			_, err = repo.GetByID(ctx, "g3")
			require.ErrorIs(t, err, ErrResultNotFound)
		})
	})
}

func TestResultRepository_GetByID_NotFound(t *testing.T) {
	repositories(t, func(t *testing.T, ctx context.Context, repo ResultRepository) {
		// When: GetByID is called with an unknown ID
		result, err := repo.GetByID(ctx, "9999999")

		// Then: ErrResultNotFound is returned
		require.ErrorIs(t, err, ErrResultNotFound)
		assert.Nil(t, result)
	})
}

func TestResultRepository_Tally(t *testing.T) {
	repositories(t, func(t *testing.T, ctx context.Context, repo ResultRepository) {
		// Given: an empty ledger
		tally, err := repo.Tally(ctx)
		require.NoError(t, err)
		assert.Equal(t, &entity.Tally{}, tally)

		// When: results are saved
		require.NoError(t, repo.Save(ctx, newResult("a", entity.StatusWon, "X")))
		require.NoError(t, repo.Save(ctx, newResult("b", entity.StatusWon, "X")))
		require.NoError(t, repo.Save(ctx, newResult("c", entity.StatusWon, "O")))
		require.NoError(t, repo.Save(ctx, newResult("d", entity.StatusDraw, "")))

		// Then: the tally counts them by result
		tally, err = repo.Tally(ctx)
		require.NoError(t, err)
		assert.Equal(t, &entity.Tally{WinsX: 2, WinsO: 1, Draws: 1}, tally)
		assert.Equal(t, 4, tally.Total())
	})
}

func TestResultRepository_Recent(t *testing.T) {
	repositories(t, func(t *testing.T, ctx context.Context, repo ResultRepository) {
		// Given: five saved results
		for i := 0; i < 5; i++ {
			require.NoError(t, repo.Save(ctx, newResult(fmt.Sprintf("game-%d", i), entity.StatusDraw, "")))
		}

		// When: the three most recent are requested
		recent, err := repo.Recent(ctx, 3)
		require.NoError(t, err)

		// Then: they come newest first
		require.Len(t, recent, 3)
		assert.Equal(t, "game-4", recent[0].GameID)
		assert.Equal(t, "game-3", recent[1].GameID)
		assert.Equal(t, "game-2", recent[2].GameID)

		// And: asking for more than exist returns them all
		all, err := repo.Recent(ctx, 50)
		require.NoError(t, err)
		assert.Len(t, all, 5)

		none, err := repo.Recent(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
