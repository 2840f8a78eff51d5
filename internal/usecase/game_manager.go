package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/mnkgame/internal/apperror"
	"github.com/rocketscienceinc/mnkgame/internal/entity"
	"github.com/rocketscienceinc/mnkgame/internal/repository"
	"github.com/rocketscienceinc/mnkgame/internal/tictactoe"
)

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
	Recent(ctx context.Context, n int) ([]*entity.Result, error)
	Tally(ctx context.Context) (*entity.Tally, error)
}

// GameManager runs one game at a time and records finished games.
// It is driven by a single caller and does no locking of its own.
type GameManager struct {
	logger     *slog.Logger
	resultRepo resultRepo

	rows, cols, k int

	gameID   string
	game     *tictactoe.Game
	recorded bool
	now      func() time.Time
}

func NewGameManager(logger *slog.Logger, resultRepo resultRepo, rows, cols, k int) *GameManager {
	return &GameManager{
		logger:     logger.With("component", "game_manager"),
		resultRepo: resultRepo,

		rows: rows,
		cols: cols,
		k:    k,

		now: time.Now,
	}
}

// NewGame records the current game if it has finished and starts a fresh one.
func (that *GameManager) NewGame(ctx context.Context) (*tictactoe.Game, error) {
	if err := that.Finish(ctx); err != nil {
		return nil, fmt.Errorf("failed to finish previous game: %w", err)
	}

	game, err := tictactoe.NewGame(that.rows, that.cols, that.k)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.game = game
	that.gameID = uuid.NewString()
	that.recorded = false

	that.logger.Info("game started", "gameID", that.gameID, "rows", that.rows, "cols", that.cols, "k", that.k)

	return game, nil
}

// Game returns the current game, or nil before the first NewGame.
func (that *GameManager) Game() *tictactoe.Game {
	return that.game
}

func (that *GameManager) GameID() string {
	return that.gameID
}

func (that *GameManager) Play(x, y int) (entity.Outcome, error) {
	log := that.logger.With("method", "Play", "gameID", that.gameID)

	if that.game == nil {
		return entity.Outcome{}, apperror.ErrNoActiveGame
	}

	player := that.game.ActivePlayer()

	outcome, err := that.game.Play(x, y)
	if err != nil {
		if apperror.IsInvalidMove(err) {
			log.Debug("move rejected", "player", player.String(), "x", x, "y", y, "error", err)
		} else {
			log.Warn("move refused", "player", player.String(), "error", err)
		}

		return outcome, fmt.Errorf("failed to make turn: %w", err)
	}

	log.Info("move played", "player", player.String(), "x", x, "y", y, "moves", that.game.Moves(), "outcome", outcome.String())

	if outcome.IsFinished() {
		log.Info("game finished", "outcome", outcome.String())
	}

	return outcome, nil
}

func (that *GameManager) Undo() error {
	log := that.logger.With("method", "Undo", "gameID", that.gameID)

	if that.game == nil {
		return apperror.ErrNoActiveGame
	}

	// a recorded result is final
	if that.recorded {
		return fmt.Errorf("failed to undo: %w", apperror.ErrGameFinished)
	}

	if err := that.game.Undo(); err != nil {
		log.Debug("undo rejected", "error", err)
		return fmt.Errorf("failed to undo: %w", err)
	}

	log.Info("move undone", "moves", that.game.Moves())

	return nil
}

// Finish records the current game's result if it has ended. A game is
// recorded at most once; calling Finish on an ongoing game does nothing.
func (that *GameManager) Finish(ctx context.Context) error {
	if that.game == nil || that.recorded || !that.game.Outcome().IsFinished() {
		return nil
	}

	log := that.logger.With("method", "Finish", "gameID", that.gameID)

	result, err := that.result()
	if err != nil {
		return err
	}

	err = that.resultRepo.Save(ctx, result)
	if err != nil && !errors.Is(err, repository.ErrResultAlreadySaved) {
		return fmt.Errorf("failed to save result: %w", err)
	}

	that.recorded = true
	log.Info("result recorded", "status", result.Status, "winner", result.Winner)

	return nil
}

func (that *GameManager) Tally(ctx context.Context) (*entity.Tally, error) {
	tally, err := that.resultRepo.Tally(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tally: %w", err)
	}

	return tally, nil
}

func (that *GameManager) Recent(ctx context.Context, n int) ([]*entity.Result, error) {
	results, err := that.resultRepo.Recent(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}

	return results, nil
}

func (that *GameManager) result() (*entity.Result, error) {
	outcome := that.game.Outcome()
	if !outcome.IsFinished() {
		return nil, apperror.ErrResultMissing
	}

	result := &entity.Result{
		GameID:     that.gameID,
		Rows:       that.game.Rows(),
		Cols:       that.game.Cols(),
		K:          that.game.K(),
		Status:     outcome.Status,
		Moves:      that.game.Moves(),
		FinishedAt: that.now().UTC(),
	}

	if outcome.Winner.IsPlayer() {
		result.Winner = outcome.Winner.String()
	}

	return result, nil
}
