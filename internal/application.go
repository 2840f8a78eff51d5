package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/mnkgame/internal/config"
	"github.com/rocketscienceinc/mnkgame/internal/repository"
	"github.com/rocketscienceinc/mnkgame/internal/repository/storage"
	"github.com/rocketscienceinc/mnkgame/internal/usecase"
	"github.com/rocketscienceinc/mnkgame/transport/cli"
)

// RunApp - runs the game on the given input and output until the player quits.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	resultRepo, closeStorage, err := newResultRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	gameManager := usecase.NewGameManager(logger, resultRepo, conf.Board.Rows, conf.Board.Cols, conf.Board.K)
	repl := cli.New(logger, gameManager, out)

	log.Info("Starting game", "rows", conf.Board.Rows, "cols", conf.Board.Cols, "k", conf.Board.K)

	if err = repl.Run(ctx, in); err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}

	return nil
}

// newResultRepository - picks Redis when enabled, the in-memory ledger otherwise.
func newResultRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.ResultRepository, func(), error) {
	if !conf.Redis.Enabled {
		return repository.NewMemoryResultRepository(), func() {}, nil
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr(), conf.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewResultRepository(redisStorage), closeStorage, nil
}
