package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/mnkgame/internal"
	"github.com/rocketscienceinc/mnkgame/internal/config"
)

var (
	flagConfig = flag.String("config", "", "Path to config.yml (default: XDG config dir, then ./config.yml)")
	flagRows   = flag.Int("rows", 0, "Number of board rows")
	flagCols   = flag.Int("cols", 0, "Number of board columns")
	flagK      = flag.Int("k", 0, "Marks in a row needed to win")
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the game.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	flag.Parse()

	conf := initConfig()
	logger := initLogger(conf)

	if err := app.RunApp(logger, conf, os.Stdin, os.Stdout); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config, command-line flags win over the file.
func initConfig() *config.Config {
	conf := config.MustLoad(*flagConfig)

	if *flagRows > 0 {
		conf.Board.Rows = *flagRows
	}

	if *flagCols > 0 {
		conf.Board.Cols = *flagCols
	}

	if *flagK > 0 {
		conf.Board.K = *flagK
	}

	return conf
}

// initialize logger. stdout belongs to the board, logs go to stderr.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
