package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/compasskata/common"
	"github.com/milk9111/compasskata/levels"
	"github.com/milk9111/compasskata/logging"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (physics overlay, prefab hot reload)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", levels.DefaultLevel, "level name in levels/ (basename, .json optional)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	logger := logging.New(*logLevel, *debug)

	if *baseMonitor {
		if monitors := ebiten.AppendMonitors(nil); len(monitors) > 0 {
			ebiten.SetMonitor(monitors[0])
		}
	}

	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("compasskata")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Config{Level: *levelName, Debug: *debug}, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("level", *levelName).Msg("start game")
	}

	if err := run(game); err != nil {
		logger.Error().Err(err).Msg("run game")
		os.Exit(1)
	}
}

// run closes the game before returning so the watcher is stopped on both the
// normal and the failing exit path.
func run(game *Game) error {
	defer game.Close()
	return ebiten.RunGame(game)
}
