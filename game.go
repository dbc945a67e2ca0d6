package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/compasskata/common"
	"github.com/milk9111/compasskata/ecs"
	"github.com/milk9111/compasskata/ecs/entity"
	"github.com/milk9111/compasskata/ecs/system"
	"github.com/milk9111/compasskata/levels"
	"github.com/milk9111/compasskata/prefabs"
	"github.com/rs/zerolog"
)

type Config struct {
	Level string
	Debug bool
}

type Game struct {
	cfg Config
	log zerolog.Logger

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	render    *system.RenderSystem

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
}

// scene is everything that gets thrown away and rebuilt on reload.
type scene struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
}

func NewGame(cfg Config, log zerolog.Logger) (*Game, error) {
	if cfg.Level == "" {
		cfg.Level = levels.DefaultLevel
	}

	g := &Game{
		cfg:    cfg,
		log:    log,
		render: system.NewRenderSystem(),
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if cfg.Debug {
		g.startWatcher()
	}
	return g, nil
}

func (g *Game) load() error {
	s, err := loadScene(g.cfg.Level, g.log)
	if err != nil {
		return err
	}
	g.world = s.world
	g.scheduler = s.scheduler
	g.physics = s.physics
	g.log.Info().Str("level", g.cfg.Level).Int("entities", len(ecs.Entities(s.world))).Msg("level loaded")
	return nil
}

func loadScene(levelName string, log zerolog.Logger) (*scene, error) {
	lvl, err := levels.LoadLevelFromFS(levelName)
	if err != nil {
		return nil, fmt.Errorf("load scene %q: %w", levelName, err)
	}

	w := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(w, lvl); err != nil {
		return nil, fmt.Errorf("load scene %q: %w", levelName, err)
	}

	physics := system.NewPhysicsSystem()
	scheduler := ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewPlayerControllerSystem(),
		physics,
		system.NewStarCollectSystem(),
		system.NewScoreSystem(),
		system.NewCompassSystem(),
		system.NewAnimationSystem(),
		system.NewEventLogSystem(log),
	)
	return &scene{world: w, scheduler: scheduler, physics: physics}, nil
}

func (g *Game) startWatcher() {
	dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			g.log.Debug().Str("dir", dir).Msg("prefab directory missing, hot reload disabled")
			return
		}
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		g.log.Warn().Err(err).Msg("start prefab watcher")
		return
	}
	g.watcher = w
}

// pollWatcher rebuilds the scene when a prefab or script changes. A failed
// rebuild keeps the running scene.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}

	changed := ""
drain:
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			changed = name
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Error().Err(err).Msg("prefab watcher")
			}
		default:
			break drain
		}
	}
	if changed == "" {
		return
	}

	if err := g.load(); err != nil {
		g.log.Error().Err(err).Str("file", changed).Msg("reload prefabs")
		return
	}
	g.log.Info().Str("file", changed).Msg("prefabs reloaded")
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn().Err(err).Msg("close prefab watcher")
		}
		g.watcher = nil
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.pollWatcher()
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	if g.cfg.Debug {
		system.DrawPhysicsDebug(g.physics.Space(), screen)
		system.DrawCompassDebug(g.world, screen)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
