package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/compasskata/ecs"
	"github.com/milk9111/compasskata/ecs/component"
	"github.com/milk9111/compasskata/levels"
)

// LoadLevelToWorld builds every entity the level places, plus the bounds
// entity the physics system walls the scene in with.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) error {
	if lvl == nil {
		return fmt.Errorf("load level: level is nil")
	}

	bounds := ecs.CreateEntity(world)
	if err := ecs.Add(world, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(lvl.Width),
		Height: float64(lvl.Height),
	}); err != nil {
		return err
	}

	for i, ent := range lvl.Entities {
		x, y := float64(ent.X), float64(ent.Y)
		var err error
		switch strings.ToLower(ent.Type) {
		case "player":
			_, err = NewPlayerAt(world, x, y)
		case "platform":
			_, err = NewPlatformAt(world, x, y, ent.FloatProp("scale", 1))
		case "background":
			_, err = NewBackgroundAt(world, x, y)
		case "star_field":
			_, err = NewStarField(world, ent.StringProp("prefab", "star_field.yaml"))
		case "compass":
			_, err = NewCompassAt(world, x, y)
		case "score":
			_, err = NewScoreAt(world, x, y)
		default:
			err = fmt.Errorf("unknown entity type %q", ent.Type)
		}
		if err != nil {
			return fmt.Errorf("load level: entity %d (%s): %w", i, ent.Type, err)
		}
	}
	return nil
}
