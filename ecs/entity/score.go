package entity

import (
	"fmt"

	"github.com/milk9111/compasskata/ecs"
	"github.com/milk9111/compasskata/ecs/component"
)

// NewScoreAt builds the HUD counter at a screen position.
func NewScoreAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, "score.yaml")
	if err != nil {
		return 0, err
	}
	t, ok := ecs.Get(w, entity, component.TransformComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("score: prefab has no transform")
	}
	t.X = x
	t.Y = y
	return entity, nil
}
