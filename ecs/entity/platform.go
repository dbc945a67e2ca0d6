package entity

import (
	"fmt"

	"github.com/milk9111/compasskata/ecs"
	"github.com/milk9111/compasskata/ecs/component"
)

// NewPlatformAt builds a static ledge. Scale stretches both the sprite and
// its collider, so the ground platform in the level is one prefab at scale 2.
func NewPlatformAt(w *ecs.World, x, y, scale float64) (ecs.Entity, error) {
	if scale <= 0 {
		return 0, fmt.Errorf("platform: scale must be positive, got %v", scale)
	}
	entity, err := BuildEntity(w, "platform.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("platform: override transform: %w", err)
	}
	if scale == 1 {
		return entity, nil
	}

	if t, ok := ecs.Get(w, entity, component.TransformComponent.Kind()); ok {
		t.ScaleX *= scale
		t.ScaleY *= scale
	}
	if body, ok := ecs.Get(w, entity, component.PhysicsBodyComponent.Kind()); ok {
		body.Width *= scale
		body.Height *= scale
	}
	return entity, nil
}
