package entity

import (
	"fmt"

	"github.com/milk9111/compasskata/ecs"
	"github.com/milk9111/compasskata/ecs/component"
)

func placeStar(w *ecs.World, e ecs.Entity, index int, slot StarSlot) error {
	star, ok := ecs.Get(w, e, component.StarComponent.Kind())
	if !ok {
		return fmt.Errorf("prefab has no star component")
	}
	star.Index = index
	star.Active = true
	SetStarBounce(w, e, slot.Bounce)
	return nil
}
