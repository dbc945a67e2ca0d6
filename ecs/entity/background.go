package entity

import (
	"fmt"

	"github.com/milk9111/compasskata/ecs"
)

func NewBackgroundAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, "background.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("background: override transform: %w", err)
	}
	return entity, nil
}
