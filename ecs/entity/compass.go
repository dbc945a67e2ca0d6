package entity

import (
	"fmt"

	"github.com/milk9111/compasskata/ecs"
)

// NewCompassAt builds the bearing marker. The compass system moves it every
// tick, so x and y only matter until the first update.
func NewCompassAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, "compass.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("compass: override transform: %w", err)
	}
	return entity, nil
}
