package system

import (
	"slices"

	"github.com/milk9111/compasskata/compass"
	"github.com/milk9111/compasskata/ecs"
	"github.com/milk9111/compasskata/ecs/component"
)

// CompassSystem moves every compass marker onto the circle around the player,
// on the side of the nearest active star.
type CompassSystem struct {
	targets []compass.Target
	stars   []starRef
}

type starRef struct {
	index int
	pos   compass.Point
	on    bool
}

func NewCompassSystem() *CompassSystem { return &CompassSystem{} }

func (s *CompassSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	viewer, ok := playerCenter(w, player)
	if !ok {
		return
	}

	s.collectTargets(w)

	// Every marker points at the same star.
	idx, found := compass.Nearest(viewer, s.targets)
	var angle float64
	if found {
		angle = compass.Bearing(viewer, s.targets[idx].Position)
	}

	ecs.ForEach2(w, component.CompassComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Compass, t *component.Transform) {
		sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())

		if !found {
			c.HasBearing = false
			c.TargetIndex = -1
			if sprite != nil && c.HideWhenIdle {
				sprite.Hidden = true
			}
			return
		}

		point := compass.Project(viewer, angle, c.Radius)
		c.HasBearing = true
		c.TargetIndex = s.stars[idx].index
		t.X = point.X
		t.Y = point.Y
		if sprite != nil {
			sprite.Hidden = false
		}
	})
}

// collectTargets lists the stars in batch order. Buffers are reused between
// ticks.
func (s *CompassSystem) collectTargets(w *ecs.World) {
	s.stars = s.stars[:0]
	ecs.ForEach2(w, component.StarComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, star *component.Star, t *component.Transform) {
		s.stars = append(s.stars, starRef{
			index: star.Index,
			pos:   compass.Point{X: t.X, Y: t.Y},
			on:    star.Active,
		})
	})
	slices.SortStableFunc(s.stars, func(a, b starRef) int { return a.index - b.index })

	s.targets = s.targets[:0]
	for _, ref := range s.stars {
		s.targets = append(s.targets, compass.Target{Position: ref.pos, Active: ref.on})
	}
}

func playerCenter(w *ecs.World, player ecs.Entity) (compass.Point, bool) {
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return compass.Point{}, false
	}
	return compass.Point{X: t.X, Y: t.Y}, true
}
