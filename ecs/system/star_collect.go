package system

import (
	"github.com/milk9111/compasskata/common"
	"github.com/milk9111/compasskata/ecs"
	"github.com/milk9111/compasskata/ecs/component"
)

const defaultStarSize = 24.0

// StarCollectSystem overlaps the player with every active star. A touched
// star is switched off and reported; once the whole batch is gone it is put
// back at the top of the level.
type StarCollectSystem struct{}

func NewStarCollectSystem() *StarCollectSystem { return &StarCollectSystem{} }

func (s *StarCollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	playerTransform, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	playerBody, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}

	pw, ph := bodySize(*playerBody)
	px := playerTransform.X - pw/2
	py := playerTransform.Y - ph/2

	total := 0
	active := 0
	ecs.ForEach2(w, component.StarComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, star *component.Star, t *component.Transform) {
		total++
		if !star.Active {
			return
		}

		sw, sh := star.Width, star.Height
		if sw <= 0 || sh <= 0 {
			sw, sh = defaultStarSize, defaultStarSize
		}
		if !common.Intersects(px, py, pw, ph, t.X-sw/2, t.Y-sh/2, sw, sh) {
			active++
			return
		}

		setStarActive(w, e, star, false)
		w.Events().Push(ecs.Event{
			Type: ecs.EventStarCollected,
			Data: ecs.StarCollectedEvent{Star: e, Points: star.Points},
		})
	})

	if total == 0 || active > 0 {
		return
	}

	ecs.ForEach2(w, component.StarComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, star *component.Star, t *component.Transform) {
		t.Y = star.RespawnY
		t.Rotation = 0
		setStarActive(w, e, star, true)
	})
	w.Events().Push(ecs.Event{
		Type: ecs.EventStarsRespawned,
		Data: ecs.StarsRespawnedEvent{Count: total},
	})
}

func setStarActive(w *ecs.World, e ecs.Entity, star *component.Star, active bool) {
	star.Active = active
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.Hidden = !active
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		body.Disabled = !active
	}
}
