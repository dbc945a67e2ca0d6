package system

import (
	"testing"

	"github.com/milk9111/compasskata/ecs"
	"github.com/milk9111/compasskata/ecs/component"
)

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func addPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 160, JumpSpeed: 330})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:         32,
		Height:        48,
		Mass:          1,
		Elasticity:    0.2,
		FixedRotation: true,
	})
	mustAdd(t, w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.LayerPlayer,
		Mask:     component.LayerSolid,
	})
	return e
}

func addStar(t *testing.T, w *ecs.World, index int, x, y float64, active bool) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.StarComponent.Kind(), &component.Star{
		Index:  index,
		Active: active,
		Points: 10,
		Bounce: 0.5,
		Width:  24,
		Height: 22,
	})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.SpriteComponent.Kind(), &component.Sprite{Hidden: !active})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:         24,
		Height:        22,
		Mass:          1,
		Elasticity:    0.5,
		FixedRotation: true,
		Disabled:      !active,
	})
	mustAdd(t, w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.LayerStar,
		Mask:     component.LayerSolid,
	})
	return e
}

func addCompass(t *testing.T, w *ecs.World, x, y, radius float64, hideWhenIdle bool) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.CompassComponent.Kind(), &component.Compass{Radius: radius, HideWhenIdle: hideWhenIdle, TargetIndex: -1})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.SpriteComponent.Kind(), &component.Sprite{})
	return e
}

func addScore(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.ScoreComponent.Kind(), &component.Score{Format: "Score: %d"})
	return e
}

func get[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		t.Fatalf("entity %v is missing a component", e)
	}
	return v
}
