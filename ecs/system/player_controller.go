package system

import (
	"github.com/milk9111/compasskata/ecs"
	"github.com/milk9111/compasskata/ecs/component"
)

const (
	animLeft  = "left"
	animRight = "right"
	animTurn  = "turn"
)

// PlayerControllerSystem turns Input into body velocity and picks the walk
// animation. Running left and right is instant; jumping needs ground contact.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach4(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.PlayerCollisionComponent.Kind(),
		func(e ecs.Entity, player *component.Player, input *component.Input, bodyComp *component.PhysicsBody, pc *component.PlayerCollision) {
			if bodyComp.Body == nil || bodyComp.Disabled {
				return
			}

			vel := bodyComp.Body.Velocity()
			clip := animTurn
			switch {
			case input.MoveX < 0:
				vel.X = input.MoveX * player.MoveSpeed
				clip = animLeft
			case input.MoveX > 0:
				vel.X = input.MoveX * player.MoveSpeed
				clip = animRight
			default:
				vel.X = 0
			}

			if input.Jump && pc.Grounded {
				vel.Y = -player.JumpSpeed
			}

			bodyComp.Body.SetVelocityVector(vel)

			if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
				anim.Play(clip)
			}
		})
}
