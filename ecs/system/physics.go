package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/compasskata/common"
	"github.com/milk9111/compasskata/ecs"
	"github.com/milk9111/compasskata/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
	collisionTypeStar
)

// PhysicsSystem mirrors entities with a PhysicsBody into a Chipmunk space and
// writes simulated positions back into their transforms.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	step          float64

	entities     map[ecs.Entity]*bodyInfo
	groundShapes map[*cp.Shape]ecs.Entity
	playerStates map[ecs.Entity]*playerContactState
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	shapes      []*cp.Shape
	static      bool
	inSpace     bool
}

type playerContactState struct {
	grounded bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:        newSpace(),
		step:         1.0 / float64(common.TPS),
		entities:     make(map[ecs.Entity]*bodyInfo),
		groundShapes: make(map[*cp.Shape]ecs.Entity),
		playerStates: make(map[ecs.Entity]*playerContactState),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.resetPlayerContacts(w)

	ps.space.Step(ps.step)

	ps.syncTransforms(w)
	ps.flushPlayerContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		playerEntity, okA := sys.groundShapes[shapeA]
		if !okA {
			var okB bool
			playerEntity, okB = sys.groundShapes[shapeB]
			if !okB {
				return true
			}
		}

		n := arb.Normal()
		if !okA {
			n = n.Neg()
		}
		// Grounded only when the contact pushes the player up (screen-down Y).
		if n.Y <= 0.5 {
			return true
		}
		st := sys.playerStates[playerEntity]
		if st == nil {
			st = &playerContactState{}
			sys.playerStates[playerEntity] = st
		}
		st.grounded = true
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	if ps.space == nil {
		return
	}

	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())

		info := ps.entities[e]
		if info == nil {
			layer, _ := ecs.Get(w, e, component.CollisionLayerComponent.Kind())
			info = ps.createBodyInfo(*transform, *bodyComp, layer, isPlayer, ecs.Has(w, e, component.StarComponent.Kind()))
			if info == nil || info.mainShape == nil {
				return
			}
			ps.entities[e] = info
			if info.groundShape != nil {
				ps.groundShapes[info.groundShape] = e
			}
		}

		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape

		switch {
		case bodyComp.Disabled && info.inSpace:
			ps.removeFromSpace(info)
		case !bodyComp.Disabled && !info.inSpace:
			ps.placeAt(info, *transform)
			ps.addToSpace(info)
		}
	})
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody, layer *component.CollisionLayer, isPlayer, isStar bool) *bodyInfo {
	if ps.space == nil {
		return nil
	}

	width, height := bodySize(bodyComp)
	centerX, centerY := transform.X, transform.Y

	filter := shapeFilter(layer)
	info := &bodyInfo{static: bodyComp.Static}

	if bodyComp.Static {
		bb := cp.BB{L: centerX - width/2, B: centerY - height/2, R: centerX + width/2, T: centerY + height/2}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(filter)

		info.body = ps.space.StaticBody
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		if !bodyComp.Disabled {
			ps.addToSpace(info)
		}
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	moment := math.Inf(1)
	if !bodyComp.FixedRotation {
		moment = cp.MomentForBox(mass, width, height)
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: centerX, Y: centerY})
	body.SetAngle(transform.Rotation)
	body.SetAngularVelocity(0)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetFilter(filter)
	switch {
	case isPlayer:
		shape.SetCollisionType(collisionTypePlayer)
	case isStar:
		shape.SetCollisionType(collisionTypeStar)
	default:
		shape.SetCollisionType(collisionTypeSolid)
	}

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	if isPlayer {
		if groundShape := ps.createGroundSensor(width, height, body, filter); groundShape != nil {
			info.groundShape = groundShape
			info.shapes = append(info.shapes, groundShape)
		}
	}

	if !bodyComp.Disabled {
		ps.addToSpace(info)
	}
	return info
}

// bodySize falls back to a 32x32 box when the prefab leaves the size unset.
// Bodies are always centered on their transform.
func bodySize(bodyComp component.PhysicsBody) (width, height float64) {
	width, height = bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width = 32
		height = 32
	}
	return width, height
}

func shapeFilter(layer *component.CollisionLayer) cp.ShapeFilter {
	category := component.LayerSolid
	mask := ^uint32(0)
	if layer != nil {
		if layer.Category != 0 {
			category = layer.Category
		}
		if layer.Mask != 0 {
			mask = layer.Mask
		}
	}
	return cp.NewShapeFilter(0, uint(category), uint(mask))
}

func (ps *PhysicsSystem) createGroundSensor(width, height float64, body *cp.Body, filter cp.ShapeFilter) *cp.Shape {
	if body == nil || width <= 0 || height <= 0 {
		return nil
	}

	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}

	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	groundShape.SetFilter(filter)
	return groundShape
}

func (ps *PhysicsSystem) addToSpace(info *bodyInfo) {
	if info == nil || info.inSpace || ps.space == nil {
		return
	}
	if !info.static && info.body != nil {
		ps.space.AddBody(info.body)
	}
	for _, shape := range info.shapes {
		ps.space.AddShape(shape)
	}
	info.inSpace = true
}

func (ps *PhysicsSystem) removeFromSpace(info *bodyInfo) {
	if info == nil || !info.inSpace || ps.space == nil {
		return
	}
	for _, shape := range info.shapes {
		ps.space.RemoveShape(shape)
	}
	if !info.static && info.body != nil {
		ps.space.RemoveBody(info.body)
	}
	info.inSpace = false
}

// placeAt moves a dynamic body back to its entity's transform at rest.
func (ps *PhysicsSystem) placeAt(info *bodyInfo, transform component.Transform) {
	if info == nil || info.static || info.body == nil {
		return
	}
	info.body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	info.body.SetVelocityVector(cp.Vector{})
	info.body.SetAngularVelocity(0)
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	if ps.space == nil || w == nil {
		return
	}
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}

	worldW := bounds.Width
	worldH := bounds.Height
	if worldW <= 0 || worldH <= 0 {
		return
	}

	// Open at the top so star batches can drop in from y = 0.
	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}},     // bottom
		{a: cp.Vector{X: 0, Y: -worldH}, b: cp.Vector{X: 0, Y: worldH}},         // left
		{a: cp.Vector{X: worldW, Y: -worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetElasticity(1)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(shapeFilter(nil))
		info.shapes = append(info.shapes, shape)
	}
	ps.addToSpace(info)

	ps.entities[boundsEntity] = info
}

func (ps *PhysicsSystem) resetPlayerContacts(w *ecs.World) {
	seen := make(map[ecs.Entity]struct{})
	ecs.ForEach(w, component.PlayerCollisionComponent.Kind(), func(e ecs.Entity, _ *component.PlayerCollision) {
		seen[e] = struct{}{}
		st := ps.playerStates[e]
		if st == nil {
			st = &playerContactState{}
			ps.playerStates[e] = st
		}
		st.grounded = false
	})

	for e := range ps.playerStates {
		if _, ok := seen[e]; !ok {
			delete(ps.playerStates, e)
		}
	}
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	for e, st := range ps.playerStates {
		pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
		if !ok {
			continue
		}
		pc.Grounded = st.grounded
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static || bodyComp.Disabled {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}

		ps.removeFromSpace(info)
		for _, shape := range info.shapes {
			delete(ps.groundShapes, shape)
		}
		delete(ps.entities, e)
		delete(ps.playerStates, e)
	}
}
