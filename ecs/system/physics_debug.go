package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/compasskata/ecs"
	"github.com/milk9111/compasskata/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

func DrawPhysicsDebug(space *cp.Space, screen *ebiten.Image) {
	if space == nil || screen == nil {
		return
	}
	cp.DrawSpace(space, &physicsDebugDrawer{screen: screen})
}

// DrawCompassDebug draws the player to marker ray and a status line.
func DrawCompassDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}

	status := DebugStatus(w)
	ebitenutil.DebugPrintAt(screen, status.String(), 10, 40)

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	viewer, ok := playerCenter(w, player)
	if !ok {
		return
	}
	ecs.ForEach2(w, component.CompassComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Compass, t *component.Transform) {
		clr := colornames.Orangered
		if !c.HasBearing {
			clr = colornames.Gray
		}
		vector.StrokeLine(screen, float32(viewer.X), float32(viewer.Y), float32(t.X), float32(t.Y), 1, clr, false)
		vector.StrokeCircle(screen, float32(viewer.X), float32(viewer.Y), float32(c.Radius), 1, colornames.Skyblue, false)
	})
}

// Status is a snapshot of the scene for the debug overlay.
type Status struct {
	FPS         float64
	Score       int
	ActiveStars int
	TotalStars  int
	Grounded    bool
	TargetIndex int
}

func (s Status) String() string {
	target := "none"
	if s.TargetIndex >= 0 {
		target = fmt.Sprintf("#%d", s.TargetIndex)
	}
	return fmt.Sprintf("FPS: %0.1f\nScore: %d\nStars: %d/%d\nGrounded: %v\nTarget: %s",
		s.FPS, s.Score, s.ActiveStars, s.TotalStars, s.Grounded, target)
}

func DebugStatus(w *ecs.World) Status {
	st := Status{FPS: ebiten.ActualFPS(), TargetIndex: -1}
	ecs.ForEach(w, component.ScoreComponent.Kind(), func(e ecs.Entity, score *component.Score) {
		st.Score = score.Value
	})
	ecs.ForEach(w, component.StarComponent.Kind(), func(e ecs.Entity, star *component.Star) {
		st.TotalStars++
		if star.Active {
			st.ActiveStars++
		}
	})
	ecs.ForEach(w, component.PlayerCollisionComponent.Kind(), func(e ecs.Entity, pc *component.PlayerCollision) {
		st.Grounded = pc.Grounded
	})
	ecs.ForEach(w, component.CompassComponent.Kind(), func(e ecs.Entity, c *component.Compass) {
		if c.HasBearing {
			st.TargetIndex = c.TargetIndex
		}
	})
	return st
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	vector.DrawFilledRect(d.screen, float32(pos.X-size/2), float32(pos.Y-size/2), float32(size), float32(size), toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.Sensor() {
		return cp.FColor{R: 1, G: 1, B: 0.2, A: 0.9}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	vector.StrokeLine(d.screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, toNRGBA(c), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
