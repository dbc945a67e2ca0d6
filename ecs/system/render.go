package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/compasskata/ecs"
	"github.com/milk9111/compasskata/ecs/component"
	"golang.org/x/image/font/basicfont"
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

type RenderSystem struct {
	entities []ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	bakeScoreText(w)

	r.entities = append(r.entities[:0], w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())...)
	entities := r.entities
	sort.SliceStable(entities, func(i, j int) bool {
		si := ecs.Has(w, entities[i], component.ScreenSpaceComponent.Kind())
		sj := ecs.Has(w, entities[j], component.ScreenSpaceComponent.Kind())
		if si != sj {
			return sj
		}
		li := renderLayer(w, entities[i])
		lj := renderLayer(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok || s.Image == nil || s.Hidden {
			continue
		}
		drawSprite(screen, t, s)
	}
}

func renderLayer(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

func drawSprite(screen *ebiten.Image, t *component.Transform, s *component.Sprite) {
	img := s.Image
	if s.UseSource {
		if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
			img = sub
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-s.OriginX, -s.OriginY)

	sx := t.ScaleX
	if sx == 0 {
		sx = 1
	}
	if s.FacingLeft {
		sx = -sx
	}
	sy := t.ScaleY
	if sy == 0 {
		sy = 1
	}

	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(t.Rotation)
	op.GeoM.Translate(t.X, t.Y)

	screen.DrawImage(img, op)
}

// bakeScoreText redraws the score sprite when its text changed since the
// last frame.
func bakeScoreText(w *ecs.World) {
	ecs.ForEach2(w, component.ScoreComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, score *component.Score, sprite *component.Sprite) {
		if score.Text == "" || (sprite.Image != nil && score.Text == score.RenderedText) {
			return
		}

		m := hudFace.Metrics()
		tw, th := text.Measure(score.Text, hudFace, m.HLineGap+m.HAscent+m.HDescent)
		img := ebiten.NewImage(int(tw)+1, int(th)+1)
		op := &text.DrawOptions{}
		var c color.Color = color.Black
		if score.Color != nil {
			c = score.Color
		}
		op.ColorScale.ScaleWithColor(c)
		text.Draw(img, score.Text, hudFace, op)

		if sprite.Image != nil {
			sprite.Image.Deallocate()
		}
		sprite.Image = img
		score.RenderedText = score.Text

		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && score.Scale > 0 {
			t.ScaleX = score.Scale
			t.ScaleY = score.Scale
		}
	})
}
