package entity

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/compasskata/ecs"
	"github.com/milk9111/compasskata/prefabs"
)

// StarSlot is where one star of the batch starts and how bouncy it is.
type StarSlot struct {
	X      float64
	Y      float64
	Bounce float64
}

// NewStarField lays a star batch out with the field's script and builds one
// star per slot. Stars are returned in batch order.
func NewStarField(w *ecs.World, specFile string) ([]ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.StarFieldSpec](specFile)
	if err != nil {
		return nil, fmt.Errorf("star field: %w", err)
	}
	if spec.Script == "" || spec.Prefab == "" {
		return nil, fmt.Errorf("star field %q: script and prefab are required", specFile)
	}

	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("star field: load script %q: %w", spec.Script, err)
	}
	slots, err := LayoutStars(src)
	if err != nil {
		return nil, fmt.Errorf("star field: run script %q: %w", spec.Script, err)
	}

	stars := make([]ecs.Entity, 0, len(slots))
	for i, slot := range slots {
		e, err := BuildEntity(w, spec.Prefab)
		if err != nil {
			return nil, fmt.Errorf("star field: star %d: %w", i, err)
		}
		if err := SetEntityTransform(w, e, slot.X, slot.Y, 0); err != nil {
			return nil, fmt.Errorf("star field: star %d: %w", i, err)
		}
		if err := placeStar(w, e, i, slot); err != nil {
			return nil, fmt.Errorf("star field: star %d: %w", i, err)
		}
		stars = append(stars, e)
	}
	return stars, nil
}

// LayoutStars runs a layout script and reads back its "stars" array. Each
// element is a map with numeric x and y and an optional bounce.
func LayoutStars(script []byte) ([]StarSlot, error) {
	s := tengo.NewScript(script)
	s.SetImports(stdlib.GetModuleMap("rand", "math"))

	compiled, err := s.Run()
	if err != nil {
		return nil, err
	}

	v := compiled.Get("stars")
	if v == nil || v.IsUndefined() {
		return nil, fmt.Errorf("script does not define 'stars'")
	}
	raw, ok := v.Value().([]any)
	if !ok {
		return nil, fmt.Errorf("script global 'stars' must be an array")
	}

	slots := make([]StarSlot, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("stars[%d] must be a map", i)
		}
		x, okX := toFloat(m["x"])
		y, okY := toFloat(m["y"])
		if !okX || !okY {
			return nil, fmt.Errorf("stars[%d] needs numeric x and y", i)
		}
		bounce, _ := toFloat(m["bounce"])
		slots = append(slots, StarSlot{X: x, Y: y, Bounce: bounce})
	}
	return slots, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
