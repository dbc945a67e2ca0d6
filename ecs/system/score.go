package system

import (
	"fmt"

	"github.com/milk9111/compasskata/ecs"
	"github.com/milk9111/compasskata/ecs/component"
)

const defaultScoreFormat = "Score: %d"

// ScoreSystem adds the points of every star collected this tick and keeps
// the HUD string in step with the value.
type ScoreSystem struct{}

func NewScoreSystem() *ScoreSystem { return &ScoreSystem{} }

func (s *ScoreSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	gained := 0
	w.Events().Each(ecs.EventStarCollected, func(evt ecs.Event) {
		if data, ok := evt.Data.(ecs.StarCollectedEvent); ok {
			gained += data.Points
		}
	})

	ecs.ForEach(w, component.ScoreComponent.Kind(), func(e ecs.Entity, score *component.Score) {
		score.Value += gained
		format := score.Format
		if format == "" {
			format = defaultScoreFormat
		}
		score.Text = fmt.Sprintf(format, score.Value)
	})
}
