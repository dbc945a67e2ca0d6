package system

import (
	"github.com/milk9111/compasskata/ecs"
	"github.com/rs/zerolog"
)

// EventLogSystem writes the tick's gameplay events to the log. It runs last
// so it sees everything pushed during the tick.
type EventLogSystem struct {
	log zerolog.Logger
}

func NewEventLogSystem(log zerolog.Logger) *EventLogSystem {
	return &EventLogSystem{log: log}
}

func (s *EventLogSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	w.Events().Each(ecs.EventStarCollected, func(evt ecs.Event) {
		if data, ok := evt.Data.(ecs.StarCollectedEvent); ok {
			s.log.Debug().Stringer("star", data.Star).Int("points", data.Points).Msg("star collected")
		}
	})
	w.Events().Each(ecs.EventStarsRespawned, func(evt ecs.Event) {
		if data, ok := evt.Data.(ecs.StarsRespawnedEvent); ok {
			s.log.Info().Int("stars", data.Count).Msg("star batch respawned")
		}
	})
}
