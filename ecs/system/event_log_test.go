package system

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/milk9111/compasskata/ecs"
	"github.com/milk9111/compasskata/logging"
)

func TestEventLogSystem(t *testing.T) {
	cases := []struct {
		name  string
		level string
		push  []ecs.Event
		want  []string
	}{
		{
			name:  "respawn_at_info",
			level: "info",
			push: []ecs.Event{
				{Type: ecs.EventStarCollected, Data: ecs.StarCollectedEvent{Points: 10}},
				{Type: ecs.EventStarsRespawned, Data: ecs.StarsRespawnedEvent{Count: 12}},
			},
			want: []string{"star batch respawned"},
		},
		{
			name:  "collect_at_debug",
			level: "debug",
			push: []ecs.Event{
				{Type: ecs.EventStarCollected, Data: ecs.StarCollectedEvent{Points: 10}},
			},
			want: []string{"star collected"},
		},
		{
			name:  "quiet_tick",
			level: "debug",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := ecs.NewWorld()
			pusher := probe(func(w *ecs.World) {
				for _, evt := range c.push {
					w.Events().Push(evt)
				}
			})
			ecs.NewScheduler(pusher, NewEventLogSystem(logging.NewWithWriter(&buf, c.level))).Update(w)

			var got []string
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				if line == "" {
					continue
				}
				var rec map[string]any
				if err := json.Unmarshal([]byte(line), &rec); err != nil {
					t.Fatalf("bad log line %q: %v", line, err)
				}
				got = append(got, rec["message"].(string))
			}
			if len(got) != len(c.want) {
				t.Fatalf("expected messages %v, got %v", c.want, got)
			}
			for i := range c.want {
				if got[i] != c.want[i] {
					t.Fatalf("expected messages %v, got %v", c.want, got)
				}
			}
		})
	}
}
