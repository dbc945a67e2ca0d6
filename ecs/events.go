package ecs

// EventType identifies a frame event.
type EventType string

const (
	EventStarCollected  EventType = "star_collected"
	EventStarsRespawned EventType = "stars_respawned"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// StarCollectedEvent is pushed when the player picks up a star.
type StarCollectedEvent struct {
	Star   Entity
	Points int
}

// StarsRespawnedEvent is pushed when a fully collected batch comes back.
type StarsRespawnedEvent struct {
	Count int
}

// EventQueue is a simple FIFO queue that lives for one scheduler tick.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Each visits queued events of the given type without consuming them.
func (q *EventQueue) Each(typ EventType, fn func(Event)) {
	if q == nil || fn == nil {
		return
	}
	for _, evt := range q.items {
		if evt.Type == typ {
			fn(evt)
		}
	}
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
