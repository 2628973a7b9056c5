package race

type EventType int

const (
	EventLapCompleted EventType = iota
	EventRacerFinished
	EventRaceCompleted
	EventRaceReset
	EventLanesAssigned
)

func (t EventType) String() string {
	switch t {
	case EventLapCompleted:
		return "lap-completed"
	case EventRacerFinished:
		return "racer-finished"
	case EventRaceCompleted:
		return "race-completed"
	case EventRaceReset:
		return "race-reset"
	case EventLanesAssigned:
		return "lanes-assigned"
	}
	return "unknown"
}

type Event struct {
	Type  EventType
	Racer string
	Lap   int
	Place int
	Time  float64 // race timer when the event fired
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// Emit is a no-op on a nil bus.
func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
