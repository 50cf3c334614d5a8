package editor

import "github.com/piwi3910/seatmap/internal/model"

// EventName identifies a surface event.
type EventName string

const (
	EventObjectAdded      EventName = "object:added"
	EventObjectRemoved    EventName = "object:removed"
	EventObjectModified   EventName = "object:modified"
	EventObjectMoving     EventName = "object:moving"
	EventObjectRotating   EventName = "object:rotating"
	EventObjectScaling    EventName = "object:scaling"
	EventSelectionCreated EventName = "selection:created"
	EventSelectionUpdated EventName = "selection:updated"
	EventSelectionCleared EventName = "selection:cleared"
)

// Event is delivered to handlers registered with Surface.On.
type Event struct {
	Name    EventName
	Objects []*model.Object
}

// Handler receives surface events.
type Handler func(Event)

type subscription struct {
	id int
	fn Handler
}

// eventBus is a synchronous, single-threaded handler registry.
type eventBus struct {
	nextID   int
	handlers map[EventName][]subscription
}

func (b *eventBus) on(name EventName, fn Handler) func() {
	if b.handlers == nil {
		b.handlers = make(map[EventName][]subscription)
	}
	b.nextID++
	id := b.nextID
	b.handlers[name] = append(b.handlers[name], subscription{id: id, fn: fn})
	return func() {
		subs := b.handlers[name]
		for i, s := range subs {
			if s.id == id {
				b.handlers[name] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

func (b *eventBus) fire(ev Event) {
	subs := append([]subscription(nil), b.handlers[ev.Name]...)
	for _, s := range subs {
		s.fn(ev)
	}
}
