package events

// Handler processes specific event types within a context T
type Handler[T any] interface {
	// HandleEvent processes a single event
	// Called synchronously during the dispatch phase
	HandleEvent(ctx T, event GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// HandlerFunc adapts a function to a single-type Handler
type HandlerFunc[T any] struct {
	Type EventType
	Fn   func(ctx T, event GameEvent)
}

func (h HandlerFunc[T]) HandleEvent(ctx T, event GameEvent) { h.Fn(ctx, event) }

func (h HandlerFunc[T]) EventTypes() []EventType { return []EventType{h.Type} }

// Router dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - Context T is passed to handlers (the game session)
type Router[T any] struct {
	handlers map[EventType][]Handler[T]
	queue    *EventQueue
}

// NewRouter creates a router attached to the given queue
func NewRouter[T any](queue *EventQueue) *Router[T] {
	return &Router[T]{
		handlers: make(map[EventType][]Handler[T]),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router[T]) Register(handler Handler[T]) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// Emit pushes an event onto the attached queue for the next dispatch
func (r *Router[T]) Emit(event GameEvent) {
	r.queue.Push(event)
}

// DispatchAll consumes all pending events and routes to handlers in FIFO order
// Returns the number of events consumed
func (r *Router[T]) DispatchAll(ctx T) int {
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ctx, ev)
		}
	}
	return len(events)
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *Router[T]) HasHandlers(t EventType) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router[T]) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
