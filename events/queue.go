package events

import (
	"github.com/lixenwraith/slingshot/parameter"
)

// EventQueue is a fixed-capacity FIFO ring of game events owned by the game loop
// Every producer (step callbacks, input tracker, reset requests) runs on the loop goroutine
//
// Overflow: collision-start pairs are never dropped. A full queue folds an incoming
// batch into the newest pending batch; any other event evicts the oldest pending
// non-collision event, or folds the two oldest batches when only batches remain
type EventQueue struct {
	events [parameter.EventQueueSize]GameEvent
	head   uint64 // read index
	tail   uint64 // write index
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends event, making room per the overflow rules when full
func (eq *EventQueue) Push(event GameEvent) {
	if eq.Len() == parameter.EventQueueSize && !eq.makeRoom(event) {
		return
	}
	*eq.at(eq.tail) = event
	eq.tail++
}

// makeRoom frees one slot for event, or absorbs it and returns false
func (eq *EventQueue) makeRoom(event GameEvent) bool {
	if event.Type == EventCollisionStart {
		for i := eq.tail; i > eq.head; i-- {
			if pending := eq.at(i - 1); pending.Type == EventCollisionStart && merge(pending, event) {
				return false
			}
		}
	}

	for i := eq.head; i < eq.tail; i++ {
		if eq.at(i).Type != EventCollisionStart {
			eq.removeAt(i)
			return true
		}
	}

	// only batches pending
	if !merge(eq.at(eq.head), *eq.at(eq.head + 1)) {
		eq.head++
		return true
	}
	eq.removeAt(eq.head + 1)
	return true
}

// merge appends src's pairs to dst, false if either payload is not a batch
func merge(dst *GameEvent, src GameEvent) bool {
	d, ok := dst.Payload.(*CollisionStartPayload)
	if !ok {
		return false
	}
	s, ok := src.Payload.(*CollisionStartPayload)
	if !ok {
		return false
	}
	d.Pairs = append(d.Pairs, s.Pairs...)
	return true
}

func (eq *EventQueue) at(i uint64) *GameEvent {
	return &eq.events[i&parameter.EventBufferMask]
}

// removeAt deletes the pending event at index i, keeping order
func (eq *EventQueue) removeAt(i uint64) {
	for ; i+1 < eq.tail; i++ {
		*eq.at(i) = *eq.at(i + 1)
	}
	eq.tail--
	*eq.at(eq.tail) = GameEvent{}
}

// Consume returns all pending events in FIFO order and empties the queue
func (eq *EventQueue) Consume() []GameEvent {
	n := eq.Len()
	if n == 0 {
		return nil
	}
	result := make([]GameEvent, 0, n)
	for i := eq.head; i < eq.tail; i++ {
		result = append(result, *eq.at(i))
		*eq.at(i) = GameEvent{}
	}
	eq.head = eq.tail
	return result
}

// Len returns the pending event count
func (eq *EventQueue) Len() int {
	return int(eq.tail - eq.head)
}
