package events

import (
	"time"

	"github.com/lixenwraith/slingshot/physics"
)

// EventType represents the type of game event
type EventType int

const (
	// EventCollisionStart carries one physics step's collision-start batch
	// Trigger: physics.World.Step | Consumer: Scorer | Payload: *CollisionStartPayload
	EventCollisionStart EventType = iota + 1

	// EventDragEnd signals the user released a drag on a body
	// Trigger: input.Tracker | Consumer: ProjectileManager | Payload: *DragEndPayload
	EventDragEnd

	// EventResetRequest asks the controller to reset score, pyramid and projectile
	// Trigger: reset key or reset button | Consumer: Controller | Payload: nil
	EventResetRequest
)

// String returns the event name for logs
func (t EventType) String() string {
	switch t {
	case EventCollisionStart:
		return "CollisionStart"
	case EventDragEnd:
		return "DragEnd"
	case EventResetRequest:
		return "ResetRequest"
	default:
		return "Unknown"
	}
}

// GameEvent is a routed event, Payload type is fixed per EventType
type GameEvent struct {
	Type      EventType
	Payload   any
	Timestamp time.Time
}

// CollisionStartPayload is the batch of pairs from a single step
type CollisionStartPayload struct {
	Pairs []physics.Pair
}

// DragEndPayload names the body whose drag ended
type DragEndPayload struct {
	Body physics.BodyRef
}
