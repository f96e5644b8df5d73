package engine

import "github.com/lixenwraith/slingshot/physics"

// World is the simulation collaborator the game core drives
// *physics.World satisfies it; the core never reaches past this surface
type World interface {
	AddBody(spec physics.BodySpec) (physics.BodyRef, error)
	AddBodies(specs []physics.BodySpec) ([]physics.BodyRef, error)
	RemoveBody(ref physics.BodyRef) error
	RemoveBodies(refs []physics.BodyRef) (int, error)

	AddConstraint(spec physics.ConstraintSpec) (physics.ConstraintRef, error)
	RemoveConstraint(ref physics.ConstraintRef) error
	HasConstraint(ref physics.ConstraintRef) bool

	ApplyImpulse(ref physics.BodyRef, point, impulse physics.Point) error
	SetPosition(ref physics.BodyRef, p physics.Point) error
	SetVelocity(ref physics.BodyRef, v physics.Point) error
	SetAngularVelocity(ref physics.BodyRef, omega float64) error
	Position(ref physics.BodyRef) (physics.Point, bool)

	QueryBodies(pred func(physics.BodyInfo) bool) []physics.BodyRef
	OnCollisionStart(h physics.CollisionHandler)

	Destroy()
	Closed() bool
}

// WorldFactory creates a fresh, empty world
type WorldFactory func() World

// DragSource reports the end of pointer drags on bodies
// *input.Tracker satisfies it
type DragSource interface {
	OnDragEnd(h func(body physics.BodyRef))
}

// HasLabel returns a QueryBodies predicate matching one label
func HasLabel(label physics.Label) func(physics.BodyInfo) bool {
	return func(info physics.BodyInfo) bool { return info.Label == label }
}
