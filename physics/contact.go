package physics

import "github.com/ByteArena/box2d"

// contactListener collects BeginContact callbacks fired inside a box2d step
// The world is locked during the step so pairs are buffered and delivered after it
type contactListener struct {
	world   *World
	pending []Pair
}

func (l *contactListener) BeginContact(contact box2d.B2ContactInterface) {
	a, okA := l.info(contact.GetFixtureA())
	b, okB := l.info(contact.GetFixtureB())
	if !okA || !okB {
		return
	}
	l.pending = append(l.pending, Pair{A: a, B: b})
}

func (l *contactListener) EndContact(contact box2d.B2ContactInterface) {}

func (l *contactListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {}

func (l *contactListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
}

func (l *contactListener) info(f *box2d.B2Fixture) (BodyInfo, bool) {
	if f == nil || f.GetBody() == nil {
		return BodyInfo{}, false
	}
	ref, ok := f.GetBody().GetUserData().(BodyRef)
	if !ok {
		return BodyInfo{}, false
	}
	rec, ok := l.world.bodies[ref]
	if !ok {
		return BodyInfo{}, false
	}
	return rec.info, true
}

// drain hands over the buffered batch and starts a new one
func (l *contactListener) drain() []Pair {
	pairs := l.pending
	l.pending = nil
	return pairs
}
