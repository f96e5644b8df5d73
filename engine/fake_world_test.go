package engine

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/slingshot/physics"
)

// fakeBody is the recorded state of one body in fakeWorld
type fakeBody struct {
	spec     physics.BodySpec
	pos      physics.Point
	vel      physics.Point
	omega    float64
	impulses []physics.Point
}

// fakeWorld is an in-memory World recording every mutation in order
type fakeWorld struct {
	bodies      map[physics.BodyRef]*fakeBody
	constraints map[physics.ConstraintRef]physics.ConstraintSpec
	handlers    []physics.CollisionHandler
	nextBody    physics.BodyRef
	nextCons    physics.ConstraintRef
	ops         []string
	destroyed   int
	closed      bool

	failAddBodies bool
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		bodies:      make(map[physics.BodyRef]*fakeBody),
		constraints: make(map[physics.ConstraintRef]physics.ConstraintSpec),
	}
}

func (w *fakeWorld) record(format string, args ...any) {
	w.ops = append(w.ops, fmt.Sprintf(format, args...))
}

func (w *fakeWorld) AddBody(spec physics.BodySpec) (physics.BodyRef, error) {
	refs, err := w.AddBodies([]physics.BodySpec{spec})
	if err != nil {
		return 0, err
	}
	return refs[0], nil
}

func (w *fakeWorld) AddBodies(specs []physics.BodySpec) ([]physics.BodyRef, error) {
	if w.closed {
		return nil, physics.ErrWorldClosed
	}
	if w.failAddBodies {
		return nil, physics.ErrInvalidShape
	}
	refs := make([]physics.BodyRef, 0, len(specs))
	for _, s := range specs {
		w.nextBody++
		w.bodies[w.nextBody] = &fakeBody{spec: s, pos: s.Position}
		refs = append(refs, w.nextBody)
	}
	w.record("add %d", len(specs))
	return refs, nil
}

func (w *fakeWorld) RemoveBody(ref physics.BodyRef) error {
	if w.closed {
		return physics.ErrWorldClosed
	}
	if _, ok := w.bodies[ref]; !ok {
		return physics.ErrStaleBody
	}
	for cref, c := range w.constraints {
		if c.Body == ref {
			delete(w.constraints, cref)
		}
	}
	delete(w.bodies, ref)
	w.record("remove body %d", ref)
	return nil
}

func (w *fakeWorld) RemoveBodies(refs []physics.BodyRef) (int, error) {
	if w.closed {
		return 0, physics.ErrWorldClosed
	}
	n := 0
	for _, ref := range refs {
		if w.RemoveBody(ref) == nil {
			n++
		}
	}
	return n, nil
}

func (w *fakeWorld) AddConstraint(spec physics.ConstraintSpec) (physics.ConstraintRef, error) {
	if w.closed {
		return 0, physics.ErrWorldClosed
	}
	if _, ok := w.bodies[spec.Body]; !ok {
		return 0, physics.ErrStaleBody
	}
	w.nextCons++
	w.constraints[w.nextCons] = spec
	w.record("add constraint %d", w.nextCons)
	return w.nextCons, nil
}

func (w *fakeWorld) RemoveConstraint(ref physics.ConstraintRef) error {
	if w.closed {
		return physics.ErrWorldClosed
	}
	if _, ok := w.constraints[ref]; !ok {
		return physics.ErrStaleConstraint
	}
	delete(w.constraints, ref)
	w.record("remove constraint %d", ref)
	return nil
}

func (w *fakeWorld) HasConstraint(ref physics.ConstraintRef) bool {
	_, ok := w.constraints[ref]
	return !w.closed && ok
}

func (w *fakeWorld) ApplyImpulse(ref physics.BodyRef, point, impulse physics.Point) error {
	b, ok := w.bodies[ref]
	if w.closed || !ok {
		return physics.ErrStaleBody
	}
	b.impulses = append(b.impulses, impulse)
	w.record("impulse %d", ref)
	return nil
}

func (w *fakeWorld) SetPosition(ref physics.BodyRef, p physics.Point) error {
	b, ok := w.bodies[ref]
	if w.closed || !ok {
		return physics.ErrStaleBody
	}
	b.pos = p
	return nil
}

func (w *fakeWorld) SetVelocity(ref physics.BodyRef, v physics.Point) error {
	b, ok := w.bodies[ref]
	if w.closed || !ok {
		return physics.ErrStaleBody
	}
	b.vel = v
	return nil
}

func (w *fakeWorld) SetAngularVelocity(ref physics.BodyRef, omega float64) error {
	b, ok := w.bodies[ref]
	if w.closed || !ok {
		return physics.ErrStaleBody
	}
	b.omega = omega
	return nil
}

func (w *fakeWorld) Position(ref physics.BodyRef) (physics.Point, bool) {
	b, ok := w.bodies[ref]
	if w.closed || !ok {
		return physics.Point{}, false
	}
	return b.pos, true
}

func (w *fakeWorld) QueryBodies(pred func(physics.BodyInfo) bool) []physics.BodyRef {
	if w.closed {
		return nil
	}
	var refs []physics.BodyRef
	for ref, b := range w.bodies {
		info := physics.BodyInfo{Ref: ref, Label: b.spec.Label, Static: b.spec.Static}
		if pred == nil || pred(info) {
			refs = append(refs, ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })
	return refs
}

func (w *fakeWorld) OnCollisionStart(h physics.CollisionHandler) {
	w.handlers = append(w.handlers, h)
}

func (w *fakeWorld) Destroy() {
	w.destroyed++
	w.closed = true
	clear(w.bodies)
	clear(w.constraints)
	w.handlers = nil
}

func (w *fakeWorld) Closed() bool { return w.closed }

// emitCollision delivers one collision-start batch as a physics step would
func (w *fakeWorld) emitCollision(pairs ...physics.Pair) {
	for _, h := range w.handlers {
		h(pairs)
	}
}

// count returns the number of bodies carrying label
func (w *fakeWorld) count(label physics.Label) int {
	return len(w.QueryBodies(HasLabel(label)))
}

// pair builds a collision pair from two labels
func pair(a, b physics.Label) physics.Pair {
	return physics.Pair{A: physics.BodyInfo{Label: a}, B: physics.BodyInfo{Label: b}}
}

// fakeDrags is a DragSource the test releases by hand
type fakeDrags struct {
	handlers []func(physics.BodyRef)
}

func (d *fakeDrags) OnDragEnd(h func(physics.BodyRef)) {
	d.handlers = append(d.handlers, h)
}

func (d *fakeDrags) release(ref physics.BodyRef) {
	for _, h := range d.handlers {
		h(ref)
	}
}
