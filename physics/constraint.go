package physics

import (
	"math"
	"sort"

	"github.com/ByteArena/box2d"

	"github.com/lixenwraith/slingshot/parameter"
)

// constraintRecord pairs a box2d joint with the pixel-space anchor it was last given
// Joint body A is the world's fixture-less pin at the origin
type constraintRecord struct {
	kind   ConstraintKind
	body   BodyRef
	anchor Point
	joint  box2d.B2JointInterface
}

// AddConstraint links spec.Body to spec.Anchor with a soft box2d joint
func (w *World) AddConstraint(spec ConstraintSpec) (ConstraintRef, error) {
	rec, err := w.lookup(spec.Body)
	if err != nil {
		return 0, err
	}
	if !validTuning(spec.Stiffness) || !validTuning(spec.Damping) || !validTuning(spec.Length) ||
		!finite(spec.Anchor.X) || !finite(spec.Anchor.Y) {
		return 0, ErrInvalidConstraint
	}
	if w.b2.IsLocked() {
		return 0, ErrWorldLocked
	}

	var joint box2d.B2JointInterface
	switch spec.Kind {
	case ConstraintPointer:
		def := box2d.MakeB2MouseJointDef()
		def.BodyA = w.pin
		def.BodyB = rec.b
		def.Target = w.toMeters(spec.Anchor)
		def.FrequencyHz = spec.Stiffness
		def.DampingRatio = spec.Damping
		def.MaxForce = parameter.DragMaxAcceleration * rec.mass()
		joint = w.b2.CreateJoint(&def)

	case ConstraintElastic:
		def := box2d.MakeB2DistanceJointDef()
		def.BodyA = w.pin
		def.BodyB = rec.b
		def.LocalAnchorA = w.toMeters(spec.Anchor)
		def.LocalAnchorB = rec.b.GetLocalCenter()
		def.FrequencyHz = spec.Stiffness
		def.DampingRatio = spec.Damping
		if spec.Length > 0 {
			def.Length = spec.Length / w.opts.PixelsPerMeter
		} else {
			def.Length = box2d.B2Vec2Sub(rec.b.GetWorldCenter(), def.LocalAnchorA).Length()
		}
		joint = w.b2.CreateJoint(&def)

	default:
		return 0, ErrInvalidConstraint
	}
	rec.b.SetAwake(true)

	w.nextCons++
	ref := w.nextCons
	w.constraints[ref] = &constraintRecord{
		kind:   spec.Kind,
		body:   spec.Body,
		anchor: spec.Anchor,
		joint:  joint,
	}
	return ref, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validTuning(v float64) bool {
	return finite(v) && v >= 0
}

// RemoveConstraint destroys a constraint's joint, the body keeps its current velocity
func (w *World) RemoveConstraint(ref ConstraintRef) error {
	if w.Closed() {
		return ErrWorldClosed
	}
	c, ok := w.constraints[ref]
	if !ok {
		return ErrStaleConstraint
	}
	if w.b2.IsLocked() {
		return ErrWorldLocked
	}
	w.b2.DestroyJoint(c.joint)
	delete(w.constraints, ref)
	return nil
}

// HasConstraint reports whether ref names a live constraint
func (w *World) HasConstraint(ref ConstraintRef) bool {
	if w.Closed() {
		return false
	}
	_, ok := w.constraints[ref]
	return ok
}

// SetConstraintAnchor moves the fixed end of a constraint, used by pointer drags
func (w *World) SetConstraintAnchor(ref ConstraintRef, anchor Point) error {
	if w.Closed() {
		return ErrWorldClosed
	}
	c, ok := w.constraints[ref]
	if !ok {
		return ErrStaleConstraint
	}
	if !finite(anchor.X) || !finite(anchor.Y) {
		return ErrInvalidConstraint
	}

	switch j := c.joint.(type) {
	case *box2d.B2MouseJoint:
		j.SetTarget(w.toMeters(anchor))
	case *box2d.B2DistanceJoint:
		j.M_localAnchorA = w.toMeters(anchor)
		if rec, ok := w.bodies[c.body]; ok {
			rec.b.SetAwake(true)
		}
	}
	c.anchor = anchor
	return nil
}

// Constraints returns snapshots of all live constraints in creation order
func (w *World) Constraints() []ConstraintState {
	if w.Closed() {
		return nil
	}
	refs := make([]ConstraintRef, 0, len(w.constraints))
	for ref := range w.constraints {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })

	states := make([]ConstraintState, 0, len(refs))
	for _, ref := range refs {
		c := w.constraints[ref]
		pos, _ := w.Position(c.body)
		states = append(states, ConstraintState{
			Ref:          ref,
			Kind:         c.kind,
			Anchor:       c.anchor,
			Body:         c.body,
			BodyPosition: pos,
		})
	}
	return states
}
