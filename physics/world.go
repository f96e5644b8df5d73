package physics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ByteArena/box2d"

	"github.com/lixenwraith/slingshot/parameter"
)

var (
	// ErrWorldClosed is returned by every mutation after Destroy
	ErrWorldClosed = errors.New("physics: world closed")

	// ErrStaleBody is returned when a BodyRef no longer names a live body
	ErrStaleBody = errors.New("physics: stale body reference")

	// ErrStaleConstraint is returned when a ConstraintRef no longer names a live constraint
	ErrStaleConstraint = errors.New("physics: stale constraint reference")

	// ErrInvalidShape is returned for shapes with non-positive or non-finite dimensions
	ErrInvalidShape = errors.New("physics: invalid shape")

	// ErrInvalidConstraint is returned for unknown kinds and negative or non-finite tuning
	ErrInvalidConstraint = errors.New("physics: invalid constraint")

	// ErrWorldLocked is returned for structural changes attempted from inside a step callback
	ErrWorldLocked = errors.New("physics: world locked during step")
)

// Options configures a World
type Options struct {
	Gravity            Point // m/s²
	PixelsPerMeter     float64
	VelocityIterations int
	PositionIterations int
}

// DefaultOptions returns the tuning from the parameter package
func DefaultOptions() Options {
	return Options{
		Gravity:            Point{X: 0, Y: parameter.GravityY},
		PixelsPerMeter:     parameter.PixelsPerMeter,
		VelocityIterations: parameter.VelocityIterations,
		PositionIterations: parameter.PositionIterations,
	}
}

type bodyRecord struct {
	b     *box2d.B2Body
	info  BodyInfo
	shape Shape
}

// World is a box2d simulation addressed in screen pixels
// Not safe for concurrent use, the game loop owns it
type World struct {
	b2   *box2d.B2World
	pin  *box2d.B2Body // static, fixture-less body A of every joint
	opts Options

	bodies      map[BodyRef]*bodyRecord
	constraints map[ConstraintRef]*constraintRecord
	nextBody    BodyRef
	nextCons    ConstraintRef

	listener *contactListener
	handlers []CollisionHandler
	closed   bool
}

// NewWorld creates an empty world
func NewWorld(opts Options) *World {
	if opts.PixelsPerMeter <= 0 {
		opts.PixelsPerMeter = parameter.PixelsPerMeter
	}
	if opts.VelocityIterations <= 0 {
		opts.VelocityIterations = parameter.VelocityIterations
	}
	if opts.PositionIterations <= 0 {
		opts.PositionIterations = parameter.PositionIterations
	}

	b2 := box2d.MakeB2World(box2d.MakeB2Vec2(opts.Gravity.X, opts.Gravity.Y))
	w := &World{
		b2:          &b2,
		opts:        opts,
		bodies:      make(map[BodyRef]*bodyRecord),
		constraints: make(map[ConstraintRef]*constraintRecord),
	}
	w.listener = &contactListener{world: w}
	w.b2.SetContactListener(w.listener)
	w.b2.SetContactFilter(&box2d.B2ContactFilter{})

	pd := box2d.MakeB2BodyDef()
	w.pin = w.b2.CreateBody(&pd)
	return w
}

// Closed reports whether Destroy has been called
func (w *World) Closed() bool {
	return w == nil || w.closed
}

// Destroy releases every body and constraint, safe to call repeatedly
func (w *World) Destroy() {
	if w == nil || w.closed {
		return
	}
	w.closed = true
	for ref, rec := range w.bodies {
		w.b2.DestroyBody(rec.b)
		delete(w.bodies, ref)
	}
	w.b2.DestroyBody(w.pin)
	w.b2.Destroy()
	clear(w.constraints)
	w.handlers = nil
	w.listener.pending = nil
}

// AddBody creates a single body
func (w *World) AddBody(spec BodySpec) (BodyRef, error) {
	refs, err := w.AddBodies([]BodySpec{spec})
	if err != nil {
		return 0, err
	}
	return refs[0], nil
}

// AddBodies creates all specs as one batch, nothing is created if any spec is invalid
func (w *World) AddBodies(specs []BodySpec) ([]BodyRef, error) {
	if w.Closed() {
		return nil, ErrWorldClosed
	}
	for i, s := range specs {
		if err := validateShape(s.Shape); err != nil {
			return nil, fmt.Errorf("body %d (%s): %w", i, s.Label, err)
		}
	}

	refs := make([]BodyRef, 0, len(specs))
	for _, s := range specs {
		refs = append(refs, w.createBody(s))
	}
	return refs, nil
}

func validateShape(s Shape) error {
	switch s.Kind {
	case ShapeRect:
		if !(s.Width > 0) || !(s.Height > 0) || math.IsInf(s.Width, 0) || math.IsInf(s.Height, 0) {
			return ErrInvalidShape
		}
	case ShapeCircle:
		if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
			return ErrInvalidShape
		}
	default:
		return ErrInvalidShape
	}
	return nil
}

func (w *World) createBody(s BodySpec) BodyRef {
	w.nextBody++
	ref := w.nextBody

	bd := box2d.MakeB2BodyDef()
	bd.Position = w.toMeters(s.Position)
	bd.Angle = s.Angle
	if s.Static {
		bd.Type = box2d.B2BodyType.B2_staticBody
	} else {
		bd.Type = box2d.B2BodyType.B2_dynamicBody
	}
	body := w.b2.CreateBody(&bd)
	body.SetUserData(ref)

	fd := box2d.MakeB2FixtureDef()
	fd.Filter = box2d.MakeB2Filter()
	fd.Filter.GroupIndex = s.Group
	fd.Friction = s.Friction
	fd.Restitution = s.Restitution
	fd.Density = s.Density
	if !s.Static && fd.Density <= 0 {
		fd.Density = parameter.DefaultDensity
	}

	switch s.Shape.Kind {
	case ShapeCircle:
		shape := box2d.MakeB2CircleShape()
		shape.M_radius = s.Shape.Radius / w.opts.PixelsPerMeter
		fd.Shape = &shape
		body.CreateFixtureFromDef(&fd)
	default:
		shape := box2d.MakeB2PolygonShape()
		shape.SetAsBox(
			s.Shape.Width/2/w.opts.PixelsPerMeter,
			s.Shape.Height/2/w.opts.PixelsPerMeter,
		)
		fd.Shape = &shape
		body.CreateFixtureFromDef(&fd)
	}

	w.bodies[ref] = &bodyRecord{
		b:     body,
		info:  BodyInfo{Ref: ref, Label: s.Label, Static: s.Static},
		shape: s.Shape,
	}
	return ref
}

// RemoveBody destroys a body and every constraint attached to it
func (w *World) RemoveBody(ref BodyRef) error {
	if w.Closed() {
		return ErrWorldClosed
	}
	rec, ok := w.bodies[ref]
	if !ok {
		return ErrStaleBody
	}
	if w.b2.IsLocked() {
		return ErrWorldLocked
	}
	for cref, c := range w.constraints {
		if c.body == ref {
			delete(w.constraints, cref)
		}
	}
	w.b2.DestroyBody(rec.b)
	delete(w.bodies, ref)
	return nil
}

// RemoveBodies destroys every live body in refs, stale refs are skipped
// Returns the number of bodies removed
func (w *World) RemoveBodies(refs []BodyRef) (int, error) {
	if w.Closed() {
		return 0, ErrWorldClosed
	}
	removed := 0
	for _, ref := range refs {
		if err := w.RemoveBody(ref); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Step advances the simulation by dt and then delivers the step's collision-start batch
func (w *World) Step(dt time.Duration) error {
	if w.Closed() {
		return ErrWorldClosed
	}
	w.b2.Step(dt.Seconds(), w.opts.VelocityIterations, w.opts.PositionIterations)

	pairs := w.listener.drain()
	if len(pairs) == 0 {
		return nil
	}
	for _, h := range w.handlers {
		h(pairs)
	}
	return nil
}

// OnCollisionStart subscribes h to collision-start batches, one call per step with contacts
func (w *World) OnCollisionStart(h CollisionHandler) {
	if w.Closed() || h == nil {
		return
	}
	w.handlers = append(w.handlers, h)
}

// BodyCount returns the number of live bodies
func (w *World) BodyCount() int {
	if w.Closed() {
		return 0
	}
	return len(w.bodies)
}

// QueryBodies returns refs of bodies matching pred, in creation order
func (w *World) QueryBodies(pred func(BodyInfo) bool) []BodyRef {
	if w.Closed() {
		return nil
	}
	var refs []BodyRef
	for ref, rec := range w.bodies {
		if pred == nil || pred(rec.info) {
			refs = append(refs, ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })
	return refs
}

// Bodies returns snapshots of all live bodies in creation order
func (w *World) Bodies() []BodyState {
	refs := w.QueryBodies(nil)
	states := make([]BodyState, 0, len(refs))
	for _, ref := range refs {
		rec := w.bodies[ref]
		states = append(states, BodyState{
			BodyInfo: rec.info,
			Shape:    rec.shape,
			Position: w.toPixels(rec.b.GetPosition()),
			Angle:    rec.b.GetAngle(),
		})
	}
	return states
}

// BodyAt returns the topmost dynamic body containing p, latest created wins
func (w *World) BodyAt(p Point) (BodyRef, bool) {
	if w.Closed() {
		return 0, false
	}
	pm := w.toMeters(p)
	var hit BodyRef
	for ref, rec := range w.bodies {
		if rec.info.Static || ref < hit {
			continue
		}
		for f := rec.b.GetFixtureList(); f != nil; f = f.GetNext() {
			if f.TestPoint(pm) {
				hit = ref
				break
			}
		}
	}
	return hit, hit != 0
}

func (w *World) toMeters(p Point) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(p.X/w.opts.PixelsPerMeter, p.Y/w.opts.PixelsPerMeter)
}

func (w *World) toPixels(v box2d.B2Vec2) Point {
	return Point{X: v.X * w.opts.PixelsPerMeter, Y: v.Y * w.opts.PixelsPerMeter}
}

func (w *World) lookup(ref BodyRef) (*bodyRecord, error) {
	if w.Closed() {
		return nil, ErrWorldClosed
	}
	rec, ok := w.bodies[ref]
	if !ok {
		return nil, ErrStaleBody
	}
	return rec, nil
}
