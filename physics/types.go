package physics

import "math"

// Point is a 2D position or vector in screen pixels, Y grows downward
type Point struct {
	X, Y float64
}

// Add returns p + q
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p * s
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Len returns the euclidean length
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Label tags a body for semantic dispatch, it does not affect simulation
type Label string

const (
	LabelBox        Label = "box"
	LabelGround     Label = "ground"
	LabelSlingshot  Label = "slingshot"
	LabelProjectile Label = "projectile"
)

// BodyRef is an identity handle to a body owned by a World
// Zero is never issued and doubles as "no body"
type BodyRef uint64

// ConstraintRef is an identity handle to a constraint owned by a World
type ConstraintRef uint64

// ShapeKind selects the collision geometry of a body
type ShapeKind uint8

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
)

// Shape describes body geometry in pixels
type Shape struct {
	Kind   ShapeKind
	Width  float64 // ShapeRect
	Height float64 // ShapeRect
	Radius float64 // ShapeCircle
}

// Rect returns a rectangle shape
func Rect(w, h float64) Shape { return Shape{Kind: ShapeRect, Width: w, Height: h} }

// Circle returns a circle shape
func Circle(r float64) Shape { return Shape{Kind: ShapeCircle, Radius: r} }

// BodySpec is the creation recipe for a body
type BodySpec struct {
	Label       Label
	Shape       Shape
	Position    Point
	Angle       float64
	Static      bool
	Density     float64 // 0 selects parameter.DefaultDensity for dynamic bodies
	Friction    float64
	Restitution float64
	Group       int16 // collision group, bodies sharing a negative group never collide
}

// BodyInfo is the immutable identity part of a body
type BodyInfo struct {
	Ref    BodyRef
	Label  Label
	Static bool
}

// BodyState is a read-only snapshot of a body used by renderers
type BodyState struct {
	BodyInfo
	Shape    Shape
	Position Point
	Angle    float64
}

// ConstraintKind selects the box2d joint backing a constraint
type ConstraintKind uint8

const (
	// ConstraintElastic is a soft distance joint holding the body center Length pixels from Anchor
	ConstraintElastic ConstraintKind = iota
	// ConstraintPointer is a mouse joint pulling the grabbed point of the body toward Anchor
	ConstraintPointer
)

// ConstraintSpec describes a soft link from a fixed anchor point to a body
// Stiffness is the spring frequency in Hz, Damping the damping ratio
type ConstraintSpec struct {
	Kind      ConstraintKind
	Anchor    Point
	Body      BodyRef
	Stiffness float64
	Damping   float64
	Length    float64 // elastic rest length in pixels, 0 keeps the distance at creation
}

// ConstraintState is a read-only snapshot of a constraint used by renderers
type ConstraintState struct {
	Ref          ConstraintRef
	Kind         ConstraintKind
	Anchor       Point
	Body         BodyRef
	BodyPosition Point
}

// Pair is one collision-start contact between two bodies
type Pair struct {
	A, B BodyInfo
}

// Is reports whether the pair's labels equal the unordered set {a, b}
func (p Pair) Is(a, b Label) bool {
	return (p.A.Label == a && p.B.Label == b) || (p.A.Label == b && p.B.Label == a)
}

// CollisionHandler receives all collision-start pairs reported by one step
type CollisionHandler func(pairs []Pair)
