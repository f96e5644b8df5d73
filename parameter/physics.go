package parameter

// World simulation
const (
	// PixelsPerMeter converts between screen pixels and box2d meters
	// box2d is tuned for objects between 0.1 and 10 meters
	PixelsPerMeter = 30.0

	// GravityY is downward acceleration in m/s², positive because screen Y grows down
	GravityY = 20.0

	// VelocityIterations and PositionIterations are box2d solver passes per step
	VelocityIterations = 8
	PositionIterations = 3

	// DefaultDensity for dynamic bodies in kg/m²
	DefaultDensity = 1.0

	// DefaultFriction for all fixtures
	DefaultFriction = 0.1
)

// Collision groups, negative group never collides with itself
const (
	// SlingshotGroup is shared by the slingshot fixture and every projectile
	SlingshotGroup int16 = -1
)

// Drag joint (pointer to grabbed body)
const (
	// DragStiffness is the spring frequency in Hz
	DragStiffness = 5.0

	// DragDamping is the damping ratio, 1 = critical
	DragDamping = 0.7

	// DragMaxAcceleration caps the drag joint force at this many m/s² times the body mass
	DragMaxAcceleration = 1000 * GravityY
)
