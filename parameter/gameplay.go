package parameter

import "time"

// Pyramid
const (
	// PyramidRows yields PyramidRows*(PyramidRows+1)/2 boxes (55 for 10 rows)
	PyramidRows = 10

	// MaxPyramidRows clamps configured rows so the stack stays on screen
	MaxPyramidRows = 24

	// BoxSize is the edge length of a pyramid block in pixels
	BoxSize = 60.0

	// PyramidXFraction places the pyramid center at this fraction of viewport width
	PyramidXFraction = 0.75
)

// Slingshot & projectile
const (
	// SlingshotWidth and SlingshotHeight size the static slingshot fixture in pixels
	SlingshotWidth  = 100.0
	SlingshotHeight = 150.0

	// SlingshotXFraction places the slingshot at this fraction of viewport width
	SlingshotXFraction = 0.25

	// ProjectileRadius in pixels
	ProjectileRadius = 50.0

	// ProjectileRestitution makes the projectile bounce on blocks and ground
	ProjectileRestitution = 0.8

	// SlingStiffness is the rubber band spring frequency in Hz (soft)
	SlingStiffness = 2.0

	// SlingDamping is the rubber band damping ratio
	SlingDamping = 0.1

	// PowerFactor scales the pull-back vector (pixels) into a launch impulse
	PowerFactor = 40.0

	// RespawnDelay between launch and the fresh projectile appearing
	RespawnDelay = 3 * time.Second

	// ResetLift is how far above the projectile spawn height reset parks the projectile
	// Respawn point is (W*SlingshotXFraction, H - SlingshotHeight - ProjectileRadius - ResetLift)
	ResetLift = 50.0
)

// Ground
const (
	// GroundHeight is the thickness of the static ground strip in pixels
	GroundHeight = 50.0
)

// Scoring
const (
	// ScorePerGroundHit is awarded for every box-ground collision-start pair
	ScorePerGroundHit = 10
)

// Viewport clamp
const (
	MinViewportWidth  = 320.0
	MinViewportHeight = 240.0
)

// Degenerate geometry clamp
const (
	// MinBoxSize keeps pyramid blocks large enough for the solver
	MinBoxSize = 4.0

	// MinProjectileRadius keeps the projectile pickable
	MinProjectileRadius = 4.0
)
