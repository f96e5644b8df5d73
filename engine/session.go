package engine

import "github.com/lixenwraith/slingshot/physics"

// ProjectileState is the slingshot state machine position
type ProjectileState uint8

const (
	// ProjectileDetached means no projectile exists (before start, after teardown)
	ProjectileDetached ProjectileState = iota
	// ProjectileAnchored means the projectile is held by the slingshot constraint
	ProjectileAnchored
	// ProjectileLaunched means the constraint was removed and an impulse applied
	ProjectileLaunched
)

func (s ProjectileState) String() string {
	switch s {
	case ProjectileAnchored:
		return "anchored"
	case ProjectileLaunched:
		return "launched"
	default:
		return "detached"
	}
}

// Session is the state of one game, owned by the Controller
// Handlers receive it explicitly; nothing else holds mutable game state
type Session struct {
	World    World
	Layout   Layout
	Settings Settings

	Projectile physics.BodyRef
	Sling      physics.ConstraintRef
	State      ProjectileState

	score  int
	epoch  uint64
	closed bool
}

// Score returns the current score
func (s *Session) Score() int {
	return s.score
}

// Epoch returns the invalidation counter, bumped by reset and teardown
func (s *Session) Epoch() uint64 {
	return s.epoch
}

// Closed reports whether the session was torn down
func (s *Session) Closed() bool {
	return s == nil || s.closed
}

func (s *Session) addScore(points int) {
	if points > 0 {
		s.score += points
	}
}
