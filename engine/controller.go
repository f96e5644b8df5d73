package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/slingshot/events"
	"github.com/lixenwraith/slingshot/physics"
)

// ErrAlreadyStarted is returned by a second Start on the same controller
var ErrAlreadyStarted = errors.New("engine: controller already started")

// Snapshot is the read-only state exposed to the presentation layer
type Snapshot struct {
	Started        bool
	Score          int
	State          ProjectileState
	Projectile     physics.BodyRef
	Anchor         physics.Point
	RespawnPending bool
	Epoch          uint64
}

// Controller wires the core components together and owns the session
type Controller struct {
	settings Settings
	newWorld WorldFactory
	clock    TimeProvider

	scheduler   *Scheduler
	router      *events.Router[*Session]
	projectiles *ProjectileManager
	scorer      *Scorer

	session *Session
	started bool
	log     zerolog.Logger
}

// NewController creates a controller; nothing is simulated until Start
func NewController(settings Settings, newWorld WorldFactory, clock TimeProvider, logger zerolog.Logger) *Controller {
	settings = settings.Normalize()
	scheduler := NewScheduler(clock)
	c := &Controller{
		settings:    settings,
		newWorld:    newWorld,
		clock:       clock,
		scheduler:   scheduler,
		router:      events.NewRouter[*Session](events.NewEventQueue()),
		projectiles: NewProjectileManager(settings, scheduler, logger),
		scorer:      NewScorer(settings.ScorePerHit, logger),
		log:         logger.With().Str("component", "controller").Logger(),
	}
	c.router.Register(c.scorer)
	c.router.Register(c.projectiles)
	c.router.Register(events.HandlerFunc[*Session]{
		Type: events.EventResetRequest,
		Fn:   func(*Session, events.GameEvent) { c.Reset() },
	})
	return c
}

// Start builds the world, pyramid and projectile and subscribes the handlers
// drags may be nil when no pointer input exists
func (c *Controller) Start(v Viewport, drags DragSource) error {
	if c.started {
		return ErrAlreadyStarted
	}

	w, layout, err := Bootstrap(c.newWorld, v, c.settings)
	if err != nil {
		return err
	}
	s := &Session{World: w, Layout: layout, Settings: c.settings}

	if _, err := BuildPyramid(w, c.settings.Rows, c.settings.BoxSize, layout.PyramidAnchor); err != nil {
		Teardown(w)
		return err
	}
	if err := c.projectiles.Arm(s); err != nil {
		Teardown(w)
		return err
	}

	w.OnCollisionStart(func(pairs []physics.Pair) {
		c.emit(events.EventCollisionStart, &events.CollisionStartPayload{Pairs: pairs})
	})
	if drags != nil {
		drags.OnDragEnd(func(body physics.BodyRef) {
			c.emit(events.EventDragEnd, &events.DragEndPayload{Body: body})
		})
	}

	c.session = s
	c.started = true
	c.log.Info().
		Float64("width", layout.Viewport.Width).
		Float64("height", layout.Viewport.Height).
		Int("boxes", PyramidSize(c.settings.Rows)).
		Msg("session started")
	return nil
}

// Tick dispatches queued events then fires due deferred tasks
// Called once per loop iteration after the physics step, before rendering
func (c *Controller) Tick() {
	if c.session.Closed() {
		return
	}
	c.router.DispatchAll(c.session)
	c.scheduler.RunDue()
}

// RequestReset queues a reset for the next Tick
func (c *Controller) RequestReset() {
	c.emit(events.EventResetRequest, nil)
}

func (c *Controller) emit(t events.EventType, payload any) {
	c.router.Emit(events.GameEvent{Type: t, Payload: payload, Timestamp: c.clock.Now()})
}

// Reset zeroes the score, rebuilds the pyramid and parks the existing projectile
// The projectile keeps its identity; pending respawns are invalidated by the epoch bump
func (c *Controller) Reset() {
	s := c.session
	if s.Closed() {
		c.log.Debug().Msg("reset ignored, no session")
		return
	}

	s.epoch++
	s.score = 0

	boxes := s.World.QueryBodies(HasLabel(physics.LabelBox))
	if _, err := s.World.RemoveBodies(boxes); err != nil {
		c.log.Warn().Err(err).Msg("remove boxes")
	}
	if _, err := BuildPyramid(s.World, c.settings.Rows, c.settings.BoxSize, s.Layout.PyramidAnchor); err != nil {
		c.log.Error().Err(err).Msg("rebuild pyramid")
	}

	c.parkProjectile(s)
	c.log.Info().Int("removed", len(boxes)).Uint64("epoch", s.epoch).Msg("game reset")
}

// parkProjectile moves the projectile to the respawn point at rest
// A launched projectile is re-attached since its pending respawn was invalidated
func (c *Controller) parkProjectile(s *Session) {
	if _, ok := s.World.Position(s.Projectile); !ok {
		s.Projectile, s.Sling, s.State = 0, 0, ProjectileDetached
		if err := c.projectiles.Arm(s); err != nil {
			c.log.Error().Err(err).Msg("re-arm projectile")
		}
		return
	}

	_ = s.World.SetPosition(s.Projectile, s.Layout.RespawnPoint)
	_ = s.World.SetVelocity(s.Projectile, physics.Point{})
	_ = s.World.SetAngularVelocity(s.Projectile, 0)

	if s.State == ProjectileLaunched || !s.World.HasConstraint(s.Sling) {
		cref, err := c.projectiles.Attach(s.World, s.Layout.Anchor, s.Projectile)
		if err != nil {
			c.log.Error().Err(err).Msg("re-attach projectile")
			return
		}
		s.Sling, s.State = cref, ProjectileAnchored
	}
}

// Teardown destroys the world and invalidates every held reference, safe to repeat
func (c *Controller) Teardown() {
	s := c.session
	if s.Closed() {
		return
	}
	s.epoch++
	s.closed = true
	c.scheduler.Clear()
	Teardown(s.World)
	s.Projectile, s.Sling, s.State = 0, 0, ProjectileDetached
	c.session = nil
	c.log.Info().Int("score", s.score).Msg("session closed")
}

// Score returns the current score, zero when no session is running
func (c *Controller) Score() int {
	if c.session.Closed() {
		return 0
	}
	return c.session.score
}

// Session exposes the live session, nil before Start and after Teardown
func (c *Controller) Session() *Session {
	return c.session
}

// Snapshot returns the presentation view of the session
func (c *Controller) Snapshot() Snapshot {
	s := c.session
	if s.Closed() {
		return Snapshot{}
	}
	return Snapshot{
		Started:        true,
		Score:          s.score,
		State:          s.State,
		Projectile:     s.Projectile,
		Anchor:         s.Layout.Anchor,
		RespawnPending: c.scheduler.Pending() > 0,
		Epoch:          s.epoch,
	}
}

// String implements fmt.Stringer for logs
func (s Snapshot) String() string {
	return fmt.Sprintf("score=%d state=%s epoch=%d", s.Score, s.State, s.Epoch)
}
