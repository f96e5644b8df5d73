package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/slingshot/events"
	"github.com/lixenwraith/slingshot/parameter"
	"github.com/lixenwraith/slingshot/physics"
)

// ProjectileManager owns the aim → release → respawn protocol
// State lives in the Session; the manager only holds tuning and the scheduler
type ProjectileManager struct {
	settings  Settings
	scheduler *Scheduler
	log       zerolog.Logger
}

// NewProjectileManager creates a manager scheduling respawns on scheduler
func NewProjectileManager(settings Settings, scheduler *Scheduler, logger zerolog.Logger) *ProjectileManager {
	return &ProjectileManager{
		settings:  settings,
		scheduler: scheduler,
		log:       logger.With().Str("component", "projectile").Logger(),
	}
}

// SpawnProjectile creates a dynamic circle resting radius above anchor
// It shares the slingshot's collision group so the two never collide
func (m *ProjectileManager) SpawnProjectile(w World, anchor physics.Point, radius float64) (physics.BodyRef, error) {
	return w.AddBody(physics.BodySpec{
		Label:       physics.LabelProjectile,
		Shape:       physics.Circle(radius),
		Position:    physics.Point{X: anchor.X, Y: anchor.Y - radius},
		Restitution: m.settings.ProjectileRestitution,
		Friction:    parameter.DefaultFriction,
		Group:       parameter.SlingshotGroup,
	})
}

// Attach creates the elastic slingshot constraint from anchor to projectile
// Its rest length is the spawn offset, so the projectile rests one radius above anchor
// The caller guarantees any previous constraint on projectile was removed
func (m *ProjectileManager) Attach(w World, anchor physics.Point, projectile physics.BodyRef) (physics.ConstraintRef, error) {
	return w.AddConstraint(physics.ConstraintSpec{
		Kind:      physics.ConstraintElastic,
		Anchor:    anchor,
		Body:      projectile,
		Stiffness: m.settings.SlingStiffness,
		Damping:   m.settings.SlingDamping,
		Length:    m.settings.ProjectileRadius,
	})
}

// Arm spawns a projectile, attaches it and moves the session to Anchored
func (m *ProjectileManager) Arm(s *Session) error {
	ref, err := m.SpawnProjectile(s.World, s.Layout.Anchor, m.settings.ProjectileRadius)
	if err != nil {
		return fmt.Errorf("spawn projectile: %w", err)
	}
	cref, err := m.Attach(s.World, s.Layout.Anchor, ref)
	if err != nil {
		_ = s.World.RemoveBody(ref)
		return fmt.Errorf("attach projectile: %w", err)
	}
	s.Projectile, s.Sling, s.State = ref, cref, ProjectileAnchored
	return nil
}

// OnReleaseDetected launches the projectile if dragged is the anchored projectile
// Any other body, or a projectile already in flight, is ignored
// Returns true if a launch happened
func (m *ProjectileManager) OnReleaseDetected(s *Session, dragged physics.BodyRef) bool {
	if s.Closed() || s.State != ProjectileAnchored || dragged == 0 || dragged != s.Projectile {
		m.log.Debug().Uint64("body", uint64(dragged)).Msg("release ignored")
		return false
	}

	// Constraint removal strictly precedes the impulse
	if err := s.World.RemoveConstraint(s.Sling); err != nil && !errors.Is(err, physics.ErrStaleConstraint) {
		m.log.Warn().Err(err).Msg("remove slingshot constraint")
	}
	s.Sling = 0
	s.State = ProjectileLaunched

	if pos, ok := s.World.Position(s.Projectile); ok {
		launch := s.Layout.Anchor.Sub(pos)
		impulse := launch.Scale(m.settings.PowerFactor)
		if err := s.World.ApplyImpulse(s.Projectile, pos, impulse); err != nil {
			m.log.Warn().Err(err).Msg("apply launch impulse")
		}
		m.log.Debug().
			Float64("dx", launch.X).
			Float64("dy", launch.Y).
			Float64("pull", launch.Len()).
			Msg("projectile launched")
	}

	epoch, target := s.epoch, s.Projectile
	m.scheduler.After(m.settings.RespawnDelay, func() {
		m.respawn(s, epoch, target)
	})
	return true
}

// respawn replaces the launched projectile with a fresh anchored one
// A task scheduled before a reset or teardown finds a newer epoch and does nothing
func (m *ProjectileManager) respawn(s *Session, epoch uint64, target physics.BodyRef) {
	if s.Closed() || s.epoch != epoch || s.Projectile != target {
		m.log.Debug().
			Uint64("scheduled_epoch", epoch).
			Uint64("epoch", s.epoch).
			Msg("stale respawn dropped")
		return
	}

	if err := s.World.RemoveBody(target); err != nil && !errors.Is(err, physics.ErrStaleBody) {
		m.log.Warn().Err(err).Msg("remove launched projectile")
	}
	s.Projectile, s.State = 0, ProjectileDetached

	if err := m.Arm(s); err != nil {
		m.log.Error().Err(err).Msg("respawn")
		return
	}
	m.log.Debug().Uint64("body", uint64(s.Projectile)).Msg("projectile respawned")
}

// HandleEvent routes drag-end events to OnReleaseDetected
func (m *ProjectileManager) HandleEvent(s *Session, ev events.GameEvent) {
	if p, ok := ev.Payload.(*events.DragEndPayload); ok {
		m.OnReleaseDetected(s, p.Body)
	}
}

// EventTypes implements events.Handler
func (m *ProjectileManager) EventTypes() []events.EventType {
	return []events.EventType{events.EventDragEnd}
}
