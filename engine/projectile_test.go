package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/lixenwraith/slingshot/parameter"
	"github.com/lixenwraith/slingshot/physics"
)

func TestArm_SpawnsAnchoredProjectile(t *testing.T) {
	rig := newTestRig(t)
	s := rig.session

	if s.State != ProjectileAnchored {
		t.Fatalf("state = %s, want anchored", s.State)
	}
	b, ok := rig.world.bodies[s.Projectile]
	if !ok {
		t.Fatal("projectile not in world")
	}
	want := physics.Point{X: s.Layout.Anchor.X, Y: s.Layout.Anchor.Y - parameter.ProjectileRadius}
	if b.spec.Position != want {
		t.Errorf("spawn position = %+v, want %+v", b.spec.Position, want)
	}
	if b.spec.Group != parameter.SlingshotGroup || b.spec.Restitution != parameter.ProjectileRestitution {
		t.Errorf("projectile spec = %+v", b.spec)
	}
	c, ok := rig.world.constraints[s.Sling]
	if !ok || c.Body != s.Projectile || c.Anchor != s.Layout.Anchor {
		t.Errorf("constraint = %+v ok=%v", c, ok)
	}
	if c.Kind != physics.ConstraintElastic || c.Length != parameter.ProjectileRadius {
		t.Errorf("constraint rest = kind %d length %v, want elastic at radius %v", c.Kind, c.Length, parameter.ProjectileRadius)
	}
}

func TestOnReleaseDetected_IgnoresOtherBodies(t *testing.T) {
	rig := newTestRig(t)
	s := rig.session
	before := len(rig.world.ops)

	box, _ := rig.world.AddBody(physics.BodySpec{Label: physics.LabelBox, Shape: physics.Rect(60, 60)})
	before++

	for _, ref := range []physics.BodyRef{box, 0, s.Layout.Ground} {
		if rig.projectiles.OnReleaseDetected(s, ref) {
			t.Errorf("release of %d launched", ref)
		}
	}
	if len(rig.world.ops) != before {
		t.Errorf("world mutated: %v", rig.world.ops[before:])
	}
	if s.State != ProjectileAnchored || rig.scheduler.Pending() != 0 {
		t.Errorf("state=%s pending=%d", s.State, rig.scheduler.Pending())
	}
}

func TestOnReleaseDetected_RemovesConstraintBeforeImpulse(t *testing.T) {
	rig := newTestRig(t)
	s := rig.session
	sling := s.Sling

	if !rig.projectiles.OnReleaseDetected(s, s.Projectile) {
		t.Fatal("release did not launch")
	}

	ops := rig.world.ops
	removeAt, impulseAt := -1, -1
	for i, op := range ops {
		switch op {
		case fmt.Sprintf("remove constraint %d", sling):
			removeAt = i
		case fmt.Sprintf("impulse %d", s.Projectile):
			impulseAt = i
		}
	}
	if removeAt < 0 || impulseAt < 0 || removeAt > impulseAt {
		t.Fatalf("ops = %v", ops)
	}
	if s.State != ProjectileLaunched || s.Sling != 0 {
		t.Errorf("state=%s sling=%d", s.State, s.Sling)
	}
	if rig.world.HasConstraint(sling) {
		t.Error("slingshot constraint still live")
	}
}

func TestOnReleaseDetected_ImpulsePointsBackThroughAnchor(t *testing.T) {
	rig := newTestRig(t)
	s := rig.session

	dragged := s.Layout.Anchor.Add(physics.Point{X: -40, Y: 20})
	rig.world.SetPosition(s.Projectile, dragged)
	rig.projectiles.OnReleaseDetected(s, s.Projectile)

	imp := rig.world.bodies[s.Projectile].impulses
	if len(imp) != 1 {
		t.Fatalf("impulses = %v", imp)
	}
	want := physics.Point{X: 40, Y: -20}.Scale(parameter.PowerFactor)
	if imp[0] != want {
		t.Errorf("impulse = %+v, want %+v", imp[0], want)
	}
}

func TestOnReleaseDetected_SecondReleaseIgnored(t *testing.T) {
	rig := newTestRig(t)
	s := rig.session

	rig.projectiles.OnReleaseDetected(s, s.Projectile)
	if rig.projectiles.OnReleaseDetected(s, s.Projectile) {
		t.Error("launched projectile launched again")
	}
	if len(rig.world.bodies[s.Projectile].impulses) != 1 || rig.scheduler.Pending() != 1 {
		t.Error("second release had effects")
	}
}

func TestRespawn_AfterDelay(t *testing.T) {
	rig := newTestRig(t)
	s := rig.session
	old := s.Projectile

	rig.projectiles.OnReleaseDetected(s, old)

	if n := rig.advance(parameter.RespawnDelay - time.Millisecond); n != 0 {
		t.Fatalf("respawned early")
	}
	if n := rig.advance(time.Millisecond); n != 1 {
		t.Fatalf("respawn did not run")
	}

	if _, ok := rig.world.bodies[old]; ok {
		t.Error("launched projectile not removed")
	}
	if s.Projectile == old || s.Projectile == 0 {
		t.Errorf("projectile = %d, old = %d", s.Projectile, old)
	}
	if s.State != ProjectileAnchored || !rig.world.HasConstraint(s.Sling) {
		t.Errorf("state=%s sling live=%v", s.State, rig.world.HasConstraint(s.Sling))
	}
	if rig.world.count(physics.LabelProjectile) != 1 {
		t.Errorf("projectile count = %d", rig.world.count(physics.LabelProjectile))
	}
}

func TestRespawn_StaleEpochIsNoop(t *testing.T) {
	rig := newTestRig(t)
	s := rig.session
	launched := s.Projectile

	rig.projectiles.OnReleaseDetected(s, launched)
	s.epoch++
	opsBefore := len(rig.world.ops)

	rig.advance(parameter.RespawnDelay)

	if len(rig.world.ops) != opsBefore {
		t.Errorf("stale respawn mutated world: %v", rig.world.ops[opsBefore:])
	}
	if s.Projectile != launched {
		t.Error("stale respawn replaced projectile")
	}
}

func TestRespawn_AfterTeardownIsNoop(t *testing.T) {
	rig := newTestRig(t)
	s := rig.session

	rig.projectiles.OnReleaseDetected(s, s.Projectile)
	s.closed = true
	Teardown(s.World)

	rig.advance(parameter.RespawnDelay)
	if rig.world.destroyed != 1 || len(rig.world.bodies) != 0 {
		t.Error("respawn touched a destroyed world")
	}
}
