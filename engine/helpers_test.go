package engine

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var testViewport = Viewport{Width: 1200, Height: 800}

// testRig holds a session running on a fakeWorld with a mock clock
type testRig struct {
	session     *Session
	world       *fakeWorld
	clock       *MockTimeProvider
	scheduler   *Scheduler
	projectiles *ProjectileManager
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	settings := DefaultSettings()
	fw := newFakeWorld()
	w, layout, err := Bootstrap(func() World { return fw }, testViewport, settings)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	clock := NewMockTimeProvider(time.Unix(0, 0))
	scheduler := NewScheduler(clock)
	rig := &testRig{
		session:     &Session{World: w, Layout: layout, Settings: settings},
		world:       fw,
		clock:       clock,
		scheduler:   scheduler,
		projectiles: NewProjectileManager(settings, scheduler, zerolog.Nop()),
	}
	if err := rig.projectiles.Arm(rig.session); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	return rig
}

// advance moves the mock clock and runs whatever became due
func (r *testRig) advance(d time.Duration) int {
	r.clock.Advance(d)
	return r.scheduler.RunDue()
}
