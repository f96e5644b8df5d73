package engine

import (
	"fmt"

	"github.com/lixenwraith/slingshot/parameter"
	"github.com/lixenwraith/slingshot/physics"
)

// Viewport is the playfield size in world pixels
type Viewport struct {
	Width, Height float64
}

// Clamp raises a degenerate viewport to the minimum playable size
func (v Viewport) Clamp() Viewport {
	v.Width = max(v.Width, parameter.MinViewportWidth)
	v.Height = max(v.Height, parameter.MinViewportHeight)
	return v
}

// Layout is the screen-relative geometry of a session, fixed at startup
type Layout struct {
	Viewport  Viewport
	Ground    physics.BodyRef
	Slingshot physics.BodyRef

	// Anchor is where the slingshot constraint originates (top of the slingshot)
	Anchor physics.Point
	// PyramidAnchor is the pyramid center column at its base height
	PyramidAnchor physics.Point
	// RespawnPoint is where reset parks the projectile
	RespawnPoint physics.Point
}

// NewLayout computes fixture geometry for a viewport without touching any world
func NewLayout(v Viewport, s Settings) Layout {
	v = v.Clamp()
	slingX := v.Width * parameter.SlingshotXFraction
	return Layout{
		Viewport: v,
		Anchor: physics.Point{
			X: slingX,
			Y: v.Height - s.SlingshotHeight,
		},
		PyramidAnchor: physics.Point{
			X: v.Width * parameter.PyramidXFraction,
			Y: v.Height - float64(s.Rows)*s.BoxSize/2,
		},
		RespawnPoint: physics.Point{
			X: slingX,
			Y: v.Height - s.SlingshotHeight - s.ProjectileRadius - parameter.ResetLift,
		},
	}
}

// fixtureSpecs returns the static ground and slingshot bodies for a layout
func fixtureSpecs(l Layout, s Settings) []physics.BodySpec {
	v := l.Viewport
	return []physics.BodySpec{
		{
			Label:    physics.LabelGround,
			Shape:    physics.Rect(v.Width, s.GroundHeight),
			Position: physics.Point{X: v.Width / 2, Y: v.Height},
			Static:   true,
			Friction: parameter.DefaultFriction,
		},
		{
			Label:    physics.LabelSlingshot,
			Shape:    physics.Rect(s.SlingshotWidth, s.SlingshotHeight),
			Position: physics.Point{X: l.Anchor.X, Y: v.Height - s.SlingshotHeight/2},
			Static:   true,
			Group:    parameter.SlingshotGroup,
		},
	}
}

// Bootstrap creates a world holding exactly one ground and one slingshot fixture
// On failure the partially built world is torn down and nil is returned
func Bootstrap(newWorld WorldFactory, v Viewport, s Settings) (World, Layout, error) {
	layout := NewLayout(v, s)

	w := newWorld()
	if w == nil {
		return nil, Layout{}, fmt.Errorf("bootstrap: world factory returned nil")
	}
	refs, err := w.AddBodies(fixtureSpecs(layout, s))
	if err != nil {
		Teardown(w)
		return nil, Layout{}, fmt.Errorf("bootstrap fixtures: %w", err)
	}
	layout.Ground, layout.Slingshot = refs[0], refs[1]
	return w, layout, nil
}

// Teardown releases every body and constraint, safe on nil or destroyed worlds
func Teardown(w World) {
	if w == nil || w.Closed() {
		return
	}
	w.Destroy()
}
