package engine

import (
	"math"
	"time"

	"github.com/lixenwraith/slingshot/parameter"
)

// Settings is the gameplay tuning consumed by the core components
type Settings struct {
	Rows    int
	BoxSize float64

	GroundHeight    float64
	SlingshotWidth  float64
	SlingshotHeight float64

	ProjectileRadius      float64
	ProjectileRestitution float64
	SlingStiffness        float64
	SlingDamping          float64
	PowerFactor           float64
	RespawnDelay          time.Duration

	ScorePerHit int
}

// DefaultSettings returns the tuning from the parameter package
func DefaultSettings() Settings {
	return Settings{
		Rows:                  parameter.PyramidRows,
		BoxSize:               parameter.BoxSize,
		GroundHeight:          parameter.GroundHeight,
		SlingshotWidth:        parameter.SlingshotWidth,
		SlingshotHeight:       parameter.SlingshotHeight,
		ProjectileRadius:      parameter.ProjectileRadius,
		ProjectileRestitution: parameter.ProjectileRestitution,
		SlingStiffness:        parameter.SlingStiffness,
		SlingDamping:          parameter.SlingDamping,
		PowerFactor:           parameter.PowerFactor,
		RespawnDelay:          parameter.RespawnDelay,
		ScorePerHit:           parameter.ScorePerGroundHit,
	}
}

// Normalize clamps degenerate values to the minimum viable ones instead of failing
// Non-finite values fall back to the defaults
func (s Settings) Normalize() Settings {
	d := DefaultSettings()
	for _, f := range []struct{ v, def *float64 }{
		{&s.BoxSize, &d.BoxSize},
		{&s.GroundHeight, &d.GroundHeight},
		{&s.SlingshotWidth, &d.SlingshotWidth},
		{&s.SlingshotHeight, &d.SlingshotHeight},
		{&s.ProjectileRadius, &d.ProjectileRadius},
		{&s.ProjectileRestitution, &d.ProjectileRestitution},
		{&s.SlingStiffness, &d.SlingStiffness},
		{&s.SlingDamping, &d.SlingDamping},
		{&s.PowerFactor, &d.PowerFactor},
	} {
		if math.IsNaN(*f.v) || math.IsInf(*f.v, 0) {
			*f.v = *f.def
		}
	}

	s.Rows = max(0, min(s.Rows, parameter.MaxPyramidRows))
	s.BoxSize = max(s.BoxSize, parameter.MinBoxSize)
	s.ProjectileRadius = max(s.ProjectileRadius, parameter.MinProjectileRadius)
	if s.GroundHeight <= 0 {
		s.GroundHeight = d.GroundHeight
	}
	if s.SlingshotWidth <= 0 {
		s.SlingshotWidth = d.SlingshotWidth
	}
	if s.SlingshotHeight <= 0 {
		s.SlingshotHeight = d.SlingshotHeight
	}
	s.ProjectileRestitution = max(0, s.ProjectileRestitution)
	if s.SlingStiffness <= 0 {
		s.SlingStiffness = d.SlingStiffness
	}
	s.SlingDamping = max(0, s.SlingDamping)
	s.PowerFactor = max(0, s.PowerFactor)
	if s.RespawnDelay <= 0 {
		s.RespawnDelay = d.RespawnDelay
	}
	s.ScorePerHit = max(0, s.ScorePerHit)
	return s
}
