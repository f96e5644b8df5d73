package physics

import "github.com/ByteArena/box2d"

// Info returns the identity record of a live body
func (w *World) Info(ref BodyRef) (BodyInfo, bool) {
	rec, err := w.lookup(ref)
	if err != nil {
		return BodyInfo{}, false
	}
	return rec.info, true
}

// Position returns the body center in pixels
func (w *World) Position(ref BodyRef) (Point, bool) {
	rec, err := w.lookup(ref)
	if err != nil {
		return Point{}, false
	}
	return w.toPixels(rec.b.GetPosition()), true
}

// Velocity returns linear velocity in pixels/s
func (w *World) Velocity(ref BodyRef) (Point, bool) {
	rec, err := w.lookup(ref)
	if err != nil {
		return Point{}, false
	}
	return w.toPixels(rec.b.GetLinearVelocity()), true
}

// AngularVelocity returns angular velocity in rad/s
func (w *World) AngularVelocity(ref BodyRef) (float64, bool) {
	rec, err := w.lookup(ref)
	if err != nil {
		return 0, false
	}
	return rec.b.GetAngularVelocity(), true
}

// ApplyImpulse applies an instantaneous impulse (pixel-space momentum) at point
func (w *World) ApplyImpulse(ref BodyRef, point, impulse Point) error {
	rec, err := w.lookup(ref)
	if err != nil {
		return err
	}
	rec.b.ApplyLinearImpulse(w.toMeters(impulse), w.toMeters(point), true)
	return nil
}

// ApplyForce applies a force (pixel-space) at point for the next step only
func (w *World) ApplyForce(ref BodyRef, point, force Point) error {
	rec, err := w.lookup(ref)
	if err != nil {
		return err
	}
	rec.b.ApplyForce(w.toMeters(force), w.toMeters(point), true)
	return nil
}

// SetPosition teleports the body center, rotation is kept
func (w *World) SetPosition(ref BodyRef, p Point) error {
	rec, err := w.lookup(ref)
	if err != nil {
		return err
	}
	rec.b.SetTransform(w.toMeters(p), rec.b.GetAngle())
	rec.b.SetAwake(true)
	return nil
}

// SetVelocity sets linear velocity in pixels/s
func (w *World) SetVelocity(ref BodyRef, v Point) error {
	rec, err := w.lookup(ref)
	if err != nil {
		return err
	}
	rec.b.SetLinearVelocity(w.toMeters(v))
	return nil
}

// SetAngularVelocity sets angular velocity in rad/s
func (w *World) SetAngularVelocity(ref BodyRef, omega float64) error {
	rec, err := w.lookup(ref)
	if err != nil {
		return err
	}
	rec.b.SetAngularVelocity(omega)
	return nil
}

// mass returns body mass in kg, zero for static bodies
func (rec *bodyRecord) mass() float64 {
	if rec.b.GetType() != box2d.B2BodyType.B2_dynamicBody {
		return 0
	}
	return rec.b.GetMass()
}
