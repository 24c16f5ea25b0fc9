// Package world provides the 2D street model: positions, velocity-driven
// bodies, axis-aligned regions, and the arena bounds and hazard.
package world

import "math"

// Vec is a 2D position or velocity. X grows to the right, Y grows downward.
type Vec struct {
	X float64
	Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v*k.
func (v Vec) Scale(k float64) Vec { return Vec{X: v.X * k, Y: v.Y * k} }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec) float64 { return a.Sub(b).Len() }

// Direction returns +1 when target is at or to the right of source, -1 otherwise.
// It is the horizontal sign of a knockback pushing target away from source.
func Direction(source, target Vec) float64 {
	if target.X >= source.X {
		return 1
	}
	return -1
}

// Rect is an axis-aligned region described by its centre and full size.
type Rect struct {
	Center Vec
	W      float64
	H      float64
}

// RectAt returns a w×h region centred on c.
func RectAt(c Vec, w, h float64) Rect { return Rect{Center: c, W: w, H: h} }

// Overlaps reports whether r and o intersect. Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return math.Abs(r.Center.X-o.Center.X)*2 < r.W+o.W &&
		math.Abs(r.Center.Y-o.Center.Y)*2 < r.H+o.H
}

// Body is a physical body whose velocity the combat core can set.
type Body struct {
	Position Vec
	Velocity Vec
}

// NewBody creates a motionless body at p.
func NewBody(p Vec) *Body { return &Body{Position: p} }

// SetVelocity replaces the body's velocity.
func (b *Body) SetVelocity(vx, vy float64) { b.Velocity = Vec{X: vx, Y: vy} }

// SetVelocityX replaces only the horizontal velocity.
func (b *Body) SetVelocityX(vx float64) { b.Velocity.X = vx }

// Stop zeroes the velocity.
func (b *Body) Stop() { b.Velocity = Vec{} }

// MoveToward sets the velocity to speed units per second along the line to target.
// A body already at target stops.
func (b *Body) MoveToward(target Vec, speed float64) {
	d := target.Sub(b.Position)
	l := d.Len()
	if l == 0 {
		b.Stop()
		return
	}
	b.Velocity = d.Scale(speed / l)
}
