package world

// Hazard is an environmental kill spot on the street.
type Hazard struct {
	// Center is the hazard's centre point.
	Center Vec
	// PlayerReachX and PlayerReachY bound how far the player may stand from Center to use it.
	PlayerReachX float64
	PlayerReachY float64
	// EnemyReach is the maximum distance from Center at which an enemy can be grabbed.
	EnemyReach float64
}

// PlayerInReach reports whether p is close enough to use the hazard.
func (h Hazard) PlayerInReach(p Vec) bool {
	dx := p.X - h.Center.X
	dy := p.Y - h.Center.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx <= h.PlayerReachX && dy <= h.PlayerReachY
}

// Arena is the bounded street on which the encounter is fought.
type Arena struct {
	Width  float64
	Height float64
	Hazard Hazard
}

// Step integrates b's velocity over dtMs milliseconds and clamps it inside the arena.
//
// Precondition: dtMs >= 0.
// Postcondition: 0 <= b.Position.X <= Width and 0 <= b.Position.Y <= Height.
func (a Arena) Step(b *Body, dtMs int64) {
	dt := float64(dtMs) / 1000
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.Position.X = clamp(b.Position.X, 0, a.Width)
	b.Position.Y = clamp(b.Position.Y, 0, a.Height)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
