package combat

// ParryWindow is a per-defender pair of timers: the window during which an
// incoming hit is parried, and the cooldown before another attempt is allowed.
//
// The cooldown counts from the attempt, not from the window's natural expiry.
type ParryWindow struct {
	windowMs      int64
	cooldownMs    int64
	openUntil     int64
	cooldownUntil int64
}

// NewParryWindow creates a closed ParryWindow.
//
// Precondition: windowMs >= 0; cooldownMs >= 0.
func NewParryWindow(windowMs, cooldownMs int64) *ParryWindow {
	return &ParryWindow{windowMs: windowMs, cooldownMs: cooldownMs}
}

// AttemptOpen opens the window at nowMs unless the cooldown is still running.
//
// Postcondition: on success, OpenUntil() == nowMs+windowMs and the cooldown
// runs until nowMs+cooldownMs; on failure nothing changes.
func (p *ParryWindow) AttemptOpen(nowMs int64) bool {
	if nowMs < p.cooldownUntil {
		return false
	}
	p.openUntil = nowMs + p.windowMs
	p.cooldownUntil = nowMs + p.cooldownMs
	return true
}

// OpenUntil returns the raw expiry timestamp; the window is open while now <= OpenUntil().
func (p *ParryWindow) OpenUntil() int64 { return p.openUntil }

// CooldownUntil returns the earliest timestamp at which AttemptOpen can succeed.
func (p *ParryWindow) CooldownUntil() int64 { return p.cooldownUntil }

// Consume closes the window after a successful parry so it cannot absorb a
// second attack. Idempotent.
func (p *ParryWindow) Consume() { p.openUntil = 0 }

// Active reports whether the window is open at nowMs.
func (p *ParryWindow) Active(nowMs int64) bool {
	return p.openUntil != 0 && nowMs <= p.openUntil
}

// Remaining returns the milliseconds left in the window, or 0 if it is closed.
func (p *ParryWindow) Remaining(nowMs int64) int64 {
	if !p.Active(nowMs) {
		return 0
	}
	return p.openUntil - nowMs
}
