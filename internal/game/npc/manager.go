package npc

import (
	"fmt"

	"github.com/cory-johannsen/vendetta/internal/game/combat"
	"github.com/cory-johannsen/vendetta/internal/game/dice"
	"github.com/cory-johannsen/vendetta/internal/game/world"
)

// Roster tracks the enemies in the simulation in spawn order.
// It is not safe for concurrent use; the simulation is single-threaded.
type Roster struct {
	registry *Registry
	behavior Behavior
	timers   *combat.Scheduler
	src      dice.Source
	enemies  []*Enemy
	counter  uint64
}

// NewRoster creates an empty Roster that spawns enemies from registry.
//
// Precondition: registry, timers, and src must be non-nil.
func NewRoster(registry *Registry, b Behavior, timers *combat.Scheduler, src dice.Source) *Roster {
	return &Roster{registry: registry, behavior: b, timers: timers, src: src}
}

// Spawn creates an enemy of typeID at pos and appends it to the roster.
// Unknown types spawn with the registry's fallback profile.
//
// Postcondition: Returns a new Enemy with a roster-unique ID.
func (r *Roster) Spawn(typeID string, pos world.Vec) *Enemy {
	tmpl, _ := r.registry.Lookup(typeID)
	r.counter++
	id := fmt.Sprintf("%s-%d", tmpl.ID, r.counter)
	e := NewEnemy(id, tmpl, pos, r.behavior, r.timers, r.src)
	r.enemies = append(r.enemies, e)
	return e
}

// All returns every enemy still in the simulation, dead or alive, in spawn order.
func (r *Roster) All() []*Enemy { return r.enemies }

// Alive returns the living enemies in spawn order.
func (r *Roster) Alive() []*Enemy {
	var alive []*Enemy
	for _, e := range r.enemies {
		if !e.IsDead() {
			alive = append(alive, e)
		}
	}
	return alive
}

// AliveCount returns the number of living enemies.
func (r *Roster) AliveCount() int {
	n := 0
	for _, e := range r.enemies {
		if !e.IsDead() {
			n++
		}
	}
	return n
}

// Get returns the enemy with the given ID.
//
// Postcondition: Returns (enemy, true) if found, or (nil, false) otherwise.
func (r *Roster) Get(id string) (*Enemy, bool) {
	for _, e := range r.enemies {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Remove deletes the enemy with the given ID from the simulation.
//
// Postcondition: Returns false if no such enemy exists.
func (r *Roster) Remove(id string) bool {
	for i, e := range r.enemies {
		if e.ID == id {
			r.enemies = append(r.enemies[:i], r.enemies[i+1:]...)
			return true
		}
	}
	return false
}

// Clear kills and removes every enemy, cancelling their timers.
func (r *Roster) Clear() {
	for _, e := range r.enemies {
		e.Kill()
	}
	r.enemies = nil
}
