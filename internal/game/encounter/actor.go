package encounter

import (
	"fmt"

	"github.com/cory-johannsen/vendetta/internal/game/combat"
	"github.com/cory-johannsen/vendetta/internal/game/npc"
	"github.com/cory-johannsen/vendetta/internal/game/player"
	"github.com/cory-johannsen/vendetta/internal/game/world"
)

// PlayerID is the actor id reported for the player in events and logs.
const PlayerID = "player"

// Actor is a combatant: exactly one of PlayerActor or EnemyActor.
// The set is closed; every switch over Actor panics on an unknown kind.
type Actor interface {
	actor()
}

// PlayerActor wraps the player as an Actor.
type PlayerActor struct{ P *player.Player }

// EnemyActor wraps an enemy as an Actor.
type EnemyActor struct{ E *npc.Enemy }

func (PlayerActor) actor() {}
func (EnemyActor) actor()  {}

func unknownActor(a Actor) string {
	return fmt.Sprintf("encounter: unknown actor kind %T", a)
}

func vitalsOf(a Actor) *combat.Vitals {
	switch a := a.(type) {
	case PlayerActor:
		return &a.P.Vitals
	case EnemyActor:
		return &a.E.Vitals
	default:
		panic(unknownActor(a))
	}
}

func positionOf(a Actor) world.Vec {
	switch a := a.(type) {
	case PlayerActor:
		return a.P.Body.Position
	case EnemyActor:
		return a.E.Body.Position
	default:
		panic(unknownActor(a))
	}
}

func idOf(a Actor) string {
	switch a := a.(type) {
	case PlayerActor:
		return PlayerID
	case EnemyActor:
		return a.E.ID
	default:
		panic(unknownActor(a))
	}
}
