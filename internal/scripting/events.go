package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/vendetta/internal/game/encounter"
)

// HookName returns the Lua global invoked for events of kind k.
func HookName(k encounter.EventKind) string {
	return "on_" + string(k)
}

// Dispatch calls the hook for ev with a single table argument carrying the
// event fields. Hooks that are not defined are skipped.
//
// Postcondition: Lua errors are logged at Warn level and never returned.
func (m *Manager) Dispatch(ev encounter.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	L := m.L
	if L == nil {
		return
	}

	t := L.NewTable()
	L.SetField(t, "kind", lua.LString(ev.Kind))
	L.SetField(t, "at_ms", lua.LNumber(ev.AtMs))
	L.SetField(t, "actor", lua.LString(ev.ActorID))
	L.SetField(t, "value", lua.LNumber(ev.Value))
	L.SetField(t, "previous", lua.LNumber(ev.Previous))
	if ev.Kind == encounter.EventHitResolved {
		L.SetField(t, "attacker", lua.LString(ev.AttackerID))
		L.SetField(t, "outcome", lua.LString(ev.Outcome))
		L.SetField(t, "damage", lua.LNumber(ev.Damage))
	}
	m.call(HookName(ev.Kind), t)
}

// Attach subscribes the Manager to bus so every flushed event reaches its hook.
//
// Precondition: bus must be non-nil.
func (m *Manager) Attach(bus *encounter.Bus) {
	bus.Subscribe(m.Dispatch)
}
