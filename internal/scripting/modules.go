package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/vendetta/internal/game/dice"
)

// RegisterModules registers the engine.* Lua tables into L:
//
//	engine.log.debug/info/warn/error(msg)
//	engine.dice.between(lo, hi)
//	engine.respect()
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()

	log := L.NewTable()
	for name, fn := range map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	} {
		L.SetField(log, name, L.NewFunction(m.logFunc(fn)))
	}
	L.SetField(engine, "log", log)

	d := L.NewTable()
	L.SetField(d, "between", L.NewFunction(m.between))
	L.SetField(engine, "dice", d)

	L.SetField(engine, "respect", L.NewFunction(func(L *lua.LState) int {
		v := 0
		if m.QueryRespect != nil {
			v = m.QueryRespect()
		}
		L.Push(lua.LNumber(v))
		return 1
	}))

	L.SetGlobal("engine", engine)
}

func (m *Manager) logFunc(log func(string, ...zap.Field)) lua.LGFunction {
	return func(L *lua.LState) int {
		log("lua: " + L.CheckString(1))
		return 0
	}
}

// between returns an integer in [lo, hi]; swapped bounds are normalized.
func (m *Manager) between(L *lua.LState) int {
	lo := L.CheckInt(1)
	hi := L.CheckInt(2)
	if hi < lo {
		lo, hi = hi, lo
	}
	L.Push(lua.LNumber(dice.Between(m.src, lo, hi)))
	return 1
}
