package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/vendetta/internal/game/dice"
)

// Manager owns the sandboxed LState that encounter hooks run in.
// Calls are serialized; an LState is single-threaded.
type Manager struct {
	mu        sync.Mutex
	L         *lua.LState
	instLimit int
	src       dice.Source
	logger    *zap.Logger

	// QueryRespect backs engine.respect(). nil returns 0.
	QueryRespect func() int
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: src and logger must be non-nil.
// Postcondition: Returns a non-nil Manager; CallHook is a no-op until Load succeeds.
func NewManager(src dice.Source, logger *zap.Logger) *Manager {
	if src == nil {
		panic("scripting.NewManager: src must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{src: src, logger: logger}
}

// Load creates a fresh sandboxed VM, registers the engine.* modules, and
// executes every *.lua file in scriptDir in lexicographic order. A
// previously loaded VM is replaced only when the new one loads cleanly.
//
// Precondition: scriptDir must be a readable directory; instLimit >= 0.
// Postcondition: Returns an error on a read failure or a Lua load failure.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L := NewSandboxedState()
	m.RegisterModules(L)
	for _, path := range luaFiles {
		release := Budget(L, instLimit)
		err := L.DoFile(path)
		release()
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	if m.L != nil {
		m.L.Close()
	}
	m.L = L
	m.instLimit = instLimit
	m.mu.Unlock()

	m.logger.Info("scripts loaded",
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// CallHook calls the named Lua global function under a fresh instruction
// budget. Returns (LNil, nil) if no VM is loaded or the hook is not defined.
// Lua runtime errors, including an exhausted budget, are logged at Warn level
// and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.call(hook, args...), nil
}

// call runs hook with m.mu held.
func (m *Manager) call(hook string, args ...lua.LValue) lua.LValue {
	if m.L == nil {
		return lua.LNil
	}
	L := m.L

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil
	}

	release := Budget(L, m.instLimit)
	err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...)
	release()
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret
}

// Close releases the VM. CallHook afterwards is a no-op.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L != nil {
		m.L.Close()
		m.L = nil
	}
}
