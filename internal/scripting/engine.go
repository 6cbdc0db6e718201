package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for balance tuning hooks. The engine
// core ships working built-in formulas; scripts override them when present.
// Single-goroutine access only.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory. Missing directories are not an error.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"", "combat", "progression"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", p, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// KillReward invokes the lua kill_reward(max_health, strength) hook.
// ok is false when the hook is not defined or fails, in which case the
// caller falls back to the built-in formula.
func (e *Engine) KillReward(maxHealth, strength int) (exp, gold int, ok bool) {
	fn := e.vm.GetGlobal("kill_reward")
	if fn == lua.LNil {
		return 0, 0, false
	}
	err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    2,
		Protect: true,
	}, lua.LNumber(maxHealth), lua.LNumber(strength))
	if err != nil {
		e.log.Warn("kill_reward script error", zap.Error(err))
		return 0, 0, false
	}
	goldV := e.vm.Get(-1)
	expV := e.vm.Get(-2)
	e.vm.Pop(2)

	expN, ok1 := expV.(lua.LNumber)
	goldN, ok2 := goldV.(lua.LNumber)
	if !ok1 || !ok2 {
		e.log.Warn("kill_reward returned non-numeric values")
		return 0, 0, false
	}
	return int(expN), int(goldN), true
}

// NextLevelExp invokes the lua next_level_exp(level) hook. ok is false when
// the hook is undefined or fails.
func (e *Engine) NextLevelExp(level int) (int, bool) {
	fn := e.vm.GetGlobal("next_level_exp")
	if fn == lua.LNil {
		return 0, false
	}
	err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(level))
	if err != nil {
		e.log.Warn("next_level_exp script error", zap.Error(err))
		return 0, false
	}
	v := e.vm.Get(-1)
	e.vm.Pop(1)
	n, isNum := v.(lua.LNumber)
	if !isNum {
		return 0, false
	}
	return int(n), true
}

func (e *Engine) Close() {
	e.vm.Close()
}
