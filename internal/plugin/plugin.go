// Package plugin loads Lua scripts that contribute extra console commands.
// Plugins are loaded once, before the command registry is built; the
// registry never changes afterwards.
package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/glo0ml34f/talon/internal/console"
)

// Info describes a plugin's metadata.
type Info struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type command struct {
	token    string
	describe string
	fn       *lua.LFunction
}

// Plugin represents a loaded Lua plugin.
type Plugin struct {
	Info     Info
	Handle   string
	path     string
	L        *lua.LState
	shut     *lua.LFunction
	commands []command
	closed   bool
}

// Manager keeps track of loaded plugins in load order.
type Manager struct {
	plugins map[string]*Plugin
	order   []string
	log     *zap.Logger
}

// NewManager returns an empty manager. A nil logger discards output.
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{plugins: map[string]*Plugin{}, log: log}
}

// LoadAll loads every *.lua file in dir in name order. A missing directory
// is not an error; a plugin that fails to load is logged and skipped.
func (m *Manager) LoadAll(dir string) error {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read plugins dir: %w", err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), ".lua") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if _, err := m.Load(path); err != nil {
			m.log.Warn("plugin load failed", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}

// Load loads a plugin from the given path and runs its init function.
func (m *Manager) Load(path string) (*Plugin, error) {
	L, err := newState(m.log.With(zap.String("path", path)))
	if err != nil {
		return nil, err
	}
	p := &Plugin{Handle: uuid.NewString(), L: L, path: path}
	api := L.NewTable()
	L.SetGlobal("plugin", api)
	L.SetFuncs(api, map[string]lua.LGFunction{
		"register": func(L *lua.LState) int {
			p.checkHandle(L)
			var inf Info
			if err := json.Unmarshal([]byte(L.CheckString(2)), &inf); err != nil {
				L.RaiseError("register: %v", err)
				return 0
			}
			if inf.Name == "" {
				L.RaiseError("register: missing name")
				return 0
			}
			p.Info = inf
			L.Push(lua.LString(p.Handle))
			return 1
		},
		"command": func(L *lua.LState) int {
			p.checkHandle(L)
			token := L.CheckString(2)
			describe := L.CheckString(3)
			name := L.CheckString(4)
			fn, ok := L.GetGlobal(name).(*lua.LFunction)
			if !ok {
				L.RaiseError("command %s: function %s not found", token, name)
				return 0
			}
			if console.Normalize(token) == "" {
				L.RaiseError("command: empty token")
				return 0
			}
			p.commands = append(p.commands, command{token: token, describe: describe, fn: fn})
			return 0
		},
		"format": func(L *lua.LState) int {
			p.checkHandle(L)
			format := L.CheckString(2)
			args := make([]interface{}, 0, L.GetTop()-2)
			for i := 3; i <= L.GetTop(); i++ {
				val := L.Get(i)
				switch v := val.(type) {
				case lua.LBool:
					args = append(args, bool(v))
				case lua.LNumber:
					args = append(args, float64(v))
				case lua.LString:
					args = append(args, string(v))
				default:
					args = append(args, val.String())
				}
			}
			L.Push(lua.LString(fmt.Sprintf(format, args...)))
			return 1
		},
	})
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, err
	}
	if fn, ok := L.GetGlobal("init").(*lua.LFunction); ok {
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, lua.LString(p.Handle)); err != nil {
			L.Close()
			return nil, err
		}
	}
	if p.Info.Name == "" {
		L.Close()
		return nil, fmt.Errorf("plugin missing register call")
	}
	if _, ok := m.plugins[p.Info.Name]; ok {
		L.Close()
		return nil, fmt.Errorf("plugin %s already loaded", p.Info.Name)
	}
	if fn, ok := L.GetGlobal("shutdown").(*lua.LFunction); ok {
		p.shut = fn
	}
	m.plugins[p.Info.Name] = p
	m.order = append(m.order, p.Info.Name)
	m.log.Info("plugin loaded",
		zap.String("name", p.Info.Name),
		zap.String("version", p.Info.Version),
		zap.Int("commands", len(p.commands)))
	return p, nil
}

// Commands returns the console commands of every loaded plugin in load
// order. Tokens already in taken, or claimed by an earlier plugin, are
// skipped with a warning.
func (m *Manager) Commands(taken ...string) []console.CommandSpec {
	seen := make(map[string]bool, len(taken))
	for _, t := range taken {
		seen[console.Normalize(t)] = true
	}
	var specs []console.CommandSpec
	for _, name := range m.order {
		p := m.plugins[name]
		for _, c := range p.commands {
			key := console.Normalize(c.token)
			if seen[key] {
				m.log.Warn("plugin command shadows existing token",
					zap.String("plugin", name), zap.String("token", key))
				continue
			}
			seen[key] = true
			specs = append(specs, console.CommandSpec{
				Token:    key,
				Describe: c.describe,
				Produce:  p.producer(c),
			})
		}
	}
	return specs
}

// Unload unloads the named plugin.
func (m *Manager) Unload(name string) error {
	p, ok := m.plugins[name]
	if !ok {
		return fmt.Errorf("plugin not loaded")
	}
	if p.shut != nil {
		_ = p.L.CallByParam(lua.P{Fn: p.shut, NRet: 0, Protect: true}, lua.LString(p.Handle))
	}
	p.commands = nil
	p.closed = true
	p.L.Close()
	delete(m.plugins, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all loaded plugin infos sorted by name.
func (m *Manager) List() []Info {
	infos := make([]Info, 0, len(m.plugins))
	for _, p := range m.plugins {
		infos = append(infos, p.Info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Shutdown unloads all plugins.
func (m *Manager) Shutdown() {
	for _, name := range append([]string(nil), m.order...) {
		_ = m.Unload(name)
	}
}

func (p *Plugin) checkHandle(L *lua.LState) {
	if L.CheckString(1) != p.Handle {
		L.RaiseError("invalid handle")
	}
}

// producer wraps a Lua command function. The function receives a state
// table and returns a table (or string) of lines plus an optional clear
// flag. Lua errors come back as output lines.
func (p *Plugin) producer(c command) console.Producer {
	return func(st console.State) console.Result {
		L := p.L
		if p.closed {
			return console.Result{Lines: []string{fmt.Sprintf("plugin error: %s is unloaded", p.Info.Name)}}
		}
		top := L.GetTop()
		if err := L.CallByParam(lua.P{Fn: c.fn, NRet: 2, Protect: true}, stateTable(L, st)); err != nil {
			L.SetTop(top)
			return console.Result{Lines: []string{fmt.Sprintf("plugin error: %v", err)}}
		}
		ret, clr := L.Get(-2), L.Get(-1)
		L.SetTop(top)
		return console.Result{Lines: toLines(ret), Clear: lua.LVAsBool(clr)}
	}
}

func stateTable(L *lua.LState, st console.State) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("now", lua.LNumber(st.Now.Unix()))
	tbl.RawSetString("time", lua.LString(st.Now.UTC().Format("2006-01-02T15:04:05Z")))
	tbl.RawSetString("transcript", lua.LNumber(len(st.Transcript)))
	submitted := L.NewTable()
	for i, s := range st.Submitted {
		submitted.RawSetInt(i+1, lua.LString(s))
	}
	tbl.RawSetString("submitted", submitted)
	commands := L.NewTable()
	for i, c := range st.Commands {
		commands.RawSetInt(i+1, lua.LString(c.Token))
	}
	tbl.RawSetString("commands", commands)
	return tbl
}

func toLines(v lua.LValue) []string {
	switch val := v.(type) {
	case *lua.LTable:
		n := val.Len()
		lines := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			lines = append(lines, lua.LVAsString(val.RawGetInt(i)))
		}
		return lines
	case lua.LString:
		return strings.Split(string(val), "\n")
	default:
		return []string{}
	}
}

// newState opens only the base, table and string libraries, removes the
// base functions that reach the filesystem, and sends print to log.
func newState(log *zap.Logger) (*lua.LState, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
	} {
		if err := L.CallByParam(lua.P{Fn: L.NewFunction(lib.fn), NRet: 0, Protect: true}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("open lua %s: %w", lib.name, err)
		}
	}
	for _, name := range []string{"dofile", "loadfile", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		log.Info("plugin print", zap.String("text", strings.Join(parts, "\t")))
		return 0
	}))
	return L, nil
}
