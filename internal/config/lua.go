package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// LuaConfigParser parses Lua configuration files. The script is executed
// in a sandboxed runtime and must assign the gpl2html.config table:
//
//	gpl2html.config = {
//	    output = "public/" .. "palettes.html",
//	    title = "My palettes",
//	    swatch_dir = "swatches",
//	}
type LuaConfigParser struct {
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// NewLuaConfigParser creates a new LuaConfigParser with a fresh Lua runtime.
func NewLuaConfigParser() (*LuaConfigParser, error) {
	return NewLuaConfigParserWithOutput(io.Discard)
}

// NewLuaConfigParserWithOutput creates a LuaConfigParser whose print()
// output goes to stdout.
func NewLuaConfigParserWithOutput(stdout io.Writer) (*LuaConfigParser, error) {
	if stdout == nil {
		stdout = os.Stdout
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	return &LuaConfigParser{
		runtime: runtime,
		cleanup: cleanup,
	}, nil
}

// Parse executes a Lua configuration and extracts gpl2html.config.
func (p *LuaConfigParser) Parse(content []byte) (*Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.initGlobal()

	closure, err := p.runtime.CompileAndLoadLuaChunk(
		"config",
		content,
		rt.TableValue(p.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile Lua configuration: %w", err)
	}

	ctx := rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    10_000_000,
			Memory: 50 * 1024 * 1024, // 50 MB
		},
	}
	p.runtime.PushContext(ctx)
	defer p.runtime.PopContext()

	thread := p.runtime.MainThread()
	if _, err := rt.Call1(thread, rt.FunctionValue(closure)); err != nil {
		return nil, fmt.Errorf("failed to execute Lua configuration: %w", err)
	}

	return p.extractConfig()
}

// initGlobal installs an empty gpl2html.config table.
func (p *LuaConfigParser) initGlobal() {
	root := rt.NewTable()
	root.Set(rt.StringValue("config"), rt.TableValue(rt.NewTable()))
	p.runtime.GlobalEnv().Set(rt.StringValue("gpl2html"), rt.TableValue(root))
}

// extractConfig reads gpl2html.config after the script has run.
func (p *LuaConfigParser) extractConfig() (*Config, error) {
	cfg := DefaultConfig()

	rootVal := p.runtime.GlobalEnv().Get(rt.StringValue("gpl2html"))
	if rootVal == rt.NilValue {
		return &cfg, nil
	}

	root, ok := rootVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("gpl2html is not a table")
	}

	configVal := root.Get(rt.StringValue("config"))
	if configVal == rt.NilValue {
		return &cfg, nil
	}
	table, ok := configVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("gpl2html.config is not a table")
	}

	if err := p.extractConfigTable(&cfg, table); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// extractConfigTable copies recognized keys into cfg.
func (p *LuaConfigParser) extractConfigTable(cfg *Config, table *rt.Table) error {
	if val := getTableString(table, "output"); val != nil {
		cfg.Output.Path = *val
	}
	if val := getTableString(table, "title"); val != nil {
		cfg.Output.Title = *val
	}
	if val := getTableBool(table, "strict_header"); val != nil {
		cfg.Parse.StrictHeader = *val
	}

	if val := getTableString(table, "swatch_dir"); val != nil {
		cfg.Swatch.Dir = *val
	}
	if val := getTableString(table, "swatch_format"); val != nil {
		cfg.Swatch.Format = strings.ToLower(*val)
	}
	if val := getTableInt(table, "swatch_cell"); val != nil {
		cfg.Swatch.Cell = *val
	}

	if val := getTableBool(table, "watch"); val != nil {
		cfg.Watch.Enabled = *val
	}
	if val := getTableFloat(table, "watch_debounce"); val != nil {
		cfg.Watch.Debounce = time.Duration(*val * float64(time.Second))
	}

	if val := getTableString(table, "log_level"); val != nil {
		cfg.Log.Level = strings.ToLower(*val)
	}
	if val := getTableString(table, "log_format"); val != nil {
		cfg.Log.Format = strings.ToLower(*val)
	}

	return nil
}

// Close releases resources associated with the parser's Lua runtime.
func (p *LuaConfigParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}

// getTableBool retrieves a boolean value from a Lua table.
// Returns nil if the key doesn't exist or is not a boolean.
func getTableBool(table *rt.Table, key string) *bool {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if b, ok := val.TryBool(); ok {
		return &b
	}

	// "yes"/"no" strings, as in rc files
	if s, ok := val.TryString(); ok {
		b := parseBool(s)
		return &b
	}

	return nil
}

// getTableString retrieves a string value from a Lua table.
// Returns nil if the key doesn't exist or is not a string.
func getTableString(table *rt.Table, key string) *string {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if s, ok := val.TryString(); ok {
		return &s
	}

	return nil
}

// getTableFloat retrieves a float64 value from a Lua table.
func getTableFloat(table *rt.Table, key string) *float64 {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if n, ok := val.TryFloat(); ok {
		return &n
	}

	if n, ok := val.TryInt(); ok {
		f := float64(n)
		return &f
	}

	return nil
}

// getTableInt retrieves an int value from a Lua table. Floats are truncated.
func getTableInt(table *rt.Table, key string) *int {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}

	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}

	return nil
}
