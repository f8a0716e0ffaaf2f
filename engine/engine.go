package engine

import (
	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/napi-runtime/abi"
)

// GojaEngine runs native callbacks inside a goja runtime.
// Like goja itself it is not safe for concurrent use.
type GojaEngine struct {
	vm      *goja.Runtime
	helpers *helpers
	slots   map[abi.Value]goja.Value
	cfg     Config
	next    abi.Value
	scopes  uint64
	depth   int
}

// Config holds configuration for engine creation
type Config struct {
	// MaxCallStackSize limits JavaScript recursion depth.
	// 0 means the goja default.
	MaxCallStackSize int

	// DisableConsole leaves the console global undefined.
	// The engine itself never installs one; embedders such as
	// runtime.Runtime read this flag.
	DisableConsole bool

	// DisableBufferGlobal keeps the Buffer class used by CreateBuffer
	// out of the global scope.
	DisableBufferGlobal bool
}

// NewGojaEngine creates an engine with a fresh goja runtime
func NewGojaEngine() (*GojaEngine, error) {
	return NewGojaEngineWithConfig(nil)
}

// NewGojaEngineWithConfig creates an engine with custom configuration
func NewGojaEngineWithConfig(cfg *Config) (*GojaEngine, error) {
	vm := goja.New()

	var c Config
	if cfg != nil {
		c = *cfg
	}
	if c.MaxCallStackSize > 0 {
		vm.SetMaxCallStackSize(c.MaxCallStackSize)
	}

	h, err := loadHelpers(vm)
	if err != nil {
		return nil, err
	}

	if !c.DisableBufferGlobal {
		if err := vm.Set("Buffer", h.buffer); err != nil {
			return nil, err
		}
	}

	return &GojaEngine{
		vm:      vm,
		helpers: h,
		slots:   make(map[abi.Value]goja.Value),
		cfg:     c,
	}, nil
}

// VM returns the underlying goja runtime.
func (e *GojaEngine) VM() *goja.Runtime {
	return e.vm
}

// Config returns the configuration the engine was created with.
func (e *GojaEngine) Config() Config {
	return e.cfg
}

// LiveHandles returns the number of handles held by open scopes.
func (e *GojaEngine) LiveHandles() int {
	return len(e.slots)
}

// Depth returns the number of native invocations currently on the stack.
func (e *GojaEngine) Depth() int {
	return e.depth
}

// NewFunction wraps cb as a JavaScript function named name.
func (e *GojaEngine) NewFunction(name string, cb abi.Callback) *goja.Object {
	fn := e.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return e.invoke(call, cb)
	}).(*goja.Object)

	if name != "" {
		_ = fn.DefineDataProperty("name", e.vm.ToValue(name), goja.FLAG_FALSE, goja.FLAG_TRUE, goja.FLAG_FALSE)
	}
	return fn
}

// WithEnv runs fn inside a fresh scope, as if it had been called from
// JavaScript with no arguments. The handle fn returns is converted back to
// a JavaScript value. An exception left pending by fn is returned as a
// *goja.Exception.
func (e *GojaEngine) WithEnv(fn func(env abi.Env) abi.Value) (goja.Value, error) {
	call, _ := goja.AssertFunction(e.NewFunction("", func(env abi.Env, _ abi.CallbackInfo) abi.Value {
		return fn(env)
	}))
	return call(goja.Undefined())
}

// invoke is the body of every native function: open a scope, run the
// callback, translate its result, close the scope and throw whatever the
// callback left pending.
func (e *GojaEngine) invoke(call goja.FunctionCall, cb abi.Callback) goja.Value {
	env := e.open(call)
	e.depth++
	defer func() {
		e.depth--
		env.close()
	}()

	result := cb(env, env.info)

	ret, ok := env.lookup(result)
	if !ok {
		ret = goja.Undefined()
	}
	if env.interrupted != nil {
		panic(env.interrupted)
	}
	if env.pending != nil {
		panic(env.pending)
	}
	return ret
}

func (e *GojaEngine) open(call goja.FunctionCall) *callEnv {
	e.scopes++
	this := call.This
	if this == nil {
		this = goja.Undefined()
	}
	return &callEnv{
		engine: e,
		id:     e.scopes,
		info:   abi.CallbackInfo(e.scopes),
		this:   this,
		args:   call.Arguments,
	}
}

// put registers v and returns its handle. Handles are never reused, so a
// handle that is absent from slots but not above next belonged to a scope
// that has closed.
func (e *GojaEngine) put(v goja.Value) abi.Value {
	e.next++
	e.slots[e.next] = v
	return e.next
}

func (e *GojaEngine) get(h abi.Value) (goja.Value, bool) {
	if v, ok := e.slots[h]; ok {
		return v, true
	}
	switch {
	case h == abi.Nil:
		Logger().Debug("nil handle passed to host call")
	case h <= e.next:
		Logger().Warn("handle used after its scope closed", zap.Uint64("handle", uint64(h)))
	default:
		Logger().Warn("unknown handle", zap.Uint64("handle", uint64(h)))
	}
	return nil, false
}

func (e *GojaEngine) release(handles []abi.Value) {
	for _, h := range handles {
		delete(e.slots, h)
	}
}
